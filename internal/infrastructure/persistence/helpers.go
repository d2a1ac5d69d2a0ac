package persistence

import (
	"errors"
	"strings"

	"github.com/travelhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps gorm.ErrRecordNotFound to shared.ErrNotFound
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// paginate applies ordering and paging from filter. orderBy is validated
// against allowed, falling back to defaultField.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)
	return query.Order(field + " " + dir).Offset(filter.Offset()).Limit(filter.PageSize)
}

// likePattern builds a case-insensitive LIKE pattern for search terms
func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(strings.ToLower(strings.TrimSpace(search)))
	return "%" + escaped + "%"
}

// deleteResult converts a delete result into ErrNotFound when nothing matched
func deleteResult(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
