package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOfferRepository implements OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// FindByID finds an offer owned by tenantID
func (r *GormOfferRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*offer.SpecialOffer, error) {
	var model models.SpecialOfferModel
	if err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByPromoCode finds a promo offer by normalized code
func (r *GormOfferRepository) FindByPromoCode(ctx context.Context, tenantID uuid.UUID, code string) (*offer.SpecialOffer, error) {
	var model models.SpecialOfferModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND promo_code = ?", tenantID, offer.NormalizeCode(code)).
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindLive returns enabled offers whose window contains now
func (r *GormOfferRepository) FindLive(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]offer.SpecialOffer, error) {
	var offerModels []models.SpecialOfferModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND enabled = ? AND start_date <= ? AND end_date >= ?", tenantID, true, now, now).
		Order("priority DESC, created_at ASC").
		Find(&offerModels).Error
	if err != nil {
		return nil, err
	}
	return toOffers(offerModels), nil
}

// FindAll lists offers with paging
func (r *GormOfferRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]offer.SpecialOffer, error) {
	var offerModels []models.SpecialOfferModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SpecialOfferModel{}).Where("tenant_id = ?", tenantID), filter)
	query = paginate(query, filter, OfferSortFields, "created_at")
	if err := query.Find(&offerModels).Error; err != nil {
		return nil, err
	}
	return toOffers(offerModels), nil
}

// Count counts offers matching the filter
func (r *GormOfferRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SpecialOfferModel{}).Where("tenant_id = ?", tenantID), filter)
	err := query.Count(&count).Error
	return count, err
}

// ExistsByPromoCode reports whether another offer uses code
func (r *GormOfferRepository) ExistsByPromoCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SpecialOfferModel{}).
		Where("tenant_id = ? AND promo_code = ?", tenantID, offer.NormalizeCode(code))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Save creates or updates an offer. Updates leave used_count alone; it is
// only moved by IncrementUsage and ReleaseUsage.
func (r *GormOfferRepository) Save(ctx context.Context, o *offer.SpecialOffer) error {
	model := models.SpecialOfferModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SpecialOfferModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return tx.Create(model).Error
		}
		return tx.Omit("used_count", "created_at").Save(model).Error
	})
}

// Delete removes an offer
func (r *GormOfferRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.SpecialOfferModel{}))
}

// IncrementUsage counts one redemption while the usage limit allows it.
// The guard lives in the UPDATE so concurrent redemptions cannot overshoot.
func (r *GormOfferRepository) IncrementUsage(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.SpecialOfferModel{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if _, err := r.FindByID(ctx, tenantID, id); err != nil {
		return err
	}
	return shared.ErrOfferExhausted
}

// ReleaseUsage undoes one redemption of a checkout that did not complete
func (r *GormOfferRepository) ReleaseUsage(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.SpecialOfferModel{}).
		Where("id = ? AND tenant_id = ? AND used_count > 0", id, tenantID).
		Update("used_count", gorm.Expr("used_count - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	_, err := r.FindByID(ctx, tenantID, id)
	return err
}

func (r *GormOfferRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(promo_code) LIKE ?", pattern, pattern)
	}
	if t, ok := filter.Filters["type"].(offer.OfferType); ok {
		query = query.Where("type = ?", t)
	}
	if enabled, ok := filter.Filters["enabled"].(bool); ok {
		query = query.Where("enabled = ?", enabled)
	}
	return query
}

func toOffers(offerModels []models.SpecialOfferModel) []offer.SpecialOffer {
	offers := make([]offer.SpecialOffer, len(offerModels))
	for i, model := range offerModels {
		offers[i] = *model.ToDomain()
	}
	return offers
}

var _ offer.OfferRepository = (*GormOfferRepository)(nil)
