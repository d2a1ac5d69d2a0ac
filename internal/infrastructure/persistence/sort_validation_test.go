package persistence

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm/schema"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "DESC"},
		{"asc", "ASC"},
		{"  ASC ", "ASC"},
		{"desc", "DESC"},
		{"ascending", "DESC"},
		{"ASC; DELETE FROM bookings;--", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"allowed field", "price", "price"},
		{"trimmed", " rating ", "rating"},
		{"empty falls back", "", "created_at"},
		{"unknown column", "guest_email", "created_at"},
		{"case sensitive", "PRICE", "created_at"},
		{"expression", "price desc, (select 1)", "created_at"},
		{"quoted injection", "title'--", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, TourSortFields, "created_at"))
		})
	}
}

// Whitelisted fields are interpolated into ORDER BY, so each one must be a
// real column of the table it sorts.
func TestSortFieldsMatchColumns(t *testing.T) {
	cases := map[string]struct {
		fields map[string]bool
		model  any
	}{
		"tenants":    {TenantSortFields, &models.TenantModel{}},
		"tours":      {TourSortFields, &models.TourModel{}},
		"offers":     {OfferSortFields, &models.SpecialOfferModel{}},
		"bookings":   {BookingSortFields, &models.BookingModel{}},
		"reviews":    {ReviewSortFields, &models.ReviewModel{}},
		"stop sales": {StopSaleSortFields, &models.StopSaleModel{}},
		"blog posts": {BlogSortFields, &models.BlogPostModel{}},
	}

	cache := &sync.Map{}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := schema.Parse(tc.model, cache, schema.NamingStrategy{})
			require.NoError(t, err)
			require.NotEmpty(t, tc.fields)
			for field := range tc.fields {
				assert.NotNil(t, s.LookUpField(field), "%s has no column %q", s.Table, field)
			}
		})
	}
}
