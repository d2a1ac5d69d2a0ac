package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"created_at": true,
	"key":        true,
	"name":       true,
}

// TourSortFields contains allowed sort fields for tours
var TourSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"price":        true,
	"rating":       true,
	"review_count": true,
	"published_at": true,
}

// OfferSortFields contains allowed sort fields for special offers
var OfferSortFields = map[string]bool{
	"created_at": true,
	"name":       true,
	"priority":   true,
	"start_date": true,
	"end_date":   true,
	"used_count": true,
}

// BookingSortFields contains allowed sort fields for bookings
var BookingSortFields = map[string]bool{
	"created_at":  true,
	"date":        true,
	"total_price": true,
	"status":      true,
	"reference":   true,
}

// ReviewSortFields contains allowed sort fields for reviews
var ReviewSortFields = map[string]bool{
	"created_at": true,
	"rating":     true,
}

// StopSaleSortFields contains allowed sort fields for stop-sales
var StopSaleSortFields = map[string]bool{
	"created_at": true,
	"start_date": true,
	"end_date":   true,
}

// BlogSortFields contains allowed sort fields for blog posts
var BlogSortFields = map[string]bool{
	"created_at":   true,
	"published_at": true,
	"title":        true,
	"likes":        true,
}
