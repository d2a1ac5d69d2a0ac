// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: shared persistence fields (BaseModel, AggregateModel, TenantAggregateModel)
//   - tenant.go, identity.go: brands and their users
//   - catalog.go: tours, tour categories, categories, destinations
//   - offer.go, availability.go, booking.go: the booking path
//   - review.go, wishlist.go, content.go: storefront content
//
// List-valued fields are stored as JSON columns through GORM's json serializer.
package models
