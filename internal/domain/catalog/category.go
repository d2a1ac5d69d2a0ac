package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// Category groups tours for navigation (e.g. "Day trips", "Food tours")
type Category struct {
	shared.TenantAggregateRoot
	Name        string
	Slug        string
	Description string
	SortOrder   int
}

// NewCategory creates a category with a generated slug
func NewCategory(tenantID uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name must be 1-100 characters")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Name must contain letters or digits")
	}
	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Slug:                slug,
	}, nil
}

// Update changes name, description and sort order. The slug is kept stable.
func (c *Category) Update(name, description string, sortOrder int) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name must be 1-100 characters")
	}
	c.Name = name
	c.Description = description
	c.SortOrder = sortOrder
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Destination is a place tours run in
type Destination struct {
	shared.TenantAggregateRoot
	Name        string
	Slug        string
	Country     string
	Description string
	ImageURL    string
	IsFeatured  bool
}

// NewDestination creates a destination with a generated slug
func NewDestination(tenantID uuid.UUID, name, country string) (*Destination, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_DESTINATION_NAME", "Destination name must be 1-100 characters")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Name must contain letters or digits")
	}
	return &Destination{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Slug:                slug,
		Country:             strings.TrimSpace(country),
	}, nil
}

// Update changes the descriptive fields
func (d *Destination) Update(name, country, description, imageURL string, featured bool) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_DESTINATION_NAME", "Destination name must be 1-100 characters")
	}
	d.Name = name
	d.Country = strings.TrimSpace(country)
	d.Description = description
	d.ImageURL = imageURL
	d.IsFeatured = featured
	d.Touch()
	d.IncrementVersion()
	return nil
}
