package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/catalog"
)

// TourModel is the persistence model for the Tour aggregate.
// Category membership lives in tour_categories so it can be filtered in SQL.
type TourModel struct {
	TenantAggregateModel
	Title          string                  `gorm:"type:varchar(200);not null"`
	Slug           string                  `gorm:"type:varchar(120);not null;index"`
	Summary        string                  `gorm:"type:varchar(500)"`
	Description    string                  `gorm:"type:text"`
	Price          decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountPrice  *decimal.Decimal        `gorm:"type:decimal(12,2)"`
	Currency       string                  `gorm:"type:varchar(3);not null"`
	DestinationID  *uuid.UUID              `gorm:"type:uuid;index"`
	Duration       string                  `gorm:"type:varchar(50)"`
	MaxGroupSize   int                     `gorm:"not null;default:0"`
	Images         []string                `gorm:"type:jsonb;serializer:json"`
	BookingOptions []catalog.BookingOption `gorm:"type:jsonb;serializer:json"`
	IsPublished    bool                    `gorm:"not null;default:false;index"`
	IsFeatured     bool                    `gorm:"not null;default:false"`
	Rating         float64                 `gorm:"not null;default:0"`
	ReviewCount    int                     `gorm:"not null;default:0"`
	PublishedAt    *time.Time
	Categories     []TourCategoryModel `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TourModel) TableName() string {
	return "tours"
}

// TourCategoryModel links a tour to a category
type TourCategoryModel struct {
	TourID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name for GORM
func (TourCategoryModel) TableName() string {
	return "tour_categories"
}

// ToDomain converts the persistence model to a domain Tour
func (m *TourModel) ToDomain() *catalog.Tour {
	categoryIDs := make([]uuid.UUID, 0, len(m.Categories))
	for _, c := range m.Categories {
		categoryIDs = append(categoryIDs, c.CategoryID)
	}
	images := m.Images
	if images == nil {
		images = make([]string, 0)
	}
	options := m.BookingOptions
	if options == nil {
		options = make([]catalog.BookingOption, 0)
	}
	return &catalog.Tour{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Title:               m.Title,
		Slug:                m.Slug,
		Summary:             m.Summary,
		Description:         m.Description,
		Price:               m.Price,
		DiscountPrice:       m.DiscountPrice,
		Currency:            m.Currency,
		CategoryIDs:         categoryIDs,
		DestinationID:       m.DestinationID,
		Duration:            m.Duration,
		MaxGroupSize:        m.MaxGroupSize,
		Images:              images,
		BookingOptions:      options,
		IsPublished:         m.IsPublished,
		IsFeatured:          m.IsFeatured,
		Rating:              m.Rating,
		ReviewCount:         m.ReviewCount,
		PublishedAt:         m.PublishedAt,
	}
}

// TourModelFromDomain creates a persistence model from a domain Tour
func TourModelFromDomain(t *catalog.Tour) *TourModel {
	m := &TourModel{
		Title:          t.Title,
		Slug:           t.Slug,
		Summary:        t.Summary,
		Description:    t.Description,
		Price:          t.Price,
		DiscountPrice:  t.DiscountPrice,
		Currency:       t.Currency,
		DestinationID:  t.DestinationID,
		Duration:       t.Duration,
		MaxGroupSize:   t.MaxGroupSize,
		Images:         t.Images,
		BookingOptions: t.BookingOptions,
		IsPublished:    t.IsPublished,
		IsFeatured:     t.IsFeatured,
		Rating:         t.Rating,
		ReviewCount:    t.ReviewCount,
		PublishedAt:    t.PublishedAt,
	}
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.Categories = make([]TourCategoryModel, 0, len(t.CategoryIDs))
	for _, id := range t.CategoryIDs {
		m.Categories = append(m.Categories, TourCategoryModel{TourID: t.ID, CategoryID: id})
	}
	return m
}

// CategoryModel is the persistence model for the Category aggregate
type CategoryModel struct {
	TenantAggregateModel
	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(120);not null;index"`
	Description string `gorm:"type:text"`
	SortOrder   int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Slug:                m.Slug,
		Description:         m.Description,
		SortOrder:           m.SortOrder,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		SortOrder:   c.SortOrder,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// DestinationModel is the persistence model for the Destination aggregate
type DestinationModel struct {
	TenantAggregateModel
	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(120);not null;index"`
	Country     string `gorm:"type:varchar(100)"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"type:varchar(500)"`
	IsFeatured  bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DestinationModel) TableName() string {
	return "destinations"
}

// ToDomain converts the persistence model to a domain Destination
func (m *DestinationModel) ToDomain() *catalog.Destination {
	return &catalog.Destination{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Slug:                m.Slug,
		Country:             m.Country,
		Description:         m.Description,
		ImageURL:            m.ImageURL,
		IsFeatured:          m.IsFeatured,
	}
}

// DestinationModelFromDomain creates a persistence model from a domain Destination
func DestinationModelFromDomain(d *catalog.Destination) *DestinationModel {
	m := &DestinationModel{
		Name:        d.Name,
		Slug:        d.Slug,
		Country:     d.Country,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		IsFeatured:  d.IsFeatured,
	}
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	return m
}
