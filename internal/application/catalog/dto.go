package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
)

// BookingOptionInput is a bookable variant in create/update requests
type BookingOptionInput struct {
	ID    string          `json:"id"`
	Type  string          `json:"type" binding:"required,max=50"`
	Label string          `json:"label" binding:"max=100"`
	Price decimal.Decimal `json:"price"`
}

// CreateTourRequest represents a request to create a tour
type CreateTourRequest struct {
	Title          string               `json:"title" binding:"required,min=1,max=200"`
	Slug           string               `json:"slug" binding:"omitempty,max=200"`
	Summary        string               `json:"summary" binding:"max=500"`
	Description    string               `json:"description"`
	Price          decimal.Decimal      `json:"price"`
	DiscountPrice  *decimal.Decimal     `json:"discount_price"`
	Currency       string               `json:"currency" binding:"omitempty,len=3"`
	CategoryIDs    []uuid.UUID          `json:"category_ids"`
	DestinationID  *uuid.UUID           `json:"destination_id"`
	Duration       string               `json:"duration" binding:"max=100"`
	MaxGroupSize   int                  `json:"max_group_size" binding:"min=0"`
	Images         []string             `json:"images" binding:"max=30,dive,url"`
	BookingOptions []BookingOptionInput `json:"booking_options" binding:"dive"`
	IsFeatured     bool                 `json:"is_featured"`
	Publish        bool                 `json:"publish"`
}

// UpdateTourRequest represents a partial update of a tour
type UpdateTourRequest struct {
	Title          *string               `json:"title" binding:"omitempty,min=1,max=200"`
	Slug           *string               `json:"slug" binding:"omitempty,max=200"`
	Summary        *string               `json:"summary" binding:"omitempty,max=500"`
	Description    *string               `json:"description"`
	Price          *decimal.Decimal      `json:"price"`
	DiscountPrice  *decimal.Decimal      `json:"discount_price"`
	ClearDiscount  bool                  `json:"clear_discount"`
	CategoryIDs    *[]uuid.UUID          `json:"category_ids"`
	DestinationID  *uuid.UUID            `json:"destination_id"`
	Duration       *string               `json:"duration" binding:"omitempty,max=100"`
	MaxGroupSize   *int                  `json:"max_group_size" binding:"omitempty,min=0"`
	Images         *[]string             `json:"images"`
	BookingOptions *[]BookingOptionInput `json:"booking_options"`
	IsFeatured     *bool                 `json:"is_featured"`
}

// TourListFilter represents filter options for tour lists
type TourListFilter struct {
	Search        string `form:"search"`
	CategoryID    string `form:"category_id" binding:"omitempty,uuid"`
	DestinationID string `form:"destination_id" binding:"omitempty,uuid"`
	MinPrice      string `form:"min_price" binding:"omitempty,numeric"`
	MaxPrice      string `form:"max_price" binding:"omitempty,numeric"`
	Featured      *bool  `form:"featured"`
	Published     *bool  `form:"published"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by" binding:"omitempty,oneof=title price rating created_at published_at"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OfferBadge is the best automatic offer shown on a tour card
type OfferBadge struct {
	OfferID         uuid.UUID       `json:"offer_id"`
	Name            string          `json:"name"`
	Badge           string          `json:"badge"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
}

// TourListItem represents a tour card in storefront lists
type TourListItem struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Summary       string           `json:"summary"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Currency      string           `json:"currency"`
	Duration      string           `json:"duration"`
	CoverImage    string           `json:"cover_image,omitempty"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	IsFeatured    bool             `json:"is_featured"`
	Offer         *OfferBadge      `json:"offer,omitempty"`
}

// TourResponse represents a full tour in API responses
type TourResponse struct {
	ID             uuid.UUID               `json:"id"`
	TenantID       uuid.UUID               `json:"tenant_id"`
	Title          string                  `json:"title"`
	Slug           string                  `json:"slug"`
	Summary        string                  `json:"summary"`
	Description    string                  `json:"description"`
	Price          decimal.Decimal         `json:"price"`
	DiscountPrice  *decimal.Decimal        `json:"discount_price,omitempty"`
	Currency       string                  `json:"currency"`
	CategoryIDs    []uuid.UUID             `json:"category_ids"`
	DestinationID  *uuid.UUID              `json:"destination_id,omitempty"`
	Duration       string                  `json:"duration"`
	MaxGroupSize   int                     `json:"max_group_size"`
	Images         []string                `json:"images"`
	BookingOptions []catalog.BookingOption `json:"booking_options"`
	IsPublished    bool                    `json:"is_published"`
	IsFeatured     bool                    `json:"is_featured"`
	Rating         float64                 `json:"rating"`
	ReviewCount    int                     `json:"review_count"`
	PublishedAt    *time.Time              `json:"published_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
	Offer          *OfferBadge             `json:"offer,omitempty"`
}

// CategoryRequest represents a create or update of a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
	SortOrder   int    `json:"sort_order"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
}

// DestinationRequest represents a create or update of a destination
type DestinationRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Country     string `json:"country" binding:"max=100"`
	Description string `json:"description" binding:"max=2000"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	IsFeatured  bool   `json:"is_featured"`
}

// DestinationResponse represents a destination in API responses
type DestinationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsFeatured  bool      `json:"is_featured"`
}

// ToTourResponse converts a domain Tour to TourResponse
func ToTourResponse(t *catalog.Tour) TourResponse {
	return TourResponse{
		ID:             t.ID,
		TenantID:       t.TenantID,
		Title:          t.Title,
		Slug:           t.Slug,
		Summary:        t.Summary,
		Description:    t.Description,
		Price:          t.Price,
		DiscountPrice:  t.DiscountPrice,
		Currency:       t.Currency,
		CategoryIDs:    t.CategoryIDs,
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
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTourListItem converts a domain Tour to a storefront card
func ToTourListItem(t *catalog.Tour) TourListItem {
	item := TourListItem{
		ID:            t.ID,
		Title:         t.Title,
		Slug:          t.Slug,
		Summary:       t.Summary,
		Price:         t.Price,
		DiscountPrice: t.DiscountPrice,
		Currency:      t.Currency,
		Duration:      t.Duration,
		Rating:        t.Rating,
		ReviewCount:   t.ReviewCount,
		IsFeatured:    t.IsFeatured,
	}
	if len(t.Images) > 0 {
		item.CoverImage = t.Images[0]
	}
	return item
}

// ToOfferBadge converts an evaluated candidate to a badge
func ToOfferBadge(c *offer.Candidate) *OfferBadge {
	if c == nil {
		return nil
	}
	return &OfferBadge{
		OfferID:         c.Offer.ID,
		Name:            c.Offer.Name,
		Badge:           c.Badge,
		DiscountAmount:  c.DiscountAmount,
		DiscountedPrice: c.DiscountedPrice,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		SortOrder:   c.SortOrder,
	}
}

// ToDestinationResponse converts a domain Destination to DestinationResponse
func ToDestinationResponse(d *catalog.Destination) DestinationResponse {
	return DestinationResponse{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Country:     d.Country,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		IsFeatured:  d.IsFeatured,
	}
}

func toBookingOptions(in []BookingOptionInput) []catalog.BookingOption {
	out := make([]catalog.BookingOption, len(in))
	for i, o := range in {
		out[i] = catalog.BookingOption{ID: o.ID, Type: o.Type, Label: o.Label, Price: o.Price}
	}
	return out
}

func (f TourListFilter) toFilter() shared.Filter {
	sf := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.Normalize()
	if sf.OrderBy == "" {
		sf.OrderBy = "created_at"
		sf.OrderDir = "desc"
	}
	if id, err := uuid.Parse(f.CategoryID); err == nil {
		sf.Filters[catalog.FilterCategoryID] = id
	}
	if id, err := uuid.Parse(f.DestinationID); err == nil {
		sf.Filters[catalog.FilterDestinationID] = id
	}
	if v, err := decimal.NewFromString(f.MinPrice); err == nil {
		sf.Filters[catalog.FilterMinPrice] = v
	}
	if v, err := decimal.NewFromString(f.MaxPrice); err == nil {
		sf.Filters[catalog.FilterMaxPrice] = v
	}
	if f.Featured != nil {
		sf.Filters[catalog.FilterFeatured] = *f.Featured
	}
	if f.Published != nil {
		sf.Filters[catalog.FilterPublished] = *f.Published
	}
	return sf
}
