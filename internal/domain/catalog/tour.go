package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/shared"
)

// MaxTourImages caps the gallery size of a tour
const MaxTourImages = 30

// BookingOption is a bookable variant of a tour (private, group, with lunch...)
type BookingOption struct {
	ID    string          `json:"id"`
	Type  string          `json:"type"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// Tour is a bookable product owned by a tenant
type Tour struct {
	shared.TenantAggregateRoot
	Title          string
	Slug           string
	Summary        string
	Description    string
	Price          decimal.Decimal
	DiscountPrice  *decimal.Decimal
	Currency       string
	CategoryIDs    []uuid.UUID
	DestinationID  *uuid.UUID
	Duration       string
	MaxGroupSize   int
	Images         []string
	BookingOptions []BookingOption
	IsPublished    bool
	IsFeatured     bool
	Rating         float64
	ReviewCount    int
	PublishedAt    *time.Time
}

// NewTour creates an unpublished tour
func NewTour(tenantID uuid.UUID, title string, price decimal.Decimal, currency string) (*Tour, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	slug := Slugify(title)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Title must contain letters or digits")
	}
	if currency == "" {
		currency = "USD"
	}

	t := &Tour{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               strings.TrimSpace(title),
		Slug:                slug,
		Price:               price,
		Currency:            strings.ToUpper(currency),
		CategoryIDs:         make([]uuid.UUID, 0),
		Images:              make([]string, 0),
		BookingOptions:      make([]BookingOption, 0),
	}
	return t, nil
}

// UpdateDetails changes the descriptive fields
func (t *Tour) UpdateDetails(title, summary, description, duration string, maxGroupSize int) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if maxGroupSize < 0 {
		return shared.NewDomainError("INVALID_GROUP_SIZE", "Max group size cannot be negative")
	}
	t.Title = strings.TrimSpace(title)
	t.Summary = summary
	t.Description = description
	t.Duration = duration
	t.MaxGroupSize = maxGroupSize
	t.touch()
	return nil
}

// SetSlug overrides the generated slug
func (t *Tour) SetSlug(slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !IsValidSlug(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug may only contain lowercase letters, digits and single hyphens")
	}
	t.Slug = slug
	t.touch()
	return nil
}

// SetPrice sets the list price and an optional strike-through discount price
func (t *Tour) SetPrice(price decimal.Decimal, discountPrice *decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if discountPrice != nil {
		if discountPrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Discount price cannot be negative")
		}
		if discountPrice.GreaterThanOrEqual(price) {
			return shared.NewDomainError("INVALID_PRICE", "Discount price must be lower than price")
		}
	}
	t.Price = price
	t.DiscountPrice = discountPrice
	t.touch()
	return nil
}

// EffectivePrice is the per-guest base price before offers
func (t *Tour) EffectivePrice() decimal.Decimal {
	if t.DiscountPrice != nil {
		return *t.DiscountPrice
	}
	return t.Price
}

// PriceFor returns the per-guest price of an option, or the tour price when
// the option is unknown or empty
func (t *Tour) PriceFor(optionID string) decimal.Decimal {
	if opt, ok := t.Option(optionID); ok && opt.Price.IsPositive() {
		return opt.Price
	}
	return t.EffectivePrice()
}

// SetCategories replaces the category list
func (t *Tour) SetCategories(ids []uuid.UUID) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	t.CategoryIDs = out
	t.touch()
}

// SetDestination sets or clears the destination
func (t *Tour) SetDestination(id *uuid.UUID) {
	t.DestinationID = id
	t.touch()
}

// SetImages replaces the gallery
func (t *Tour) SetImages(urls []string) error {
	if len(urls) > MaxTourImages {
		return shared.NewDomainError("TOO_MANY_IMAGES", "A tour can have at most 30 images")
	}
	t.Images = append(make([]string, 0, len(urls)), urls...)
	t.touch()
	return nil
}

// AddImages appends uploaded images to the gallery
func (t *Tour) AddImages(urls ...string) error {
	return t.SetImages(append(append([]string{}, t.Images...), urls...))
}

// SetBookingOptions replaces the bookable variants
func (t *Tour) SetBookingOptions(opts []BookingOption) error {
	seen := make(map[string]struct{}, len(opts))
	for i, o := range opts {
		o.ID = strings.TrimSpace(o.ID)
		o.Type = strings.ToLower(strings.TrimSpace(o.Type))
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		if o.Type == "" {
			return shared.NewDomainError("INVALID_BOOKING_OPTION", "Booking option type is required")
		}
		if o.Price.IsNegative() {
			return shared.NewDomainError("INVALID_BOOKING_OPTION", "Booking option price cannot be negative")
		}
		if _, dup := seen[o.ID]; dup {
			return shared.NewDomainError("INVALID_BOOKING_OPTION", "Booking option ids must be unique")
		}
		seen[o.ID] = struct{}{}
		opts[i] = o
	}
	t.BookingOptions = opts
	t.touch()
	return nil
}

// Option finds a booking option by ID
func (t *Tour) Option(id string) (BookingOption, bool) {
	if id == "" {
		return BookingOption{}, false
	}
	for _, o := range t.BookingOptions {
		if o.ID == id {
			return o, true
		}
	}
	return BookingOption{}, false
}

// Publish makes the tour visible on the storefront
func (t *Tour) Publish() error {
	if t.IsPublished {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Tour is already published")
	}
	if !t.Price.IsPositive() && len(t.BookingOptions) == 0 {
		return shared.NewDomainError("INVALID_PRICE", "A tour needs a price before it can be published")
	}
	now := time.Now()
	t.IsPublished = true
	t.PublishedAt = &now
	t.touch()
	return nil
}

// Unpublish hides the tour from the storefront
func (t *Tour) Unpublish() error {
	if !t.IsPublished {
		return shared.NewDomainError("NOT_PUBLISHED", "Tour is not published")
	}
	t.IsPublished = false
	t.touch()
	return nil
}

// SetFeatured toggles the featured flag
func (t *Tour) SetFeatured(featured bool) {
	t.IsFeatured = featured
	t.touch()
}

// SetRating records the aggregate of approved reviews
func (t *Tour) SetRating(avg float64, count int) {
	t.Rating = avg
	t.ReviewCount = count
}

func (t *Tour) touch() {
	t.Touch()
	t.IncrementVersion()
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}
