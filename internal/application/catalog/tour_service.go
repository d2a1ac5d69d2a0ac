package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// Scoper decides which catalog a storefront tenant reads
type Scoper interface {
	Scope(ctx context.Context, cfg tenant.Config) (catalog.Scope, error)
}

// TourService handles storefront browsing and back-office management of tours
type TourService struct {
	tourRepo        catalog.TourRepository
	categoryRepo    catalog.CategoryRepository
	destinationRepo catalog.DestinationRepository
	offerRepo       offer.OfferRepository
	scoper          Scoper
	logger          *zap.Logger
	now             func() time.Time
}

// NewTourService creates a new TourService
func NewTourService(
	tourRepo catalog.TourRepository,
	categoryRepo catalog.CategoryRepository,
	destinationRepo catalog.DestinationRepository,
	offerRepo offer.OfferRepository,
	scoper Scoper,
	logger *zap.Logger,
) *TourService {
	return &TourService{
		tourRepo:        tourRepo,
		categoryRepo:    categoryRepo,
		destinationRepo: destinationRepo,
		offerRepo:       offerRepo,
		scoper:          scoper,
		logger:          logger,
		now:             time.Now,
	}
}

// ListPublic returns published tours visible to the storefront of cfg, each
// with the best automatic offer of the requesting tenant
func (s *TourService) ListPublic(ctx context.Context, cfg tenant.Config, filter TourListFilter) (*shared.Paginated[TourListItem], error) {
	scope, err := s.scoper.Scope(ctx, cfg)
	if err != nil {
		return nil, err
	}
	filter.Published = nil
	f := filter.toFilter()

	tours, err := s.tourRepo.FindInScope(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	total, err := s.tourRepo.CountInScope(ctx, scope, f)
	if err != nil {
		return nil, err
	}

	offers := s.liveOffers(ctx, cfg.TenantID)
	now := s.now()
	items := make([]TourListItem, len(tours))
	for i := range tours {
		items[i] = ToTourListItem(&tours[i])
		items[i].Offer = bestBadge(offers, &tours[i], now)
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetPublicBySlug returns a published tour visible to the storefront of cfg
func (s *TourService) GetPublicBySlug(ctx context.Context, cfg tenant.Config, slug string) (*TourResponse, error) {
	scope, err := s.scoper.Scope(ctx, cfg)
	if err != nil {
		return nil, err
	}
	t, err := s.tourRepo.FindBySlug(ctx, scope, slug)
	if err != nil {
		return nil, err
	}
	resp := ToTourResponse(t)
	resp.Offer = bestBadge(s.liveOffers(ctx, cfg.TenantID), t, s.now())
	return &resp, nil
}

// GetPublic returns a published tour by ID visible to the storefront of cfg
func (s *TourService) GetPublic(ctx context.Context, cfg tenant.Config, id uuid.UUID) (*catalog.Tour, error) {
	scope, err := s.scoper.Scope(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s.tourRepo.FindByIDInScope(ctx, scope, id)
}

// ListAdmin returns every tour the tenant owns
func (s *TourService) ListAdmin(ctx context.Context, tenantID uuid.UUID, filter TourListFilter) (*shared.Paginated[TourResponse], error) {
	scope := catalog.AdminScope(tenantID)
	f := filter.toFilter()

	tours, err := s.tourRepo.FindInScope(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	total, err := s.tourRepo.CountInScope(ctx, scope, f)
	if err != nil {
		return nil, err
	}

	items := make([]TourResponse, len(tours))
	for i := range tours {
		items[i] = ToTourResponse(&tours[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns a tour the tenant owns
func (s *TourService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TourResponse, error) {
	t, err := s.owned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTourResponse(t)
	return &resp, nil
}

// Create adds a tour to the tenant's catalog
func (s *TourService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTourRequest) (*TourResponse, error) {
	t, err := catalog.NewTour(tenantID, req.Title, req.Price, req.Currency)
	if err != nil {
		return nil, err
	}
	if req.Slug != "" {
		if err := t.SetSlug(req.Slug); err != nil {
			return nil, err
		}
	}
	if err := s.ensureUniqueSlug(ctx, t, req.Slug != ""); err != nil {
		return nil, err
	}
	if err := t.UpdateDetails(req.Title, req.Summary, req.Description, req.Duration, req.MaxGroupSize); err != nil {
		return nil, err
	}
	if err := t.SetPrice(req.Price, req.DiscountPrice); err != nil {
		return nil, err
	}
	if err := s.setTaxonomy(ctx, t, req.CategoryIDs, req.DestinationID); err != nil {
		return nil, err
	}
	if err := t.SetImages(req.Images); err != nil {
		return nil, err
	}
	if err := t.SetBookingOptions(toBookingOptions(req.BookingOptions)); err != nil {
		return nil, err
	}
	t.SetFeatured(req.IsFeatured)
	if req.Publish {
		if err := t.Publish(); err != nil {
			return nil, err
		}
	}

	if err := s.tourRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("Tour created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("tour_id", t.ID.String()),
		zap.String("slug", t.Slug))
	resp := ToTourResponse(t)
	return &resp, nil
}

// Update changes a tour the tenant owns
func (s *TourService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateTourRequest) (*TourResponse, error) {
	t, err := s.owned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	title, summary, desc, duration, maxGroup := t.Title, t.Summary, t.Description, t.Duration, t.MaxGroupSize
	if req.Title != nil {
		title = *req.Title
	}
	if req.Summary != nil {
		summary = *req.Summary
	}
	if req.Description != nil {
		desc = *req.Description
	}
	if req.Duration != nil {
		duration = *req.Duration
	}
	if req.MaxGroupSize != nil {
		maxGroup = *req.MaxGroupSize
	}
	if err := t.UpdateDetails(title, summary, desc, duration, maxGroup); err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != t.Slug {
		if err := t.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
		if err := s.ensureUniqueSlug(ctx, t, true); err != nil {
			return nil, err
		}
	}

	if req.Price != nil || req.DiscountPrice != nil || req.ClearDiscount {
		price, discount := t.Price, t.DiscountPrice
		if req.Price != nil {
			price = *req.Price
		}
		if req.DiscountPrice != nil {
			discount = req.DiscountPrice
		}
		if req.ClearDiscount {
			discount = nil
		}
		if err := t.SetPrice(price, discount); err != nil {
			return nil, err
		}
	}

	if req.CategoryIDs != nil || req.DestinationID != nil {
		cats := t.CategoryIDs
		if req.CategoryIDs != nil {
			cats = *req.CategoryIDs
		}
		dest := t.DestinationID
		if req.DestinationID != nil {
			dest = req.DestinationID
			if *dest == uuid.Nil {
				dest = nil
			}
		}
		if err := s.setTaxonomy(ctx, t, cats, dest); err != nil {
			return nil, err
		}
	}
	if req.Images != nil {
		if err := t.SetImages(*req.Images); err != nil {
			return nil, err
		}
	}
	if req.BookingOptions != nil {
		if err := t.SetBookingOptions(toBookingOptions(*req.BookingOptions)); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured != nil {
		t.SetFeatured(*req.IsFeatured)
	}

	if err := s.tourRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTourResponse(t)
	return &resp, nil
}

// Publish makes a tour visible on the storefront
func (s *TourService) Publish(ctx context.Context, tenantID, id uuid.UUID) (*TourResponse, error) {
	return s.mutate(ctx, tenantID, id, (*catalog.Tour).Publish)
}

// Unpublish hides a tour from the storefront
func (s *TourService) Unpublish(ctx context.Context, tenantID, id uuid.UUID) (*TourResponse, error) {
	return s.mutate(ctx, tenantID, id, (*catalog.Tour).Unpublish)
}

// AttachImages appends uploaded image URLs to a tour's gallery
func (s *TourService) AttachImages(ctx context.Context, tenantID, id uuid.UUID, urls []string) (*TourResponse, error) {
	return s.mutate(ctx, tenantID, id, func(t *catalog.Tour) error {
		return t.AddImages(urls...)
	})
}

// Delete removes a tour the tenant owns
func (s *TourService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.tourRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("Tour deleted", zap.String("tenant_id", tenantID.String()), zap.String("tour_id", id.String()))
	return nil
}

func (s *TourService) mutate(ctx context.Context, tenantID, id uuid.UUID, fn func(*catalog.Tour) error) (*TourResponse, error) {
	t, err := s.owned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := s.tourRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTourResponse(t)
	return &resp, nil
}

func (s *TourService) owned(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Tour, error) {
	return s.tourRepo.FindByIDInScope(ctx, catalog.AdminScope(tenantID), id)
}

// ensureUniqueSlug rejects a taken explicit slug and suffixes a generated one
func (s *TourService) ensureUniqueSlug(ctx context.Context, t *catalog.Tour, explicit bool) error {
	exclude := &t.ID
	taken, err := s.tourRepo.ExistsBySlug(ctx, t.TenantID, t.Slug, exclude)
	if err != nil || !taken {
		return err
	}
	if explicit {
		return shared.NewDomainError("SLUG_TAKEN", "Another tour already uses this slug")
	}
	base := t.Slug
	for i := 2; i <= 50; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		taken, err := s.tourRepo.ExistsBySlug(ctx, t.TenantID, candidate, exclude)
		if err != nil {
			return err
		}
		if !taken {
			return t.SetSlug(candidate)
		}
	}
	return t.SetSlug(base + "-" + uuid.NewString()[:8])
}

func (s *TourService) setTaxonomy(ctx context.Context, t *catalog.Tour, categoryIDs []uuid.UUID, destinationID *uuid.UUID) error {
	for _, id := range categoryIDs {
		if _, err := s.categoryRepo.FindByID(ctx, t.TenantID, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CATEGORY", "Unknown category "+id.String())
			}
			return err
		}
	}
	if destinationID != nil {
		if _, err := s.destinationRepo.FindByID(ctx, t.TenantID, *destinationID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_DESTINATION", "Unknown destination")
			}
			return err
		}
	}
	t.SetCategories(categoryIDs)
	t.SetDestination(destinationID)
	return nil
}

// liveOffers loads the tenant's live offers. A failure only hides badges.
func (s *TourService) liveOffers(ctx context.Context, tenantID uuid.UUID) []offer.SpecialOffer {
	if s.offerRepo == nil || tenantID == uuid.Nil {
		return nil
	}
	offers, err := s.offerRepo.FindLive(ctx, tenantID, s.now())
	if err != nil {
		s.logger.Warn("Failed to load offers for tour badges", zap.Error(err))
		return nil
	}
	return offers
}

func bestBadge(offers []offer.SpecialOffer, t *catalog.Tour, now time.Time) *OfferBadge {
	if len(offers) == 0 {
		return nil
	}
	ev := offer.Evaluate(offers, offer.EvaluationInput{
		TourID:   t.ID,
		Price:    t.EffectivePrice(),
		Currency: t.Currency,
		Now:      now,
	})
	return ToOfferBadge(ev.Best)
}
