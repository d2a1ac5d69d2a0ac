package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/content"
	"go.uber.org/zap"
)

// HeroService manages the storefront hero carousel
type HeroService struct {
	repo   content.HeroSlideRepository
	logger *zap.Logger
}

// NewHeroService creates a new HeroService
func NewHeroService(repo content.HeroSlideRepository, logger *zap.Logger) *HeroService {
	return &HeroService{repo: repo, logger: logger}
}

// ListActive returns the slides shown on the storefront
func (s *HeroService) ListActive(ctx context.Context, tenantID uuid.UUID) ([]HeroSlideResponse, error) {
	slides, err := s.repo.FindByTenant(ctx, tenantID, true)
	if err != nil {
		return nil, err
	}
	return toHeroSlideResponses(slides), nil
}

// ListAll returns every slide for the admin
func (s *HeroService) ListAll(ctx context.Context, tenantID uuid.UUID) ([]HeroSlideResponse, error) {
	slides, err := s.repo.FindByTenant(ctx, tenantID, false)
	if err != nil {
		return nil, err
	}
	return toHeroSlideResponses(slides), nil
}

// Create appends a slide at the end of the carousel
func (s *HeroService) Create(ctx context.Context, tenantID uuid.UUID, req SaveHeroSlideRequest) (*HeroSlideResponse, error) {
	slide, err := content.NewHeroSlide(tenantID, req.Title, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.apply(slide, req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByTenant(ctx, tenantID, false)
	if err != nil {
		return nil, err
	}
	slide.SortOrder = len(existing)

	if err := s.repo.Save(ctx, slide); err != nil {
		return nil, err
	}
	resp := ToHeroSlideResponse(slide)
	return &resp, nil
}

// Update replaces a slide's content
func (s *HeroService) Update(ctx context.Context, tenantID, id uuid.UUID, req SaveHeroSlideRequest) (*HeroSlideResponse, error) {
	slide, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(slide, req); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, slide); err != nil {
		return nil, err
	}
	resp := ToHeroSlideResponse(slide)
	return &resp, nil
}

// Delete removes a slide
func (s *HeroService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tenantID, id)
}

// Reorder rewrites the display order of the carousel
func (s *HeroService) Reorder(ctx context.Context, tenantID uuid.UUID, req ReorderHeroRequest) ([]HeroSlideResponse, error) {
	slides, err := s.repo.FindByTenant(ctx, tenantID, false)
	if err != nil {
		return nil, err
	}
	if err := content.Reorder(slides, req.Order); err != nil {
		return nil, err
	}
	if err := s.repo.SaveAll(ctx, slides); err != nil {
		return nil, err
	}
	s.logger.Info("Hero slides reordered",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("count", len(slides)))
	return toHeroSlideResponses(slides), nil
}

func (s *HeroService) apply(slide *content.HeroSlide, req SaveHeroSlideRequest) error {
	cta := content.CTA{Label: req.CTA.Label, URL: req.CTA.URL}
	if err := slide.Update(req.Title, req.Subtitle, req.ImageURL, cta); err != nil {
		return err
	}
	if req.IsActive != nil && *req.IsActive != slide.IsActive {
		slide.SetActive(*req.IsActive)
	}
	return nil
}
