package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TaxonomyService manages categories and destinations
type TaxonomyService struct {
	categoryRepo    catalog.CategoryRepository
	destinationRepo catalog.DestinationRepository
	logger          *zap.Logger
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(categoryRepo catalog.CategoryRepository, destinationRepo catalog.DestinationRepository, logger *zap.Logger) *TaxonomyService {
	return &TaxonomyService{
		categoryRepo:    categoryRepo,
		destinationRepo: destinationRepo,
		logger:          logger,
	}
}

// ListCategories returns the categories of a tenant ordered for navigation
func (s *TaxonomyService) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]CategoryResponse, error) {
	cats, err := s.categoryRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(cats))
	for i := range cats {
		out[i] = ToCategoryResponse(&cats[i])
	}
	return out, nil
}

// CreateCategory adds a category
func (s *TaxonomyService) CreateCategory(ctx context.Context, tenantID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	c, err := catalog.NewCategory(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.categoryRepo.ExistsBySlug(ctx, tenantID, c.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}
	if err := c.Update(req.Name, req.Description, req.SortOrder); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(c)
	return &resp, nil
}

// UpdateCategory changes a category
func (s *TaxonomyService) UpdateCategory(ctx context.Context, tenantID, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.Description, req.SortOrder); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(c)
	return &resp, nil
}

// DeleteCategory removes a category and unlinks it from tours
func (s *TaxonomyService) DeleteCategory(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

// ListDestinations returns the destinations of a tenant
func (s *TaxonomyService) ListDestinations(ctx context.Context, tenantID uuid.UUID) ([]DestinationResponse, error) {
	dests, err := s.destinationRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]DestinationResponse, len(dests))
	for i := range dests {
		out[i] = ToDestinationResponse(&dests[i])
	}
	return out, nil
}

// CreateDestination adds a destination
func (s *TaxonomyService) CreateDestination(ctx context.Context, tenantID uuid.UUID, req DestinationRequest) (*DestinationResponse, error) {
	d, err := catalog.NewDestination(tenantID, req.Name, req.Country)
	if err != nil {
		return nil, err
	}
	exists, err := s.destinationRepo.ExistsBySlug(ctx, tenantID, d.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A destination with this name already exists")
	}
	if err := d.Update(req.Name, req.Country, req.Description, req.ImageURL, req.IsFeatured); err != nil {
		return nil, err
	}
	if err := s.destinationRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDestinationResponse(d)
	return &resp, nil
}

// UpdateDestination changes a destination
func (s *TaxonomyService) UpdateDestination(ctx context.Context, tenantID, id uuid.UUID, req DestinationRequest) (*DestinationResponse, error) {
	d, err := s.destinationRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := d.Update(req.Name, req.Country, req.Description, req.ImageURL, req.IsFeatured); err != nil {
		return nil, err
	}
	if err := s.destinationRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDestinationResponse(d)
	return &resp, nil
}

// DeleteDestination removes a destination; tours keep running without one
func (s *TaxonomyService) DeleteDestination(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.destinationRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("Destination deleted", zap.String("destination_id", id.String()))
	return nil
}
