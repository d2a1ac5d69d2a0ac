package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/review"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review owned by tenantID
func (r *GormReviewRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*review.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindApprovedByTour lists approved reviews of a tour, newest first
func (r *GormReviewRepository) FindApprovedByTour(ctx context.Context, tourID uuid.UUID, filter shared.Filter) ([]review.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("tour_id = ? AND status = ?", tourID, review.StatusApproved)
	return r.list(query, filter)
}

// FindAll lists a tenant's reviews for moderation
func (r *GormReviewRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]review.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{}).Where("tenant_id = ?", tenantID)
	if status, ok := filter.Filters[review.FilterStatus].(review.Status); ok {
		query = query.Where("status = ?", status)
	}
	if id, ok := filter.Filters["tour_id"].(uuid.UUID); ok {
		query = query.Where("tour_id = ?", id)
	}
	return r.list(query, filter)
}

// ExistsForUser reports whether the user already reviewed the tour
func (r *GormReviewRepository) ExistsForUser(ctx context.Context, tenantID, userID, tourID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("tenant_id = ? AND user_id = ? AND tour_id = ?", tenantID, userID, tourID).
		Count(&count).Error
	return count > 0, err
}

// SummarizeTour averages the approved ratings of a tour
func (r *GormReviewRepository) SummarizeTour(ctx context.Context, tourID uuid.UUID) (review.Summary, error) {
	var row struct {
		Average float64
		Count   int
	}
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("tour_id = ? AND status = ?", tourID, review.StatusApproved).
		Scan(&row).Error
	if err != nil {
		return review.Summary{}, err
	}
	return review.Summary{Average: row.Average, Count: row.Count}, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	return r.db.WithContext(ctx).Save(models.ReviewModelFromDomain(rv)).Error
}

// Delete removes a review
func (r *GormReviewRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.ReviewModel{}))
}

func (r *GormReviewRepository) list(query *gorm.DB, filter shared.Filter) ([]review.Review, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviewModels []models.ReviewModel
	if err := paginate(query, filter, ReviewSortFields, "created_at").Find(&reviewModels).Error; err != nil {
		return nil, 0, err
	}
	reviews := make([]review.Review, len(reviewModels))
	for i, model := range reviewModels {
		reviews[i] = *model.ToDomain()
	}
	return reviews, total, nil
}

var _ review.ReviewRepository = (*GormReviewRepository)(nil)
