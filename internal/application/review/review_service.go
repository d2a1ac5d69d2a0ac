package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/review"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// TourLookup finds a tour visible to a storefront
type TourLookup interface {
	GetPublic(ctx context.Context, cfg tenant.Config, id uuid.UUID) (*catalog.Tour, error)
}

// TravelHistory reports whether a customer has travelled with a tour
type TravelHistory interface {
	HasCompletedBooking(ctx context.Context, tenantID, userID, tourID uuid.UUID) (bool, error)
}

// RatingWriter stores a tour's review aggregate
type RatingWriter interface {
	UpdateRating(ctx context.Context, id uuid.UUID, avg float64, count int) error
}

// ReviewService handles customer reviews and their moderation
type ReviewService struct {
	reviewRepo  review.ReviewRepository
	bookings    TravelHistory
	ratings     RatingWriter
	tours       TourLookup
	logger      *zap.Logger
	now         func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo review.ReviewRepository,
	bookings TravelHistory,
	ratings RatingWriter,
	tours TourLookup,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookings:    bookings,
		ratings:     ratings,
		tours:       tours,
		logger:      logger,
		now:         time.Now,
	}
}

// Create stores a pending review. A customer reviews a tour once; the
// review is marked verified when the customer has travelled with it.
func (s *ReviewService) Create(ctx context.Context, cfg tenant.Config, userID uuid.UUID, authorName string, req CreateReviewRequest) (*ReviewResponse, error) {
	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid tour ID")
	}
	if _, err := s.tours.GetPublic(ctx, cfg, tourID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForUser(ctx, cfg.TenantID, userID, tourID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("REVIEW_EXISTS", "You have already reviewed this tour")
	}

	r, err := review.NewReview(cfg.TenantID, tourID, userID, req.Rating, req.Title, req.Comment)
	if err != nil {
		return nil, err
	}
	r.AuthorName = authorName

	travelled, err := s.bookings.HasCompletedBooking(ctx, cfg.TenantID, userID, tourID)
	if err != nil {
		return nil, err
	}
	if travelled {
		r.MarkVerified(nil)
	}

	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToReviewResponse(r)
	return &resp, nil
}

// ListForTour lists the approved reviews of a tour the storefront can see
func (s *ReviewService) ListForTour(ctx context.Context, cfg tenant.Config, tourID uuid.UUID, filter ReviewListFilter) (*shared.Paginated[ReviewResponse], error) {
	if _, err := s.tours.GetPublic(ctx, cfg, tourID); err != nil {
		return nil, err
	}
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize}.Normalize()
	items, total, err := s.reviewRepo.FindApprovedByTour(ctx, tourID, f)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(toReviewResponses(items), total, f.Page, f.PageSize)
	return &page, nil
}

// ListAdmin lists the tenant's reviews for moderation
func (s *ReviewService) ListAdmin(ctx context.Context, tenantID uuid.UUID, filter ReviewListFilter) (*shared.Paginated[ReviewResponse], error) {
	f := filter.toFilter()
	items, total, err := s.reviewRepo.FindAll(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(toReviewResponses(items), total, f.Page, f.PageSize)
	return &page, nil
}

// Approve publishes a review and refreshes the tour rating
func (s *ReviewService) Approve(ctx context.Context, tenantID, id uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, tenantID, id, func(r *review.Review) error {
		return r.Approve(s.now())
	})
}

// Reject hides a review and refreshes the tour rating
func (s *ReviewService) Reject(ctx context.Context, tenantID, id uuid.UUID, req RejectReviewRequest) (*ReviewResponse, error) {
	return s.moderate(ctx, tenantID, id, func(r *review.Review) error {
		return r.Reject(req.Reason, s.now())
	})
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	r, err := s.reviewRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	if r.Status == review.StatusApproved {
		return s.refreshRating(ctx, r.TourID)
	}
	return nil
}

func (s *ReviewService) moderate(ctx context.Context, tenantID, id uuid.UUID, fn func(*review.Review) error) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	if err := s.refreshRating(ctx, r.TourID); err != nil {
		return nil, err
	}
	s.logger.Info("Review moderated",
		zap.String("review_id", r.ID.String()),
		zap.String("status", string(r.Status)))
	resp := ToReviewResponse(r)
	return &resp, nil
}

func (s *ReviewService) refreshRating(ctx context.Context, tourID uuid.UUID) error {
	summary, err := s.reviewRepo.SummarizeTour(ctx, tourID)
	if err != nil {
		return err
	}
	return s.ratings.UpdateRating(ctx, tourID, summary.Average, summary.Count)
}
