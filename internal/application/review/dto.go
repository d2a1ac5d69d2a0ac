package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/review"
	"github.com/travelhub/backend/internal/domain/shared"
)

// CreateReviewRequest is a customer rating a tour
type CreateReviewRequest struct {
	TourID  string `json:"tour_id" binding:"required,uuid"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title" binding:"max=200"`
	Comment string `json:"comment" binding:"max=5000"`
}

// RejectReviewRequest carries the moderation note
type RejectReviewRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ReviewListFilter represents filter options for review lists
type ReviewListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	TourID   string `form:"tour_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (f ReviewListFilter) toFilter() shared.Filter {
	out := shared.Filter{Page: f.Page, PageSize: f.PageSize}.Normalize()
	if f.Status != "" {
		out.Filters[review.FilterStatus] = review.Status(f.Status)
	}
	if id, err := uuid.Parse(f.TourID); err == nil {
		out.Filters["tour_id"] = id
	}
	return out
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID           uuid.UUID  `json:"id"`
	TourID       uuid.UUID  `json:"tour_id"`
	UserID       uuid.UUID  `json:"user_id"`
	AuthorName   string     `json:"author_name"`
	Rating       int        `json:"rating"`
	Title        string     `json:"title"`
	Comment      string     `json:"comment"`
	Status       string     `json:"status"`
	Verified     bool       `json:"verified"`
	RejectReason string     `json:"reject_reason,omitempty"`
	ModeratedAt  *time.Time `json:"moderated_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		TourID:       r.TourID,
		UserID:       r.UserID,
		AuthorName:   r.AuthorName,
		Rating:       r.Rating,
		Title:        r.Title,
		Comment:      r.Comment,
		Status:       string(r.Status),
		Verified:     r.Verified,
		RejectReason: r.RejectReason,
		ModeratedAt:  r.ModeratedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func toReviewResponses(items []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(items))
	for i := range items {
		out[i] = ToReviewResponse(&items[i])
	}
	return out
}
