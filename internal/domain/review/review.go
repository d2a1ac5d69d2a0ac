package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// Status is the moderation state of a review
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a tour. Only approved reviews are public
// and count towards the tour rating.
type Review struct {
	shared.TenantAggregateRoot
	TourID       uuid.UUID
	UserID       uuid.UUID
	BookingID    *uuid.UUID
	AuthorName   string
	Rating       int
	Title        string
	Comment      string
	Status       Status
	Verified     bool
	ModeratedAt  *time.Time
	RejectReason string
}

// NewReview creates a pending review
func NewReview(tenantID, tourID, userID uuid.UUID, rating int, title, comment string) (*Review, error) {
	if tourID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TOUR", "Tour is required")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User is required")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	title = strings.TrimSpace(title)
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > 5000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 5000 characters")
	}

	return &Review{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TourID:              tourID,
		UserID:              userID,
		Rating:              rating,
		Title:               title,
		Comment:             comment,
		Status:              StatusPending,
	}, nil
}

// MarkVerified links the review to a booking of the same tour
func (r *Review) MarkVerified(bookingID *uuid.UUID) {
	r.BookingID = bookingID
	r.Verified = true
}

// Approve publishes the review
func (r *Review) Approve(now time.Time) error {
	if r.Status == StatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Review is already approved")
	}
	r.Status = StatusApproved
	r.RejectReason = ""
	r.ModeratedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// Reject hides the review
func (r *Review) Reject(reason string, now time.Time) error {
	if r.Status == StatusRejected {
		return shared.NewDomainError("INVALID_STATE", "Review is already rejected")
	}
	r.Status = StatusRejected
	r.RejectReason = strings.TrimSpace(reason)
	r.ModeratedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// Summary is the aggregate rating of a tour's approved reviews
type Summary struct {
	Average float64
	Count   int
}
