package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// Filter keys understood by BookingRepository.FindAll
const (
	FilterStatus   = "status"
	FilterTourID   = "tour_id"
	FilterUserID   = "user_id"
	FilterDateFrom = "date_from"
	FilterDateTo   = "date_to"
)

// BookingRepository defines the persistence port for bookings
type BookingRepository interface {
	// FindByID finds a booking owned by tenantID
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Booking, error)

	// FindByIDAnyTenant finds a booking by ID only. Used by the payment
	// webhook, which carries no tenant context.
	FindByIDAnyTenant(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByReference finds a booking by its human reference
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*Booking, error)

	// FindByPaymentIntent finds the booking paid with a payment intent
	FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*Booking, error)

	// FindAll lists bookings with filtering and paging
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Booking, error)

	// Count counts bookings matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a booking with optimistic locking on Version
	Save(ctx context.Context, b *Booking) error

	// HasCompletedBooking reports whether userID completed or confirmed a tour,
	// used to mark reviews as verified
	HasCompletedBooking(ctx context.Context, tenantID, userID, tourID uuid.UUID) (bool, error)
}
