package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// AvailabilityRepository defines the persistence port for day records
type AvailabilityRepository interface {
	// FindByTourAndDate finds the record of one day
	FindByTourAndDate(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time) (*Availability, error)

	// FindByTourAndRange lists day records within [from, to] ordered by date
	FindByTourAndRange(ctx context.Context, tenantID, tourID uuid.UUID, from, to time.Time) ([]Availability, error)

	// Save creates or updates a day record with its slots
	Save(ctx context.Context, a *Availability) error

	// Delete removes a day record; fails when any slot has bookings
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// ReserveSlot atomically adds qty to booked only while
	// booked+qty <= capacity+extra_capacity and neither the slot nor the day is
	// stopped. Returns shared.ErrSlotFull or shared.ErrStopSale when the
	// guard rejects the update.
	ReserveSlot(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error

	// ReleaseSlot atomically subtracts qty from booked, floored at zero
	ReleaseSlot(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error
}

// StopSaleRepository defines the persistence port for stop-sales
type StopSaleRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*StopSale, error)

	// FindOverlapping lists stop-sales of tourID intersecting [from, to]
	FindOverlapping(ctx context.Context, tenantID, tourID uuid.UUID, from, to time.Time) ([]StopSale, error)

	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StopSale, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, s *StopSale) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
