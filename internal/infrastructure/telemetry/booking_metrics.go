package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/travelhub/backend/internal/domain/booking"
	"github.com/travelhub/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of business metrics
const MeterName = "travelhub-backend"

// ErrMeterNil is returned when metrics are built without a meter
var ErrMeterNil = errors.New("meter cannot be nil")

// BookingMetrics counts booking lifecycle events per tenant. It subscribes
// to the event bus like any other booking event handler.
type BookingMetrics struct {
	events  metric.Int64Counter
	guests  metric.Int64Counter
	revenue metric.Float64Counter
	refunds metric.Float64Counter
}

// NewBookingMetrics registers the booking instruments on meter
func NewBookingMetrics(meter metric.Meter) (*BookingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	events, err := meter.Int64Counter("travelhub.bookings.events",
		metric.WithDescription("Booking lifecycle events by type"),
		metric.WithUnit("{event}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create bookings counter: %w", err)
	}
	guests, err := meter.Int64Counter("travelhub.bookings.guests",
		metric.WithDescription("Guests booked"),
		metric.WithUnit("{guest}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create guests counter: %w", err)
	}
	revenue, err := meter.Float64Counter("travelhub.bookings.revenue",
		metric.WithDescription("Gross value of placed bookings"))
	if err != nil {
		return nil, fmt.Errorf("failed to create revenue counter: %w", err)
	}
	refunds, err := meter.Float64Counter("travelhub.bookings.refunds",
		metric.WithDescription("Value refunded to customers"))
	if err != nil {
		return nil, fmt.Errorf("failed to create refunds counter: %w", err)
	}
	return &BookingMetrics{events: events, guests: guests, revenue: revenue, refunds: refunds}, nil
}

// EventTypes returns the booking events this handler records
func (m *BookingMetrics) EventTypes() []string {
	return []string{
		booking.EventTypeBookingCreated,
		booking.EventTypeBookingConfirmed,
		booking.EventTypeBookingCancelled,
		booking.EventTypeBookingRefunded,
	}
}

// Handle records one booking event
func (m *BookingMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	be, ok := event.(booking.BookingEvent)
	if !ok {
		return nil
	}
	snap := be.Booking()
	tenantAttr := attribute.String("tenant_id", event.TenantID().String())
	currencyAttr := attribute.String("currency", snap.Currency)

	m.events.Add(ctx, 1, metric.WithAttributes(tenantAttr, attribute.String("event_type", event.EventType())))

	switch e := event.(type) {
	case *booking.BookingCreatedEvent:
		m.guests.Add(ctx, int64(snap.Guests), metric.WithAttributes(tenantAttr))
		m.revenue.Add(ctx, snap.TotalPrice.InexactFloat64(), metric.WithAttributes(tenantAttr, currencyAttr))
	case *booking.BookingRefundedEvent:
		m.refunds.Add(ctx, e.RefundAmount.InexactFloat64(), metric.WithAttributes(tenantAttr, currencyAttr))
	}
	return nil
}

var _ shared.EventHandler = (*BookingMetrics)(nil)
