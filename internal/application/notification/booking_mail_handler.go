package notification

import (
	"context"
	"fmt"

	"github.com/travelhub/backend/internal/domain/booking"
	"github.com/travelhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BookingMailHandler emails customers about their booking lifecycle.
// Delivery is best-effort: failures are logged and never reach the publisher.
type BookingMailHandler struct {
	mailer Mailer
	logger *zap.Logger
}

// NewBookingMailHandler creates a new handler for booking events
func NewBookingMailHandler(mailer Mailer, logger *zap.Logger) *BookingMailHandler {
	return &BookingMailHandler{
		mailer: mailer,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *BookingMailHandler) EventTypes() []string {
	return []string{
		booking.EventTypeBookingCreated,
		booking.EventTypeBookingConfirmed,
		booking.EventTypeBookingCancelled,
		booking.EventTypeBookingRefunded,
	}
}

// Handle renders and sends the email matching the event
func (h *BookingMailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg, err := h.compose(event)
	if err != nil {
		h.logger.Error("failed to render booking email",
			zap.String("event_type", event.EventType()),
			zap.String("booking_id", event.AggregateID().String()),
			zap.Error(err),
		)
		return nil
	}
	if msg.ToEmail == "" {
		return nil
	}

	if err := h.mailer.Send(ctx, msg); err != nil {
		h.logger.Warn("booking email not delivered",
			zap.String("event_type", event.EventType()),
			zap.String("booking_id", event.AggregateID().String()),
			zap.Error(err),
		)
		return nil
	}
	h.logger.Info("booking email sent",
		zap.String("event_type", event.EventType()),
		zap.String("booking_id", event.AggregateID().String()),
	)
	return nil
}

func (h *BookingMailHandler) compose(event shared.DomainEvent) (Message, error) {
	switch e := event.(type) {
	case *booking.BookingCreatedEvent:
		v := newMailView(e.Snapshot)
		v.Headline = "We received your booking"
		v.Intro = "Thank you for booking with us. Your reservation is pending confirmation."
		return render(fmt.Sprintf("Booking %s received", e.Reference), e.Customer, v)
	case *booking.BookingConfirmedEvent:
		v := newMailView(e.Snapshot)
		v.Headline = "Your booking is confirmed"
		v.Intro = "Everything is set. We look forward to seeing you."
		return render(fmt.Sprintf("Booking %s confirmed", e.Reference), e.Customer, v)
	case *booking.BookingCancelledEvent:
		v := newMailView(e.Snapshot)
		v.Headline = "Your booking was cancelled"
		v.Intro = "Your booking has been cancelled."
		v.Reason = e.Reason
		if e.RefundAmount.IsPositive() {
			v.RefundPercentage = e.RefundPercentage
			v.RefundAmount = e.RefundAmount.StringFixed(2)
		}
		return render(fmt.Sprintf("Booking %s cancelled", e.Reference), e.Customer, v)
	case *booking.BookingRefundedEvent:
		v := newMailView(e.Snapshot)
		v.Headline = "Your refund is on its way"
		v.Intro = "We have issued a refund for your booking."
		v.RefundPercentage = e.RefundPercentage
		v.RefundAmount = e.RefundAmount.StringFixed(2)
		return render(fmt.Sprintf("Refund for booking %s", e.Reference), e.Customer, v)
	default:
		return Message{}, fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

// Ensure BookingMailHandler implements shared.EventHandler
var _ shared.EventHandler = (*BookingMailHandler)(nil)
