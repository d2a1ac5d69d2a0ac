package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/travelhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Stripe event types the webhook acts on
const (
	StripeEventPaymentSucceeded = "payment_intent.succeeded"
	StripeEventPaymentFailed    = "payment_intent.payment_failed"
	StripeEventChargeRefunded   = "charge.refunded"
)

// MetadataBookingID is the payment intent metadata key carrying the booking ID
const MetadataBookingID = "booking_id"

// ErrInvalidWebhookSignature is returned when a payload fails verification
var ErrInvalidWebhookSignature = errors.New("webhook signature verification failed")

// PaymentRecorder applies payment provider outcomes to bookings
type PaymentRecorder interface {
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentIntentID string) (*BookingResponse, error)
	RefundPayment(ctx context.Context, paymentIntentID string, amountRefunded, amount int64) (*BookingResponse, error)
}

// PaymentWebhookService handles Stripe payment webhooks
type PaymentWebhookService struct {
	secret   string
	bookings PaymentRecorder
	logger   *zap.Logger
}

// NewPaymentWebhookService creates a new PaymentWebhookService
func NewPaymentWebhookService(webhookSecret string, bookings PaymentRecorder, logger *zap.Logger) *PaymentWebhookService {
	return &PaymentWebhookService{
		secret:   webhookSecret,
		bookings: bookings,
		logger:   logger,
	}
}

// WebhookResult contains the result of processing a webhook
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// ProcessWebhook verifies and dispatches a Stripe event
func (s *PaymentWebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.secret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		s.logger.Warn("Failed to verify webhook signature", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhookSignature, err)
	}

	s.logger.Info("Processing Stripe webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Processed: true,
	}

	switch string(event.Type) {
	case StripeEventPaymentSucceeded:
		err = s.handlePaymentSucceeded(ctx, event)
	case StripeEventPaymentFailed:
		err = s.handlePaymentFailed(event)
	case StripeEventChargeRefunded:
		err = s.handleChargeRefunded(ctx, event)
	default:
		s.logger.Debug("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
		result.Message = "Event type not handled"
	}

	if err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		result.Processed = false
		result.Message = err.Error()
		return result, err
	}
	return result, nil
}

func (s *PaymentWebhookService) handlePaymentSucceeded(ctx context.Context, event stripe.Event) error {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}
	raw, ok := pi.Metadata[MetadataBookingID]
	if !ok {
		s.logger.Warn("Payment intent has no booking reference, skipping",
			zap.String("payment_intent_id", pi.ID))
		return nil
	}
	bookingID, err := uuid.Parse(raw)
	if err != nil {
		s.logger.Warn("Payment intent carries an invalid booking ID, skipping",
			zap.String("payment_intent_id", pi.ID),
			zap.String("booking_id", raw))
		return nil
	}

	if _, err := s.bookings.ConfirmPayment(ctx, bookingID, pi.ID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Booking not found for payment",
				zap.String("payment_intent_id", pi.ID),
				zap.String("booking_id", raw))
			return nil
		}
		return fmt.Errorf("failed to confirm booking: %w", err)
	}
	s.logger.Info("Booking paid",
		zap.String("booking_id", raw),
		zap.String("payment_intent_id", pi.ID))
	return nil
}

func (s *PaymentWebhookService) handlePaymentFailed(event stripe.Event) error {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}
	reason := ""
	if pi.LastPaymentError != nil {
		reason = pi.LastPaymentError.Msg
	}
	s.logger.Warn("Booking payment failed",
		zap.String("payment_intent_id", pi.ID),
		zap.String("booking_id", pi.Metadata[MetadataBookingID]),
		zap.String("reason", reason))
	return nil
}

func (s *PaymentWebhookService) handleChargeRefunded(ctx context.Context, event stripe.Event) error {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return fmt.Errorf("failed to unmarshal charge: %w", err)
	}
	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		s.logger.Warn("Refunded charge has no payment intent, skipping", zap.String("charge_id", charge.ID))
		return nil
	}

	if _, err := s.bookings.RefundPayment(ctx, charge.PaymentIntent.ID, charge.AmountRefunded, charge.Amount); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Booking not found for refunded charge",
				zap.String("payment_intent_id", charge.PaymentIntent.ID))
			return nil
		}
		return fmt.Errorf("failed to refund booking: %w", err)
	}
	return nil
}
