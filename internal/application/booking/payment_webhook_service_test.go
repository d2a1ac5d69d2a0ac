package booking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/travelhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

func signedEvent(t *testing.T, eventType string, object any) ([]byte, string) {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)
	payload, err := json.Marshal(map[string]any{
		"id":          "evt_" + uuid.NewString()[:8],
		"object":      "event",
		"type":        eventType,
		"api_version": "2020-08-27",
		"data":        map[string]json.RawMessage{"object": raw},
	})
	require.NoError(t, err)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Payload, signed.Header
}

func newWebhookService() (*PaymentWebhookService, *MockPaymentRecorder) {
	recorder := new(MockPaymentRecorder)
	return NewPaymentWebhookService(testWebhookSecret, recorder, zap.NewNop()), recorder
}

func TestPaymentWebhookService_InvalidSignature(t *testing.T) {
	service, recorder := newWebhookService()

	result, err := service.ProcessWebhook(context.Background(), []byte(`{"type":"payment_intent.succeeded"}`), "t=1,v1=bad")
	assert.ErrorIs(t, err, ErrInvalidWebhookSignature)
	assert.Nil(t, result)
	recorder.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentWebhookService_PaymentSucceeded(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	t.Run("confirms the booking in metadata", func(t *testing.T) {
		service, recorder := newWebhookService()
		payload, header := signedEvent(t, StripeEventPaymentSucceeded, stripe.PaymentIntent{
			ID:       "pi_abc",
			Metadata: map[string]string{MetadataBookingID: bookingID.String()},
		})
		recorder.On("ConfirmPayment", ctx, bookingID, "pi_abc").Return(&BookingResponse{ID: bookingID}, nil)

		result, err := service.ProcessWebhook(ctx, payload, header)
		require.NoError(t, err)
		assert.True(t, result.Processed)
		assert.Equal(t, StripeEventPaymentSucceeded, result.EventType)
		recorder.AssertExpectations(t)
	})

	t.Run("payment without booking is acknowledged", func(t *testing.T) {
		service, recorder := newWebhookService()
		payload, header := signedEvent(t, StripeEventPaymentSucceeded, stripe.PaymentIntent{ID: "pi_other"})

		result, err := service.ProcessWebhook(ctx, payload, header)
		require.NoError(t, err)
		assert.True(t, result.Processed)
		recorder.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown booking is acknowledged", func(t *testing.T) {
		service, recorder := newWebhookService()
		payload, header := signedEvent(t, StripeEventPaymentSucceeded, stripe.PaymentIntent{
			ID:       "pi_gone",
			Metadata: map[string]string{MetadataBookingID: bookingID.String()},
		})
		recorder.On("ConfirmPayment", ctx, bookingID, "pi_gone").Return(nil, shared.ErrNotFound)

		_, err := service.ProcessWebhook(ctx, payload, header)
		require.NoError(t, err)
	})

	t.Run("state conflicts are reported for retry", func(t *testing.T) {
		service, recorder := newWebhookService()
		payload, header := signedEvent(t, StripeEventPaymentSucceeded, stripe.PaymentIntent{
			ID:       "pi_late",
			Metadata: map[string]string{MetadataBookingID: bookingID.String()},
		})
		recorder.On("ConfirmPayment", ctx, bookingID, "pi_late").Return(nil, shared.ErrConcurrencyConflict)

		result, err := service.ProcessWebhook(ctx, payload, header)
		require.Error(t, err)
		assert.False(t, result.Processed)
	})
}

func TestPaymentWebhookService_PaymentFailedOnlyLogs(t *testing.T) {
	service, recorder := newWebhookService()
	payload, header := signedEvent(t, StripeEventPaymentFailed, stripe.PaymentIntent{
		ID:               "pi_declined",
		LastPaymentError: &stripe.Error{Msg: "card declined"},
	})

	result, err := service.ProcessWebhook(context.Background(), payload, header)
	require.NoError(t, err)
	assert.True(t, result.Processed)
	assert.Empty(t, recorder.Calls)
}

func TestPaymentWebhookService_ChargeRefunded(t *testing.T) {
	ctx := context.Background()
	service, recorder := newWebhookService()
	payload, header := signedEvent(t, StripeEventChargeRefunded, stripe.Charge{
		ID:             "ch_1",
		Amount:         20000,
		AmountRefunded: 20000,
		PaymentIntent:  &stripe.PaymentIntent{ID: "pi_abc"},
	})
	recorder.On("RefundPayment", ctx, "pi_abc", int64(20000), int64(20000)).Return(&BookingResponse{Status: "refunded"}, nil)

	_, err := service.ProcessWebhook(ctx, payload, header)
	require.NoError(t, err)
	recorder.AssertExpectations(t)
}

func TestPaymentWebhookService_UnhandledType(t *testing.T) {
	service, _ := newWebhookService()
	payload, header := signedEvent(t, "customer.created", map[string]string{"id": "cus_1"})

	result, err := service.ProcessWebhook(context.Background(), payload, header)
	require.NoError(t, err)
	assert.Equal(t, "Event type not handled", result.Message)
}
