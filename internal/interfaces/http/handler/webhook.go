package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	bookingapp "github.com/travelhub/backend/internal/application/booking"
	"github.com/travelhub/backend/internal/infrastructure/logger"
	"github.com/travelhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// maxWebhookPayloadSize caps Stripe event bodies at 64KB
const maxWebhookPayloadSize = 65536

// PaymentWebhookService is the part of booking.PaymentWebhookService the handler uses
type PaymentWebhookService interface {
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (*bookingapp.WebhookResult, error)
}

// WebhookResponse is the body returned to Stripe
type WebhookResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Message   string `json:"message,omitempty"`
}

// WebhookHandler receives payment provider callbacks
type WebhookHandler struct {
	BaseHandler
	webhookService PaymentWebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService PaymentWebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// Stripe POST /api/webhooks/stripe
//
// Once the signature checks out the handler always answers 200 so Stripe
// stops retrying events the service could not apply.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())
	if h.webhookService == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Payments are not enabled")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Payload too large")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.Unauthorized(c, "Missing Stripe-Signature header")
		return
	}

	result, err := h.webhookService.ProcessWebhook(c.Request.Context(), payload, signature)
	if errors.Is(err, bookingapp.ErrInvalidWebhookSignature) || (err != nil && result == nil) {
		log.Warn("Rejected Stripe webhook", zap.Error(err))
		h.Unauthorized(c, "Invalid webhook signature")
		return
	}
	if err != nil {
		log.Error("Stripe webhook processing failed",
			zap.String("event_id", result.EventID),
			zap.String("event_type", result.EventType),
			zap.Error(err))
		c.JSON(http.StatusOK, WebhookResponse{
			Received:  true,
			EventID:   result.EventID,
			EventType: result.EventType,
			Message:   "received but processing encountered an issue",
		})
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{
		Received:  true,
		EventID:   result.EventID,
		EventType: result.EventType,
		Message:   result.Message,
	})
}
