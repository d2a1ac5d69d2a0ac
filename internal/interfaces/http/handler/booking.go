package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bookingapp "github.com/travelhub/backend/internal/application/booking"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// BookingService is the part of booking.BookingService the handler uses
type BookingService interface {
	Checkout(ctx context.Context, cfg tenant.Config, userID uuid.UUID, req bookingapp.CheckoutRequest) (*bookingapp.BookingResponse, error)
	Confirm(ctx context.Context, tenantID, id uuid.UUID) (*bookingapp.BookingResponse, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID, actor bookingapp.Actor, req bookingapp.CancelRequest) (*bookingapp.BookingResponse, error)
	Refund(ctx context.Context, tenantID, id uuid.UUID, req bookingapp.RefundRequest) (*bookingapp.BookingResponse, error)
	Complete(ctx context.Context, tenantID, id uuid.UUID) (*bookingapp.BookingResponse, error)
	Get(ctx context.Context, tenantID, id uuid.UUID, actor bookingapp.Actor) (*bookingapp.BookingResponse, error)
	GetByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*bookingapp.BookingResponse, error)
	ListMine(ctx context.Context, tenantID, userID uuid.UUID, filter bookingapp.BookingListFilter) (*shared.Paginated[bookingapp.BookingResponse], error)
	ListAdmin(ctx context.Context, tenantID uuid.UUID, filter bookingapp.BookingListFilter) (*shared.Paginated[bookingapp.BookingResponse], error)
}

// BookingHandler handles checkout and the booking lifecycle
type BookingHandler struct {
	BaseHandler
	bookingService BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Checkout places a booking: seats are reserved, the best offer or the
// promo code is applied and the booking is stored as pending
// POST /api/bookings
func (h *BookingHandler) Checkout(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req bookingapp.CheckoutRequest
	if !h.bindJSON(c, &req) {
		return
	}

	b, err := h.bookingService.Checkout(c.Request.Context(), h.tenantConfig(c), p.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, b)
}

// ListMine GET /api/bookings/mine
func (h *BookingHandler) ListMine(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var filter bookingapp.BookingListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.bookingService.ListMine(c.Request.Context(), h.tenantID(c), p.UserID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get returns a booking to its owner or to an admin
// GET /api/bookings/:id, GET /api/admin/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	b, err := h.bookingService.Get(c.Request.Context(), h.tenantID(c), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Cancel cancels a booking. Customers cancel their own; repeating a
// cancellation returns the booking unchanged.
// POST /api/bookings/:id/cancel, POST /api/admin/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req bookingapp.CancelRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	b, err := h.bookingService.Cancel(c.Request.Context(), h.tenantID(c), id, actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// List GET /api/admin/bookings
func (h *BookingHandler) List(c *gin.Context) {
	var filter bookingapp.BookingListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.bookingService.ListAdmin(c.Request.Context(), h.tenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// GetByReference GET /api/admin/bookings/reference/:reference
func (h *BookingHandler) GetByReference(c *gin.Context) {
	b, err := h.bookingService.GetByReference(c.Request.Context(), h.tenantID(c), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Confirm POST /api/admin/bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookingService.Confirm)
}

// Complete POST /api/admin/bookings/:id/complete
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.bookingService.Complete)
}

// Refund refunds a cancelled or confirmed booking. The percentage defaults
// to the cancellation policy of the tour.
// POST /api/admin/bookings/:id/refund
func (h *BookingHandler) Refund(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req bookingapp.RefundRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	b, err := h.bookingService.Refund(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, tenantID, id uuid.UUID) (*bookingapp.BookingResponse, error)) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	b, err := fn(c.Request.Context(), h.tenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

func (h *BookingHandler) actor(c *gin.Context) (bookingapp.Actor, bool) {
	p, ok := h.principal(c)
	if !ok {
		return bookingapp.Actor{}, false
	}
	return bookingapp.Actor{UserID: p.UserID, Admin: p.IsAdmin()}, true
}
