package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	offerapp "github.com/travelhub/backend/internal/application/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// OfferService is the part of offer.OfferService the handler uses
type OfferService interface {
	List(ctx context.Context, tenantID uuid.UUID, filter offerapp.OfferListFilter) (*shared.Paginated[offerapp.OfferResponse], error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*offerapp.OfferResponse, error)
	Create(ctx context.Context, tenantID uuid.UUID, req offerapp.OfferRequest) (*offerapp.OfferResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req offerapp.OfferRequest) (*offerapp.OfferResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ForTour(ctx context.Context, cfg tenant.Config, tourID uuid.UUID, date *time.Time, optionID string, guests int) (*offerapp.TourOffersResponse, error)
	VerifyPromo(ctx context.Context, cfg tenant.Config, req offerapp.VerifyPromoRequest) (*offerapp.AppliedOffer, error)
}

// TourOffersQuery narrows the offers of a tour to a travel date and party
type TourOffersQuery struct {
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	OptionID string `form:"option_id"`
	Guests   int    `form:"guests" binding:"omitempty,min=1,max=100"`
}

// OfferHandler handles special offer requests
type OfferHandler struct {
	BaseHandler
	offerService OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// ForTour returns the qualifying offers of a tour and the best price
// GET /api/tours/:id/offers
func (h *OfferHandler) ForTour(c *gin.Context) {
	tourID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var q TourOffersQuery
	if !h.bindQuery(c, &q) {
		return
	}
	var date *time.Time
	if q.Date != "" {
		d, err := shared.ParseDate(q.Date)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		date = &d
	}

	resp, err := h.offerService.ForTour(c.Request.Context(), h.tenantConfig(c), tourID, date, q.OptionID, q.Guests)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// VerifyPromo POST /api/offers/verify-promo
func (h *OfferHandler) VerifyPromo(c *gin.Context) {
	var req offerapp.VerifyPromoRequest
	if !h.bindJSON(c, &req) {
		return
	}
	applied, err := h.offerService.VerifyPromo(c.Request.Context(), h.tenantConfig(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, applied)
}

// List GET /api/admin/offers
func (h *OfferHandler) List(c *gin.Context) {
	var filter offerapp.OfferListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.offerService.List(c.Request.Context(), h.tenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get GET /api/admin/offers/:id
func (h *OfferHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	o, err := h.offerService.GetByID(c.Request.Context(), h.tenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Create POST /api/admin/offers
func (h *OfferHandler) Create(c *gin.Context) {
	var req offerapp.OfferRequest
	if !h.bindJSON(c, &req) {
		return
	}
	o, err := h.offerService.Create(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, o)
}

// Update PUT /api/admin/offers/:id
func (h *OfferHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req offerapp.OfferRequest
	if !h.bindJSON(c, &req) {
		return
	}
	o, err := h.offerService.Update(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Delete DELETE /api/admin/offers/:id
func (h *OfferHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.offerService.Delete(c.Request.Context(), h.tenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
