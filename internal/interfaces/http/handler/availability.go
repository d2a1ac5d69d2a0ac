package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	availabilityapp "github.com/travelhub/backend/internal/application/availability"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// defaultCalendarDays is the span served when the query has no end date
const defaultCalendarDays = 30

// AvailabilityService is the part of availability.AvailabilityService the
// handler uses
type AvailabilityService interface {
	Calendar(ctx context.Context, cfg tenant.Config, tourID uuid.UUID, from, to time.Time, optionID string) (*availabilityapp.CalendarResponse, error)
	AdminCalendar(ctx context.Context, tenantID, tourID uuid.UUID, from, to time.Time) (*availabilityapp.CalendarResponse, error)
	UpsertDay(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, req availabilityapp.UpsertDayRequest) (*availabilityapp.DayResponse, error)
	SetDayStopSale(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, stop bool) (*availabilityapp.DayResponse, error)
	BlockSlot(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, req availabilityapp.BlockSlotRequest) (*availabilityapp.DayResponse, error)
	SetExtraCapacity(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, req availabilityapp.ExtraCapacityRequest) (*availabilityapp.DayResponse, error)
	DeleteDay(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time) error
	ListStopSales(ctx context.Context, tenantID uuid.UUID, filter availabilityapp.StopSaleListFilter) (*shared.Paginated[availabilityapp.StopSaleResponse], error)
	CreateStopSale(ctx context.Context, tenantID uuid.UUID, req availabilityapp.StopSaleRequest) (*availabilityapp.StopSaleResponse, error)
	UpdateStopSale(ctx context.Context, tenantID, id uuid.UUID, req availabilityapp.StopSaleRequest) (*availabilityapp.StopSaleResponse, error)
	DeleteStopSale(ctx context.Context, tenantID, id uuid.UUID) error
}

// CalendarQuery selects the date range of a calendar
type CalendarQuery struct {
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	OptionID string `form:"option_id"`
}

// dates resolves the range, defaulting to the next 30 days from today
func (q CalendarQuery) dates(now time.Time) (time.Time, time.Time, error) {
	from := shared.DateOnly(now)
	if q.From != "" {
		d, err := shared.ParseDate(q.From)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = d
	}
	to := from.AddDate(0, 0, defaultCalendarDays)
	if q.To != "" {
		d, err := shared.ParseDate(q.To)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = d
	}
	return from, to, nil
}

// AvailabilityHandler handles calendars, day overrides and stop-sales
type AvailabilityHandler struct {
	BaseHandler
	availabilityService AvailabilityService
	now                 func() time.Time
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(availabilityService AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService, now: time.Now}
}

// Calendar returns day statuses and slot seats of a tour
// GET /api/tours/:id/availability?from=&to=&option_id=
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	tourID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var q CalendarQuery
	if !h.bindQuery(c, &q) {
		return
	}
	from, to, err := q.dates(h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cal, err := h.availabilityService.Calendar(c.Request.Context(), h.tenantConfig(c), tourID, from, to, q.OptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cal)
}

// AdminCalendar GET /api/admin/tours/:id/availability
func (h *AvailabilityHandler) AdminCalendar(c *gin.Context) {
	tourID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var q CalendarQuery
	if !h.bindQuery(c, &q) {
		return
	}
	from, to, err := q.dates(h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cal, err := h.availabilityService.AdminCalendar(c.Request.Context(), h.tenantID(c), tourID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cal)
}

// dayParams parses the :id and :date path parameters
func (h *AvailabilityHandler) dayParams(c *gin.Context) (uuid.UUID, time.Time, bool) {
	tourID, ok := h.uuidParam(c, "id")
	if !ok {
		return uuid.Nil, time.Time{}, false
	}
	date, err := shared.ParseDate(c.Param("date"))
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, time.Time{}, false
	}
	return tourID, date, true
}

// UpsertDay replaces the slot layout of a day
// PUT /api/admin/tours/:id/availability/:date
func (h *AvailabilityHandler) UpsertDay(c *gin.Context) {
	tourID, date, ok := h.dayParams(c)
	if !ok {
		return
	}
	var req availabilityapp.UpsertDayRequest
	if !h.bindJSON(c, &req) {
		return
	}
	day, err := h.availabilityService.UpsertDay(c.Request.Context(), h.tenantID(c), tourID, date, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, day)
}

// SetStopSale PUT /api/admin/tours/:id/availability/:date/stop-sale
func (h *AvailabilityHandler) SetStopSale(c *gin.Context) {
	tourID, date, ok := h.dayParams(c)
	if !ok {
		return
	}
	var req availabilityapp.StopSaleToggleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	day, err := h.availabilityService.SetDayStopSale(c.Request.Context(), h.tenantID(c), tourID, date, req.StopSale)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, day)
}

// BlockSlot PUT /api/admin/tours/:id/availability/:date/block
func (h *AvailabilityHandler) BlockSlot(c *gin.Context) {
	tourID, date, ok := h.dayParams(c)
	if !ok {
		return
	}
	var req availabilityapp.BlockSlotRequest
	if !h.bindJSON(c, &req) {
		return
	}
	day, err := h.availabilityService.BlockSlot(c.Request.Context(), h.tenantID(c), tourID, date, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, day)
}

// SetExtraCapacity PUT /api/admin/tours/:id/availability/:date/extra-capacity
func (h *AvailabilityHandler) SetExtraCapacity(c *gin.Context) {
	tourID, date, ok := h.dayParams(c)
	if !ok {
		return
	}
	var req availabilityapp.ExtraCapacityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	day, err := h.availabilityService.SetExtraCapacity(c.Request.Context(), h.tenantID(c), tourID, date, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, day)
}

// DeleteDay drops the override of a day; booked days are kept
// DELETE /api/admin/tours/:id/availability/:date
func (h *AvailabilityHandler) DeleteDay(c *gin.Context) {
	tourID, date, ok := h.dayParams(c)
	if !ok {
		return
	}
	if err := h.availabilityService.DeleteDay(c.Request.Context(), h.tenantID(c), tourID, date); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListStopSales GET /api/admin/stop-sales
func (h *AvailabilityHandler) ListStopSales(c *gin.Context) {
	var filter availabilityapp.StopSaleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.availabilityService.ListStopSales(c.Request.Context(), h.tenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// CreateStopSale POST /api/admin/stop-sales
func (h *AvailabilityHandler) CreateStopSale(c *gin.Context) {
	var req availabilityapp.StopSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	ss, err := h.availabilityService.CreateStopSale(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ss)
}

// UpdateStopSale PUT /api/admin/stop-sales/:id
func (h *AvailabilityHandler) UpdateStopSale(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req availabilityapp.StopSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	ss, err := h.availabilityService.UpdateStopSale(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ss)
}

// DeleteStopSale DELETE /api/admin/stop-sales/:id
func (h *AvailabilityHandler) DeleteStopSale(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.availabilityService.DeleteStopSale(c.Request.Context(), h.tenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
