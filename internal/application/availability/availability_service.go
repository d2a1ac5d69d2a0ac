package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/availability"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// TourLookup finds a tour visible to a storefront
type TourLookup interface {
	GetPublic(ctx context.Context, cfg tenant.Config, id uuid.UUID) (*catalog.Tour, error)
}

// Reservation is the outcome of holding seats for a booking
type Reservation struct {
	// SlotTime is the slot the seats were taken from, empty on open-sale days
	SlotTime string
	Held     bool
}

// AvailabilityService serves tour calendars and guards slot capacity
type AvailabilityService struct {
	dayRepo      availability.AvailabilityRepository
	stopSaleRepo availability.StopSaleRepository
	tours        TourLookup
	logger       *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(
	dayRepo availability.AvailabilityRepository,
	stopSaleRepo availability.StopSaleRepository,
	tours TourLookup,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		dayRepo:      dayRepo,
		stopSaleRepo: stopSaleRepo,
		tours:        tours,
		logger:       logger,
	}
}

// Calendar returns the day-by-day availability of a tour the storefront can
// see. Days without a record are open for sale unless a stop-sale covers them.
func (s *AvailabilityService) Calendar(ctx context.Context, cfg tenant.Config, tourID uuid.UUID, from, to time.Time, optionID string) (*CalendarResponse, error) {
	from, to = shared.DateOnly(from), shared.DateOnly(to)
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date must not be before start date")
	}
	if shared.DaysBetween(from, to) >= MaxCalendarDays {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Calendar range cannot exceed 93 days")
	}

	t, err := s.tours.GetPublic(ctx, cfg, tourID)
	if err != nil {
		return nil, err
	}
	return s.calendar(ctx, t.TenantID, t.ID, from, to, optionID)
}

// AdminCalendar returns the calendar of a tour the tenant owns
func (s *AvailabilityService) AdminCalendar(ctx context.Context, tenantID, tourID uuid.UUID, from, to time.Time) (*CalendarResponse, error) {
	from, to = shared.DateOnly(from), shared.DateOnly(to)
	if to.Before(from) || shared.DaysBetween(from, to) >= MaxCalendarDays {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Calendar range must be 1-93 days")
	}
	return s.calendar(ctx, tenantID, tourID, from, to, "")
}

func (s *AvailabilityService) calendar(ctx context.Context, ownerID, tourID uuid.UUID, from, to time.Time, optionID string) (*CalendarResponse, error) {
	records, err := s.dayRepo.FindByTourAndRange(ctx, ownerID, tourID, from, to)
	if err != nil {
		return nil, err
	}
	stopSales, err := s.stopSaleRepo.FindOverlapping(ctx, ownerID, tourID, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*availability.Availability, len(records))
	for i := range records {
		byDate[records[i].Date.Format(shared.DateLayout)] = &records[i]
	}

	resp := &CalendarResponse{
		TourID: tourID,
		From:   from.Format(shared.DateLayout),
		To:     to.Format(shared.DateLayout),
		Days:   make([]DayResponse, 0, shared.DaysBetween(from, to)+1),
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(shared.DateLayout)
		if rec, ok := byDate[key]; ok {
			resp.Days = append(resp.Days, ToDayResponse(rec, stopSales, optionID))
			continue
		}
		status := availability.StatusAvailable
		if availability.CoveredBy(stopSales, tourID, d, optionID) {
			status = availability.StatusBlocked
		}
		resp.Days = append(resp.Days, DayResponse{Date: key, Status: status, Slots: []SlotResponse{}})
	}
	return resp, nil
}

// Reserve holds qty seats of t on date for a booking. The capacity check
// and the increment happen in one conditional update.
func (s *AvailabilityService) Reserve(ctx context.Context, t *catalog.Tour, date time.Time, slotTime, optionID string, qty int) (*Reservation, error) {
	date = shared.DateOnly(date)
	stopSales, err := s.stopSaleRepo.FindOverlapping(ctx, t.TenantID, t.ID, date, date)
	if err != nil {
		return nil, err
	}
	if availability.CoveredBy(stopSales, t.ID, date, optionID) {
		return nil, shared.ErrStopSale
	}

	day, err := s.dayRepo.FindByTourAndDate(ctx, t.TenantID, t.ID, date)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &Reservation{}, nil
		}
		return nil, err
	}
	if day.StopSale {
		return nil, shared.ErrStopSale
	}
	if len(day.Slots) == 0 {
		return &Reservation{}, nil
	}
	if slotTime == "" && len(day.Slots) > 1 {
		return nil, shared.NewDomainError("SLOT_REQUIRED", "Choose a time slot for this date")
	}
	slot, ok := day.Slot(slotTime)
	if !ok {
		return nil, shared.NewDomainError("SLOT_NOT_FOUND", "Slot not found")
	}
	if slot.Blocked {
		return nil, shared.ErrStopSale
	}

	if err := s.dayRepo.ReserveSlot(ctx, t.TenantID, t.ID, date, slot.Time, qty); err != nil {
		return nil, err
	}
	return &Reservation{SlotTime: slot.Time, Held: true}, nil
}

// Release gives seats back to a slot. ownerID is the tenant owning the tour.
func (s *AvailabilityService) Release(ctx context.Context, ownerID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error {
	if slotTime == "" || qty <= 0 {
		return nil
	}
	return s.dayRepo.ReleaseSlot(ctx, ownerID, tourID, shared.DateOnly(date), slotTime, qty)
}

// UpsertDay creates or replaces the slot layout of a day
func (s *AvailabilityService) UpsertDay(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, req UpsertDayRequest) (*DayResponse, error) {
	day, err := s.dayRepo.FindByTourAndDate(ctx, tenantID, tourID, date)
	switch {
	case err == nil:
		if err := day.SetSlots(toSlots(req.Slots)); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		day, err = availability.NewAvailability(tenantID, tourID, date, toSlots(req.Slots))
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	if req.StopSale != nil {
		day.SetStopSale(*req.StopSale)
	}
	day.Notes = req.Notes

	if err := s.dayRepo.Save(ctx, day); err != nil {
		return nil, err
	}
	resp := ToDayResponse(day, nil, "")
	return &resp, nil
}

// SetDayStopSale toggles the whole-day stop-sale flag, creating an empty
// day record when none exists
func (s *AvailabilityService) SetDayStopSale(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, stop bool) (*DayResponse, error) {
	day, err := s.dayRepo.FindByTourAndDate(ctx, tenantID, tourID, date)
	if errors.Is(err, shared.ErrNotFound) {
		day, err = availability.NewAvailability(tenantID, tourID, date, nil)
	}
	if err != nil {
		return nil, err
	}
	day.SetStopSale(stop)
	if err := s.dayRepo.Save(ctx, day); err != nil {
		return nil, err
	}
	s.logger.Info("Day stop-sale changed",
		zap.String("tour_id", tourID.String()),
		zap.String("date", date.Format(shared.DateLayout)),
		zap.Bool("stop_sale", stop))
	resp := ToDayResponse(day, nil, "")
	return &resp, nil
}

// BlockSlot toggles the blocked flag of one slot
func (s *AvailabilityService) BlockSlot(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, req BlockSlotRequest) (*DayResponse, error) {
	return s.mutateDay(ctx, tenantID, tourID, date, func(a *availability.Availability) error {
		return a.BlockSlot(req.Time, req.Blocked)
	})
}

// SetExtraCapacity changes the overflow seats of one slot
func (s *AvailabilityService) SetExtraCapacity(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, req ExtraCapacityRequest) (*DayResponse, error) {
	return s.mutateDay(ctx, tenantID, tourID, date, func(a *availability.Availability) error {
		return a.SetExtraCapacity(req.Time, req.ExtraCapacity)
	})
}

// DeleteDay removes a day record; the day returns to open sale
func (s *AvailabilityService) DeleteDay(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time) error {
	day, err := s.dayRepo.FindByTourAndDate(ctx, tenantID, tourID, date)
	if err != nil {
		return err
	}
	return s.dayRepo.Delete(ctx, tenantID, day.ID)
}

func (s *AvailabilityService) mutateDay(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, fn func(*availability.Availability) error) (*DayResponse, error) {
	day, err := s.dayRepo.FindByTourAndDate(ctx, tenantID, tourID, date)
	if err != nil {
		return nil, err
	}
	if err := fn(day); err != nil {
		return nil, err
	}
	if err := s.dayRepo.Save(ctx, day); err != nil {
		return nil, err
	}
	resp := ToDayResponse(day, nil, "")
	return &resp, nil
}

// ListStopSales returns the tenant's stop-sales
func (s *AvailabilityService) ListStopSales(ctx context.Context, tenantID uuid.UUID, filter StopSaleListFilter) (*shared.Paginated[StopSaleResponse], error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize}.Normalize()
	if id, err := uuid.Parse(filter.TourID); err == nil {
		f.Filters["tour_id"] = id
	}

	items, err := s.stopSaleRepo.FindAll(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.stopSaleRepo.Count(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	out := make([]StopSaleResponse, len(items))
	for i := range items {
		out[i] = ToStopSaleResponse(&items[i])
	}
	page := shared.NewPaginated(out, total, f.Page, f.PageSize)
	return &page, nil
}

// CreateStopSale blocks a tour over a date range
func (s *AvailabilityService) CreateStopSale(ctx context.Context, tenantID uuid.UUID, req StopSaleRequest) (*StopSaleResponse, error) {
	tourID, start, end, err := parseStopSale(req)
	if err != nil {
		return nil, err
	}
	ss, err := availability.NewStopSale(tenantID, tourID, start, end, req.OptionIDs, req.Reason)
	if err != nil {
		return nil, err
	}
	if err := s.stopSaleRepo.Save(ctx, ss); err != nil {
		return nil, err
	}
	s.logger.Info("Stop-sale created",
		zap.String("tour_id", tourID.String()),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate))
	resp := ToStopSaleResponse(ss)
	return &resp, nil
}

// UpdateStopSale changes a stop-sale's range, options and reason
func (s *AvailabilityService) UpdateStopSale(ctx context.Context, tenantID, id uuid.UUID, req StopSaleRequest) (*StopSaleResponse, error) {
	ss, err := s.stopSaleRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	_, start, end, err := parseStopSale(req)
	if err != nil {
		return nil, err
	}
	if err := ss.Update(start, end, req.OptionIDs, req.Reason); err != nil {
		return nil, err
	}
	if err := s.stopSaleRepo.Save(ctx, ss); err != nil {
		return nil, err
	}
	resp := ToStopSaleResponse(ss)
	return &resp, nil
}

// DeleteStopSale lifts a stop-sale
func (s *AvailabilityService) DeleteStopSale(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.stopSaleRepo.Delete(ctx, tenantID, id)
}

func parseStopSale(req StopSaleRequest) (uuid.UUID, time.Time, time.Time, error) {
	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, shared.NewDomainError("INVALID_INPUT", "Invalid tour ID")
	}
	start, err := shared.ParseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE", "Start date must be YYYY-MM-DD")
	}
	end, err := shared.ParseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE", "End date must be YYYY-MM-DD")
	}
	return tourID, start, end, nil
}
