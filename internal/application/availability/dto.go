package availability

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/availability"
	"github.com/travelhub/backend/internal/domain/shared"
)

// MaxCalendarDays caps the range of one calendar query
const MaxCalendarDays = 93

// SlotInput is one slot in an upsert request
type SlotInput struct {
	Time          string `json:"time" binding:"required,slot_time"`
	Capacity      int    `json:"capacity" binding:"min=0"`
	ExtraCapacity int    `json:"extra_capacity" binding:"min=0"`
	Blocked       bool   `json:"blocked"`
}

// UpsertDayRequest replaces the slot layout of a day
type UpsertDayRequest struct {
	Slots    []SlotInput `json:"slots" binding:"dive"`
	StopSale *bool       `json:"stop_sale"`
	Notes    string      `json:"notes" binding:"max=500"`
}

// StopSaleToggleRequest toggles the whole-day stop-sale flag
type StopSaleToggleRequest struct {
	StopSale bool `json:"stop_sale"`
}

// BlockSlotRequest toggles a slot's blocked flag
type BlockSlotRequest struct {
	Time    string `json:"time" binding:"required,slot_time"`
	Blocked bool   `json:"blocked"`
}

// ExtraCapacityRequest sets a slot's overflow seats
type ExtraCapacityRequest struct {
	Time          string `json:"time" binding:"required,slot_time"`
	ExtraCapacity int    `json:"extra_capacity" binding:"min=0"`
}

// StopSaleRequest creates or updates a stop-sale range
type StopSaleRequest struct {
	TourID    string   `json:"tour_id" binding:"required,uuid"`
	StartDate string   `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string   `json:"end_date" binding:"required,datetime=2006-01-02"`
	OptionIDs []string `json:"option_ids"`
	Reason    string   `json:"reason" binding:"max=500"`
}

// StopSaleListFilter represents filter options for the stop-sale list
type StopSaleListFilter struct {
	TourID   string `form:"tour_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SlotResponse is a slot with its derived status
type SlotResponse struct {
	Time          string              `json:"time"`
	Capacity      int                 `json:"capacity"`
	ExtraCapacity int                 `json:"extra_capacity"`
	Booked        int                 `json:"booked"`
	Available     int                 `json:"available"`
	Blocked       bool                `json:"blocked"`
	Status        availability.Status `json:"status"`
}

// DayResponse is one calendar day
type DayResponse struct {
	ID       *uuid.UUID          `json:"id,omitempty"`
	Date     string              `json:"date"`
	Status   availability.Status `json:"status"`
	StopSale bool                `json:"stop_sale"`
	Notes    string              `json:"notes,omitempty"`
	Slots    []SlotResponse      `json:"slots"`
}

// CalendarResponse is the availability of a tour over a date range
type CalendarResponse struct {
	TourID uuid.UUID     `json:"tour_id"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Days   []DayResponse `json:"days"`
}

// StopSaleResponse represents a stop-sale in API responses
type StopSaleResponse struct {
	ID        uuid.UUID `json:"id"`
	TourID    uuid.UUID `json:"tour_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	OptionIDs []string  `json:"option_ids"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDayResponse converts a day record, applying stop-sales for optionID
func ToDayResponse(a *availability.Availability, stopSales []availability.StopSale, optionID string) DayResponse {
	stopped := a.IsStopped(stopSales, optionID)
	id := a.ID
	day := DayResponse{
		ID:       &id,
		Date:     a.Date.Format(shared.DateLayout),
		Status:   a.DayStatus(stopSales, optionID),
		StopSale: a.StopSale,
		Notes:    a.Notes,
		Slots:    make([]SlotResponse, len(a.Slots)),
	}
	for i, s := range a.Slots {
		day.Slots[i] = SlotResponse{
			Time:          s.Time,
			Capacity:      s.Capacity,
			ExtraCapacity: s.ExtraCapacity,
			Booked:        s.Booked,
			Available:     s.Available(),
			Blocked:       s.Blocked,
			Status:        s.Status(stopped),
		}
	}
	return day
}

// ToStopSaleResponse converts a domain StopSale
func ToStopSaleResponse(s *availability.StopSale) StopSaleResponse {
	return StopSaleResponse{
		ID:        s.ID,
		TourID:    s.TourID,
		StartDate: s.StartDate.Format(shared.DateLayout),
		EndDate:   s.EndDate.Format(shared.DateLayout),
		OptionIDs: s.OptionIDs,
		Reason:    s.Reason,
		CreatedAt: s.CreatedAt,
	}
}

func toSlots(in []SlotInput) []availability.Slot {
	out := make([]availability.Slot, len(in))
	for i, s := range in {
		out[i] = availability.Slot{
			Time:          s.Time,
			Capacity:      s.Capacity,
			ExtraCapacity: s.ExtraCapacity,
			Blocked:       s.Blocked,
		}
	}
	return out
}
