package availability

import (
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

var slotTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var (
	ErrCapacityBelowBooked = shared.NewDomainError("CAPACITY_BELOW_BOOKED", "Capacity cannot be lower than seats already booked")
	ErrSlotHasBookings     = shared.NewDomainError("SLOT_HAS_BOOKINGS", "A slot with bookings cannot be removed")
)

// Slot is a time-of-day capacity bucket within a day
type Slot struct {
	Time          string `json:"time"`
	Capacity      int    `json:"capacity"`
	Booked        int    `json:"booked"`
	ExtraCapacity int    `json:"extra_capacity"`
	Blocked       bool   `json:"blocked"`
}

// Total returns capacity including extra capacity
func (s Slot) Total() int {
	return s.Capacity + s.ExtraCapacity
}

// Available returns remaining seats, never negative
func (s Slot) Available() int {
	if left := s.Total() - s.Booked; left > 0 {
		return left
	}
	return 0
}

// Status derives the slot status; dayStopped blocks every slot
func (s Slot) Status(dayStopped bool) Status {
	return DeriveStatus(s.Capacity, s.ExtraCapacity, s.Booked, s.Blocked || dayStopped)
}

// Availability holds the slots of one tour on one calendar day
type Availability struct {
	shared.TenantAggregateRoot
	TourID   uuid.UUID
	Date     time.Time
	Slots    []Slot
	StopSale bool
	Notes    string
}

// NewAvailability creates a day record with the given slots
func NewAvailability(tenantID, tourID uuid.UUID, date time.Time, slots []Slot) (*Availability, error) {
	a := &Availability{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TourID:              tourID,
		Date:                shared.DateOnly(date),
		Slots:               make([]Slot, 0),
	}
	if err := a.SetSlots(slots); err != nil {
		return nil, err
	}
	return a, nil
}

// SetSlots replaces the slot layout. Booked counts of slots that keep their
// time are preserved and must still fit the new capacity; a slot with
// bookings cannot be removed.
func (a *Availability) SetSlots(slots []Slot) error {
	existing := make(map[string]Slot, len(a.Slots))
	for _, s := range a.Slots {
		existing[s.Time] = s
	}

	seen := make(map[string]struct{}, len(slots))
	next := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if !slotTimePattern.MatchString(s.Time) {
			return shared.NewDomainError("INVALID_SLOT_TIME", "Slot time must be HH:MM")
		}
		if _, dup := seen[s.Time]; dup {
			return shared.NewDomainError("DUPLICATE_SLOT", "Slot times must be unique within a day")
		}
		seen[s.Time] = struct{}{}
		if s.Capacity < 0 || s.ExtraCapacity < 0 {
			return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
		}
		s.Booked = 0
		if prev, ok := existing[s.Time]; ok {
			s.Booked = prev.Booked
		}
		if s.Booked > s.Total() {
			return ErrCapacityBelowBooked
		}
		next = append(next, s)
	}
	for t, prev := range existing {
		if _, kept := seen[t]; !kept && prev.Booked > 0 {
			return ErrSlotHasBookings
		}
	}

	sort.Slice(next, func(i, j int) bool { return next[i].Time < next[j].Time })
	a.Slots = next
	a.touch()
	return nil
}

// Slot finds a slot by time. An empty time selects the only slot of a
// single-slot day.
func (a *Availability) Slot(slotTime string) (Slot, bool) {
	i := a.slotIndex(slotTime)
	if i < 0 {
		return Slot{}, false
	}
	return a.Slots[i], true
}

func (a *Availability) slotIndex(slotTime string) int {
	if slotTime == "" && len(a.Slots) == 1 {
		return 0
	}
	for i, s := range a.Slots {
		if s.Time == slotTime {
			return i
		}
	}
	return -1
}

// SetStopSale toggles the whole-day stop-sale flag
func (a *Availability) SetStopSale(stop bool) {
	a.StopSale = stop
	a.touch()
}

// BlockSlot toggles the blocked flag of one slot
func (a *Availability) BlockSlot(slotTime string, blocked bool) error {
	i := a.slotIndex(slotTime)
	if i < 0 {
		return shared.NewDomainError("SLOT_NOT_FOUND", "Slot not found")
	}
	a.Slots[i].Blocked = blocked
	a.touch()
	return nil
}

// SetExtraCapacity changes the overflow seats of a slot
func (a *Availability) SetExtraCapacity(slotTime string, extra int) error {
	i := a.slotIndex(slotTime)
	if i < 0 {
		return shared.NewDomainError("SLOT_NOT_FOUND", "Slot not found")
	}
	if extra < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Extra capacity cannot be negative")
	}
	if a.Slots[i].Capacity+extra < a.Slots[i].Booked {
		return ErrCapacityBelowBooked
	}
	a.Slots[i].ExtraCapacity = extra
	a.touch()
	return nil
}

// Reserve books qty seats on a slot in memory.
// Repositories perform the same check as a conditional update.
func (a *Availability) Reserve(slotTime string, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if a.StopSale {
		return shared.ErrStopSale
	}
	i := a.slotIndex(slotTime)
	if i < 0 {
		return shared.NewDomainError("SLOT_NOT_FOUND", "Slot not found")
	}
	s := &a.Slots[i]
	if s.Blocked {
		return shared.ErrStopSale
	}
	if s.Booked+qty > s.Total() {
		return shared.ErrSlotFull
	}
	s.Booked += qty
	a.touch()
	return nil
}

// Release returns qty seats to a slot, never going below zero
func (a *Availability) Release(slotTime string, qty int) {
	i := a.slotIndex(slotTime)
	if i < 0 || qty <= 0 {
		return
	}
	a.Slots[i].Booked -= qty
	if a.Slots[i].Booked < 0 {
		a.Slots[i].Booked = 0
	}
	a.touch()
}

// DayStatus derives the status of the whole day for optionID, taking
// overlapping stop-sales into account. Slots are summed over the
// ones that are not individually blocked.
func (a *Availability) DayStatus(stopSales []StopSale, optionID string) Status {
	if a.IsStopped(stopSales, optionID) {
		return StatusBlocked
	}
	capacity, booked, open := 0, 0, 0
	for _, s := range a.Slots {
		if s.Blocked {
			continue
		}
		open++
		capacity += s.Total()
		booked += s.Booked
	}
	if len(a.Slots) > 0 && open == 0 {
		return StatusBlocked
	}
	return DeriveStatus(capacity, 0, booked, false)
}

// IsStopped reports whether the day flag or a covering stop-sale blocks optionID
func (a *Availability) IsStopped(stopSales []StopSale, optionID string) bool {
	if a.StopSale {
		return true
	}
	return CoveredBy(stopSales, a.TourID, a.Date, optionID)
}

func (a *Availability) touch() {
	a.Touch()
	a.IncrementVersion()
}
