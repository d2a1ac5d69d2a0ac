package availability

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// StopSale blocks bookings of a tour over a date range. An empty OptionIDs
// list blocks every booking option.
type StopSale struct {
	shared.TenantAggregateRoot
	TourID    uuid.UUID
	OptionIDs []string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// NewStopSale creates a stop-sale over an inclusive date range
func NewStopSale(tenantID, tourID uuid.UUID, start, end time.Time, optionIDs []string, reason string) (*StopSale, error) {
	s := &StopSale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TourID:              tourID,
	}
	if err := s.Update(start, end, optionIDs, reason); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces range, options and reason
func (s *StopSale) Update(start, end time.Time, optionIDs []string, reason string) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_STOP_SALE_DATES", "Start and end dates are required")
	}
	start, end = shared.DateOnly(start), shared.DateOnly(end)
	if end.Before(start) {
		return shared.NewDomainError("INVALID_STOP_SALE_DATES", "End date must not be before start date")
	}
	ids := make([]string, 0, len(optionIDs))
	for _, id := range optionIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	s.StartDate = start
	s.EndDate = end
	s.OptionIDs = ids
	s.Reason = strings.TrimSpace(reason)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// CoversDate reports whether date falls inside the range
func (s *StopSale) CoversDate(date time.Time) bool {
	d := shared.DateOnly(date)
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}

// CoversOption reports whether optionID is blocked. A stop-sale limited to
// some options does not block a query that names no option.
func (s *StopSale) CoversOption(optionID string) bool {
	if len(s.OptionIDs) == 0 {
		return true
	}
	if optionID == "" {
		return false
	}
	for _, id := range s.OptionIDs {
		if id == optionID {
			return true
		}
	}
	return false
}

// Covers combines the date and option checks
func (s *StopSale) Covers(date time.Time, optionID string) bool {
	return s.CoversDate(date) && s.CoversOption(optionID)
}

// Overlaps reports whether the stop-sale intersects [from, to]
func (s *StopSale) Overlaps(from, to time.Time) bool {
	return !s.EndDate.Before(shared.DateOnly(from)) && !s.StartDate.After(shared.DateOnly(to))
}

// CoveredBy reports whether any stop-sale of tourID covers date and optionID
func CoveredBy(stopSales []StopSale, tourID uuid.UUID, date time.Time, optionID string) bool {
	for i := range stopSales {
		if stopSales[i].TourID == tourID && stopSales[i].Covers(date, optionID) {
			return true
		}
	}
	return false
}
