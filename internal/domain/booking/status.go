package booking

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status represents the lifecycle state of a booking
type Status string

const (
	StatusPending         Status = "pending"
	StatusConfirmed       Status = "confirmed"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusRefunded        Status = "refunded"
	StatusPartialRefunded Status = "partial_refunded"
)

var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusRefunded,
	StatusPartialRefunded,
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Label returns the human readable form, e.g. "Partial Refunded"
func (s Status) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

// IsFinal reports whether no further transition is allowed
func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusRefunded || s == StatusPartialRefunded
}

// ToBookingStatusCode maps a display label or code ("Partial Refunded",
// "partial-refunded", "CONFIRMED") to its status. Unknown labels return nil.
func ToBookingStatusCode(label string) *Status {
	code := strings.ToLower(strings.TrimSpace(label))
	code = strings.NewReplacer(" ", "_", "-", "_").Replace(code)
	if code == "canceled" {
		code = string(StatusCancelled)
	}
	s := Status(code)
	if !s.IsValid() {
		return nil
	}
	return &s
}

// AllStatuses returns every status in lifecycle order
func AllStatuses() []Status {
	return append([]Status(nil), allStatuses...)
}
