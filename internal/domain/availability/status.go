package availability

// Status is the derived sale state of a slot or a day
type Status string

const (
	StatusAvailable Status = "available"
	StatusLimited   Status = "limited"
	StatusSoldOut   Status = "sold_out"
	StatusBlocked   Status = "blocked"
)

// LimitedRatio is the share of total capacity at or below which a slot
// is shown as limited
const LimitedRatio = 0.2

// DeriveStatus computes the status of a capacity bucket.
// blocked wins over everything, then sold_out (nothing left),
// then limited (20% or less left), else available.
func DeriveStatus(capacity, extraCapacity, booked int, blocked bool) Status {
	if blocked {
		return StatusBlocked
	}
	total := capacity + extraCapacity
	left := total - booked
	if left <= 0 {
		return StatusSoldOut
	}
	if float64(left) <= LimitedRatio*float64(total) {
		return StatusLimited
	}
	return StatusAvailable
}
