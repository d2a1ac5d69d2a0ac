package booking

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/shared"
)

// Refund thresholds in days before the tour date
const (
	FullRefundDays    = 7
	PartialRefundDays = 3
	PartialRefundPct  = 50
)

// RefundPercentage returns the refundable share of the total price for a
// cancellation daysUntilTour days ahead: 7+ days 100, 3+ days 50, else 0.
func RefundPercentage(daysUntilTour int) int {
	switch {
	case daysUntilTour >= FullRefundDays:
		return 100
	case daysUntilTour >= PartialRefundDays:
		return PartialRefundPct
	default:
		return 0
	}
}

// DaysUntil counts calendar days from now to the tour date
func DaysUntil(tourDate, now time.Time) int {
	return shared.DaysBetween(now, tourDate)
}

// RefundAmount applies pct to total, rounded to cents
func RefundAmount(total decimal.Decimal, pct int) decimal.Decimal {
	if pct <= 0 || !total.IsPositive() {
		return decimal.Zero
	}
	if pct >= 100 {
		return total
	}
	return total.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(2)
}
