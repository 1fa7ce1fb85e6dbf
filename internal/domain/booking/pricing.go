package booking

import (
	"math"
	"time"
)

// childRateFactor bills children at half the adult rate
const childRateFactor = 0.5

// Days returns the billable duration between two dates: the absolute
// difference rounded up to whole days, never less than 1. A same-day booking
// is billed as one day.
func Days(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// Subtotal computes the pre-tax price for a stay:
// unitPrice*days*adults plus half-rate for each child. No currency rounding
// is applied here; presentation decides how to round.
func Subtotal(unitPrice float64, days, adults, children int) (float64, error) {
	if unitPrice < 0 {
		return 0, ErrNegativeUnitPrice
	}
	if adults < 0 {
		return 0, ErrNegativeAdults
	}
	if children < 0 {
		return 0, ErrNegativeChildren
	}
	if days < 1 {
		days = 1
	}
	d := float64(days)
	return unitPrice*d*float64(adults) + unitPrice*childRateFactor*d*float64(children), nil
}
