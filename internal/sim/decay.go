package sim

import (
	"fmt"
	"math"
	"time"
)

// WeeklyDecay applies the configured markdown when the day falls on the
// rebase weekday. Stateless; a note is emitted only when the price
// strictly changed (it may not at the floor or with tiny percentages).
func WeeklyDecay(day time.Time, price int64, p Params) (int64, string) {
	if day.Weekday() != p.RebaseWeekday {
		return price, ""
	}

	next := int64(math.Round(float64(price) * (1 - p.RebasePct)))
	if next < p.MinPrice {
		next = p.MinPrice
	}
	if next == price {
		return price, ""
	}
	return next, fmt.Sprintf("⤵️ weekly rebase %.1f%%", -p.RebasePct*100)
}
