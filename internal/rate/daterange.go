package rate

import (
	"iter"
	"slices"
	"time"

	"cbrrates/internal/domain"
)

// DaysSinceMonday yields every day from the Monday on or before reference up to reference itself.
// The time of day is ignored; the day is taken in reference's location.
func DaysSinceMonday(reference time.Time) iter.Seq[domain.DateKey] {
	last := domain.DayOf(reference)
	// Weekday counts from Sunday, the week here starts on Monday
	offset := (int(last.Weekday()) + 6) % 7
	first := last.AddDays(-offset)

	return func(yield func(domain.DateKey) bool) {
		for d := first; !d.After(last.Date); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

func DateRange(reference time.Time) []domain.DateKey {
	return slices.Collect(DaysSinceMonday(reference))
}
