package rate

import (
	"fmt"
	"io"

	"cbrrates/internal/domain"
)

// Render prints one block per day: a date header, then a line per currency.
func Render(w io.Writer, rates *domain.RatesByDate) error {
	for _, date := range rates.Dates() {
		if _, err := fmt.Fprintf(w, "Date: %s\n", date); err != nil {
			return err
		}
		set, _ := rates.Get(date)
		for _, r := range set.Records() {
			if _, err := fmt.Fprintf(w, "Currency: %s Value: %s\n", r.CurrencyCode, r.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
