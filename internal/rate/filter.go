package rate

import "cbrrates/internal/domain"

// Filter keeps the records whose code is wanted, in feed order.
// A code repeated in the feed keeps its first position and its last record.
func Filter(records []domain.ExchangeRateRecord, wanted domain.CurrencySet) *domain.RateSet {
	out := domain.NewRateSet()
	for _, r := range records {
		if wanted.Contains(r.CurrencyCode) {
			out.Put(r)
		}
	}
	return out
}
