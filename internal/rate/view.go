package rate

import (
	"cbrrates/internal/domain"

	"github.com/shopspring/decimal"
)

type RateView struct {
	Code     string           `json:"code" example:"USD"`
	NumCode  string           `json:"num_code,omitempty" example:"840"`
	Name     string           `json:"name,omitempty" example:"US Dollar"`
	Nominal  string           `json:"nominal,omitempty" example:"1"`
	Value    string           `json:"value" example:"90,5000"`
	Rate     *decimal.Decimal `json:"rate,omitempty" swaggertype:"string" example:"90.5"`
	UnitRate *decimal.Decimal `json:"unit_rate,omitempty" swaggertype:"string" example:"90.5"`
}

type DayView struct {
	Date  string     `json:"date" example:"2024-01-15"`
	Rates []RateView `json:"rates"`
}

// Views converts collected rates into their API form, oldest day first.
// Values that are not numbers keep only their published text.
func Views(rates *domain.RatesByDate) []DayView {
	days := make([]DayView, 0, rates.Len())
	for _, date := range rates.Dates() {
		set, _ := rates.Get(date)
		day := DayView{Date: date.String(), Rates: make([]RateView, 0, set.Len())}
		for _, r := range set.Records() {
			day.Rates = append(day.Rates, viewOf(r))
		}
		days = append(days, day)
	}
	return days
}

func viewOf(r domain.ExchangeRateRecord) RateView {
	v := RateView{
		Code:    r.CurrencyCode,
		NumCode: r.NumCode,
		Name:    r.Name,
		Nominal: r.Nominal,
		Value:   r.Value,
	}
	if rate, err := r.Rate(); err == nil {
		v.Rate = &rate
	}
	if unit, err := r.UnitRate(); err == nil {
		v.UnitRate = &unit
	}
	return v
}
