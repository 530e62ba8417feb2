package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRateRecord is one currency entry of a daily feed.
// Fields carries every scalar field of the entry as published.
type ExchangeRateRecord struct {
	ID           string
	CurrencyCode string
	NumCode      string
	Name         string
	Nominal      string
	Value        string
	Fields       map[string]string
}

// Rate parses Value, which uses a comma as decimal separator.
func (r ExchangeRateRecord) Rate() (decimal.Decimal, error) {
	return parseDecimal("Value", r.Value)
}

// UnitRate is the rate for a single unit of the currency (Value / Nominal).
func (r ExchangeRateRecord) UnitRate() (decimal.Decimal, error) {
	value, err := r.Rate()
	if err != nil {
		return decimal.Zero, err
	}
	if r.Nominal == "" {
		return value, nil
	}
	nominal, err := parseDecimal("Nominal", r.Nominal)
	if err != nil {
		return decimal.Zero, err
	}
	if nominal.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: zero Nominal for %s", ErrTypeMismatch, r.CurrencyCode)
	}
	return value.Div(nominal), nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number: %w", ErrTypeMismatch, field, s, err)
	}
	return d, nil
}

// CurrencySet is a set of wanted currency codes.
type CurrencySet map[string]struct{}

func NewCurrencySet(codes ...string) CurrencySet {
	set := make(CurrencySet, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

func (s CurrencySet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the codes sorted.
func (s CurrencySet) Codes() []string {
	codes := slices.Collect(maps.Keys(s))
	slices.Sort(codes)
	return codes
}
