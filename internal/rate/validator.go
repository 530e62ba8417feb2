package rate

import (
	"errors"
	"fmt"
	"strings"

	"cbrrates/internal/domain"
)

var (
	ErrCodesRequired = errors.New("at least one currency code is required")
	ErrCodeMalformed = errors.New("currency code must be three latin letters")
)

// ValidateCode accepts an upper-case ISO 4217 letter code.
func ValidateCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: %q", ErrCodeMalformed, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: %q", ErrCodeMalformed, code)
		}
	}
	return nil
}

// ParseCodes reads a comma separated list like "usd, EUR". Blank entries are ignored.
func ParseCodes(raw string) (domain.CurrencySet, error) {
	set := domain.NewCurrencySet()
	for _, code := range strings.Split(raw, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if err := ValidateCode(code); err != nil {
			return nil, err
		}
		set[code] = struct{}{}
	}
	if len(set) == 0 {
		return nil, ErrCodesRequired
	}
	return set, nil
}
