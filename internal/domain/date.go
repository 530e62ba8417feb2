package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

const (
	// RequestLayout is the date form the bank expects in date_req.
	RequestLayout = "02/01/2006"
	// ReportLayout is the date form used in reports and the API.
	ReportLayout = "2006-01-02"
)

// DateKey is a calendar day. It is both the request parameter and the grouping key of results.
type DateKey struct {
	civil.Date
}

func DayOf(t time.Time) DateKey {
	return DateKey{Date: civil.DateOf(t)}
}

func ParseDateKey(s string) (DateKey, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date %q, expected %s: %w", s, ReportLayout, err)
	}
	return DateKey{Date: d}, nil
}

func (k DateKey) RequestParam() string {
	return k.In(time.UTC).Format(RequestLayout)
}

func (k DateKey) Weekday() time.Weekday {
	return k.In(time.UTC).Weekday()
}

func (k DateKey) AddDays(n int) DateKey {
	return DateKey{Date: k.Date.AddDays(n)}
}
