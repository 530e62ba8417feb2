package rate

import (
	"context"
	"fmt"
	"io"
	"time"

	"cbrrates/internal/adapters"
	"cbrrates/internal/adapters/xmltree"
	"cbrrates/internal/domain"

	"github.com/jonboulle/clockwork"
)

type Service struct {
	client   adapters.RateClient
	wanted   domain.CurrencySet
	policy   domain.ErrorPolicy
	clock    clockwork.Clock
	location *time.Location
}

// Wanted returns the configured currency codes.
func (s *Service) Wanted() domain.CurrencySet {
	return s.wanted
}

// Now is the current time in the report location.
func (s *Service) Now() time.Time {
	return s.clock.Now().In(s.location)
}

// Collect gathers the wanted rates for every day from the last Monday through reference.
func (s *Service) Collect(ctx context.Context, reference time.Time) (*domain.RatesByDate, error) {
	return s.CollectFor(ctx, reference, s.wanted)
}

// CollectFor is Collect with an explicit set of wanted codes.
// Days are fetched one by one, oldest first. A failing day is skipped or ends
// the run depending on the error policy; cancellation always ends it.
func (s *Service) CollectFor(ctx context.Context, reference time.Time, wanted domain.CurrencySet) (*domain.RatesByDate, error) {
	log := logEntry(ctx)
	result := domain.NewRatesByDate()
	skipped := 0

	for date := range DaysSinceMonday(reference) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rates, err := s.ratesForDate(ctx, date, wanted)
		if err != nil {
			if ctx.Err() != nil || s.policy == domain.PolicyAbort {
				return nil, fmt.Errorf("rates for %s: %w", date, err)
			}
			log.WithError(err).WithField("date", date.String()).Warn("Skipping date, no usable rates")
			skipped++
			continue
		}
		result.Put(date, rates)
	}

	log.Infof("%d dates collected, %d skipped", result.Len(), skipped)
	return result, nil
}

func (s *Service) ratesForDate(ctx context.Context, date domain.DateKey, wanted domain.CurrencySet) (*domain.RateSet, error) {
	raw, err := s.client.GetDailyXML(ctx, date)
	if err != nil {
		return nil, err
	}
	doc, err := xmltree.Parse(raw)
	if err != nil {
		return nil, err
	}
	records, err := RecordsFromDocument(doc)
	if err != nil {
		return nil, err
	}
	return Filter(records, wanted), nil
}

// Report collects rates as of now and renders them to w.
func (s *Service) Report(ctx context.Context, w io.Writer) error {
	return s.ReportAt(ctx, s.Now(), w)
}

func (s *Service) ReportAt(ctx context.Context, reference time.Time, w io.Writer) error {
	rates, err := s.Collect(ctx, reference)
	if err != nil {
		return err
	}
	return Render(w, rates)
}

func NewService(client adapters.RateClient, wanted domain.CurrencySet, policy domain.ErrorPolicy, clock clockwork.Clock, location *time.Location) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	if policy == "" {
		policy = domain.PolicySkip
	}
	return &Service{client: client, wanted: wanted, policy: policy, clock: clock, location: location}
}
