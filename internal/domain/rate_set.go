package domain

// RateSet maps currency code to record and remembers the order codes were first seen in.
type RateSet struct {
	codes  []string
	byCode map[string]ExchangeRateRecord
}

func NewRateSet() *RateSet {
	return &RateSet{byCode: make(map[string]ExchangeRateRecord)}
}

// Put stores the record under its code. A repeated code keeps its position and takes the new record.
func (s *RateSet) Put(r ExchangeRateRecord) {
	if _, ok := s.byCode[r.CurrencyCode]; !ok {
		s.codes = append(s.codes, r.CurrencyCode)
	}
	s.byCode[r.CurrencyCode] = r
}

func (s *RateSet) Get(code string) (ExchangeRateRecord, bool) {
	r, ok := s.byCode[code]
	return r, ok
}

func (s *RateSet) Len() int { return len(s.codes) }

func (s *RateSet) Codes() []string {
	return append([]string(nil), s.codes...)
}

// Records returns the records in first-seen order.
func (s *RateSet) Records() []ExchangeRateRecord {
	out := make([]ExchangeRateRecord, 0, len(s.codes))
	for _, c := range s.codes {
		out = append(out, s.byCode[c])
	}
	return out
}

// RatesByDate keeps one RateSet per day in insertion order.
type RatesByDate struct {
	dates  []DateKey
	byDate map[DateKey]*RateSet
}

func NewRatesByDate() *RatesByDate {
	return &RatesByDate{byDate: make(map[DateKey]*RateSet)}
}

func (r *RatesByDate) Put(date DateKey, rates *RateSet) {
	if _, ok := r.byDate[date]; !ok {
		r.dates = append(r.dates, date)
	}
	r.byDate[date] = rates
}

func (r *RatesByDate) Get(date DateKey) (*RateSet, bool) {
	s, ok := r.byDate[date]
	return s, ok
}

func (r *RatesByDate) Dates() []DateKey {
	return append([]DateKey(nil), r.dates...)
}

func (r *RatesByDate) Len() int { return len(r.dates) }
