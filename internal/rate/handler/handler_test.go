package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cbrrates/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) CollectFor(ctx context.Context, reference time.Time, wanted domain.CurrencySet) (*domain.RatesByDate, error) {
	args := m.Called(ctx, reference, wanted)
	rates, _ := args.Get(0).(*domain.RatesByDate)
	return rates, args.Error(1)
}

func (m *MockService) Wanted() domain.CurrencySet {
	args := m.Called()
	set, _ := args.Get(0).(domain.CurrencySet)
	return set
}

func (m *MockService) Now() time.Time {
	args := m.Called()
	now, _ := args.Get(0).(time.Time)
	return now
}

type errorJSON struct {
	Error string `json:"error"`
}

var (
	msk = time.FixedZone("MSK", 3*60*60)
	now = time.Date(2024, time.January, 17, 10, 0, 0, 0, msk)
)

func sampleRates(t *testing.T) *domain.RatesByDate {
	t.Helper()
	mon, err := domain.ParseDateKey("2024-01-15")
	require.NoError(t, err)

	set := domain.NewRateSet()
	set.Put(domain.ExchangeRateRecord{CurrencyCode: "USD", NumCode: "840", Nominal: "1", Name: "US Dollar", Value: "90,5000"})
	rates := domain.NewRatesByDate()
	rates.Put(mon, set)
	return rates
}

// --- GetRates ---

func TestHandler_GetRates_Defaults(t *testing.T) {
	mockService := new(MockService)
	wanted := domain.NewCurrencySet("USD", "EUR")
	mockService.On("Now").Return(now).Once()
	mockService.On("Wanted").Return(wanted).Once()
	mockService.On("CollectFor", mock.Anything, now, wanted).Return(sampleRates(t), nil).Once()
	h := NewRateHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	rr := httptest.NewRecorder()
	h.GetRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.JSONEq(t, `{"dates":[{"date":"2024-01-15","rates":[
		{"code":"USD","num_code":"840","name":"US Dollar","nominal":"1","value":"90,5000","rate":"90.5","unit_rate":"90.5"}
	]}]}`, rr.Body.String())
	mockService.AssertExpectations(t)
}

func TestHandler_GetRates_DateAndCurrenciesParams(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Now").Return(now).Once()
	wantRef := time.Date(2024, time.January, 10, 0, 0, 0, 0, msk)
	mockService.On("CollectFor", mock.Anything, mock.MatchedBy(func(ref time.Time) bool { return ref.Equal(wantRef) }),
		domain.NewCurrencySet("JPY", "CNY")).Return(domain.NewRatesByDate(), nil).Once()
	h := NewRateHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates?date=2024-01-10&currencies=jpy,%20cny,,", nil)
	rr := httptest.NewRecorder()
	h.GetRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"dates":[]}`, rr.Body.String())
	mockService.AssertNotCalled(t, "Wanted")
	mockService.AssertExpectations(t)
}

func TestHandler_GetRates_BadDate(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Now").Return(now).Once()
	h := NewRateHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates?date=17/01/2024", nil)
	rr := httptest.NewRecorder()
	h.GetRates(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Contains(t, ej.Error, `invalid date "17/01/2024"`)
	mockService.AssertNotCalled(t, "CollectFor", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetRates_BadCurrencies(t *testing.T) {
	for _, query := range []string{"currencies=US1", "currencies=,%20,"} {
		t.Run(query, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("Now").Return(now).Once()
			h := NewRateHandler(mockService)

			rr := httptest.NewRecorder()
			h.GetRates(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates?"+query, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.NotEmpty(t, ej.Error)
			mockService.AssertNotCalled(t, "CollectFor", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_GetRates_Errors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "transport", err: fmt.Errorf("rates for 2024-01-15: %w: timeout", domain.ErrTransport), wantStatus: http.StatusBadGateway},
		{name: "parse", err: fmt.Errorf("%w: unexpected EOF", domain.ErrParse), wantStatus: http.StatusBadGateway},
		{name: "missing field", err: fmt.Errorf("%w: \"Valute\"", domain.ErrMissingField), wantStatus: http.StatusBadGateway},
		{name: "other", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("Now").Return(now).Once()
			mockService.On("Wanted").Return(domain.NewCurrencySet("USD")).Once()
			mockService.On("CollectFor", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err).Once()
			h := NewRateHandler(mockService)

			rr := httptest.NewRecorder()
			h.GetRates(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil))

			require.Equal(t, tc.wantStatus, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.NotEmpty(t, ej.Error)
			mockService.AssertExpectations(t)
		})
	}
}

// --- GetSupportedCodes ---

func TestHandler_GetSupportedCodes(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Wanted").Return(domain.NewCurrencySet("USD", "KGS", "EUR")).Once()
	h := NewRateHandler(mockService)

	rr := httptest.NewRecorder()
	h.GetSupportedCodes(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates/currencies", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"codes":["EUR","KGS","USD"]}`, rr.Body.String())
	mockService.AssertExpectations(t)
}
