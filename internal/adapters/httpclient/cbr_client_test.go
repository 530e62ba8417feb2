package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cbrrates/internal/domain"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
)

var jan17 = domain.DateKey{Date: civil.Date{Year: 2024, Month: time.January, Day: 17}}

func TestCBRClient_Success(t *testing.T) {
	var gotPath, gotDate, gotRawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDate = r.URL.Query().Get("date_req")
		gotRawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<ValCurs Date="17.01.2024"></ValCurs>`))
	}))
	t.Cleanup(srv.Close)

	c := NewCBRClient(srv.Client(), srv.URL+"/scripts/")

	body, err := c.GetDailyXML(context.Background(), jan17)
	require.NoError(t, err)
	require.Equal(t, "/scripts/XML_daily.asp", gotPath)
	require.Equal(t, "17/01/2024", gotDate)
	require.Equal(t, "date_req=17/01/2024", gotRawQuery)
	require.Equal(t, `<ValCurs Date="17.01.2024"></ValCurs>`, string(body))
}

func TestCBRClient_BaseURLWithoutTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewCBRClient(srv.Client(), srv.URL+"/scripts")

	_, err := c.GetDailyXML(context.Background(), jan17)
	require.NoError(t, err)
	require.Equal(t, "/scripts/XML_daily.asp", gotPath)
}

func TestCBRClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewCBRClient(srv.Client(), srv.URL)

	_, err := c.GetDailyXML(context.Background(), jan17)
	require.ErrorIs(t, err, domain.ErrTransport)
	require.Contains(t, err.Error(), "unexpected status code 503")
	require.Contains(t, err.Error(), "2024-01-17")
}

func TestCBRClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewCBRClient(&http.Client{Timeout: time.Second}, addr)

	_, err := c.GetDailyXML(context.Background(), jan17)
	require.ErrorIs(t, err, domain.ErrTransport)
	require.Contains(t, err.Error(), "failed to execute request")
}

func TestCBRClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCBRClient(srv.Client(), srv.URL)
	_, err := c.GetDailyXML(ctx, jan17)
	require.ErrorIs(t, err, domain.ErrTransport)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCBRClient_BaseURLParseError(t *testing.T) {
	c := NewCBRClient(&http.Client{}, "http://::1]")
	_, err := c.GetDailyXML(context.Background(), jan17)
	require.ErrorIs(t, err, domain.ErrTransport)
	require.Contains(t, err.Error(), "failed to parse base URL")
}
