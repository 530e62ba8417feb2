package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cbrrates/internal/domain"

	"github.com/sirupsen/logrus"
)

const dailyRatesPath = "XML_daily.asp"

// maxBodySize guards against an endless body; a daily feed is a few KB.
const maxBodySize = 4 << 20

type CBRClient struct {
	http    *http.Client
	baseURL string
}

// GetDailyXML downloads the raw daily rates document published for date.
func (c *CBRClient) GetDailyXML(ctx context.Context, date domain.DateKey) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base URL: %w", domain.ErrTransport, err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + dailyRatesPath
	// the bank expects the slashes unescaped
	u.RawQuery = "date_req=" + date.RequestParam()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request for %s: %w", domain.ErrTransport, date, err)
	}
	req.Header.Set("Accept", "application/xml")

	logrus.WithFields(logrus.Fields{"date": date.String(), "url": u.String()}).Debug("Requesting daily rates")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request for %s: %w", domain.ErrTransport, date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d for %s: %s", domain.ErrTransport, resp.StatusCode, date, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response for %s: %w", domain.ErrTransport, date, err)
	}
	return body, nil
}

func NewCBRClient(httpClient *http.Client, baseURL string) *CBRClient {
	return &CBRClient{http: httpClient, baseURL: baseURL}
}
