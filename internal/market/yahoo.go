package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// YahooSource reads the v8 chart endpoint for exchange-suffixed equity
// symbols, daily interval, only the close column.
type YahooSource struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewYahooSource(base string, timeout time.Duration) *YahooSource {
	if base == "" {
		base = "https://query1.finance.yahoo.com"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &YahooSource{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

func (s *YahooSource) Name() string { return "yahoo" }

// SetClock overrides the range anchor. Test hook.
func (s *YahooSource) SetClock(now func() time.Time) { s.now = now }

func (s *YahooSource) FetchSeries(ctx context.Context, symbol string, days int) (PriceSeries, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	end := s.now()
	start := end.AddDate(0, 0, -days)

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path += "/v8/finance/chart/" + url.PathEscape(symbol)
	q := u.Query()
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	q.Set("interval", "1d")
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, ErrEmptyPayload
	}
	stamps := result.Get("timestamp").Array()
	closes := result.Get("indicators.quote.0.close").Array()
	if len(stamps) == 0 || len(closes) == 0 {
		return nil, ErrEmptyPayload
	}
	n := len(stamps)
	if len(closes) < n {
		n = len(closes)
	}
	out := make(PriceSeries, 0, n)
	for i := 0; i < n; i++ {
		if closes[i].Type == gjson.Null {
			continue
		}
		// Normalize to a timezone-naive instant: keep the UTC wall clock.
		out = append(out, PricePoint{
			Timestamp: time.Unix(stamps[i].Int(), 0).UTC(),
			Close:     closes[i].Float(),
		})
	}
	if len(out) == 0 {
		return nil, ErrEmptyPayload
	}
	out.sortAscending()
	return out, nil
}
