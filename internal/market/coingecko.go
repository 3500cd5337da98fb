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

// CoinGeckoSource reads the /coins/{id}/market_chart endpoint. Granularity is
// provider-native: sub-daily for short windows, daily beyond.
type CoinGeckoSource struct {
	baseURL string
	client  *http.Client
}

func NewCoinGeckoSource(base string, timeout time.Duration) *CoinGeckoSource {
	if base == "" {
		base = "https://api.coingecko.com/api/v3"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CoinGeckoSource{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *CoinGeckoSource) Name() string { return "coingecko" }

func (s *CoinGeckoSource) FetchSeries(ctx context.Context, assetID string, days int) (PriceSeries, error) {
	if assetID == "" {
		return nil, fmt.Errorf("asset id required")
	}
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path += "/coins/" + url.PathEscape(assetID) + "/market_chart"
	q := u.Query()
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(days))
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
		return nil, fmt.Errorf("coingecko status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	prices := gjson.GetBytes(body, "prices")
	if !prices.Exists() || !prices.IsArray() {
		return nil, ErrEmptyPayload
	}
	out := make(PriceSeries, 0, len(prices.Array()))
	for _, row := range prices.Array() {
		pair := row.Array()
		if len(pair) < 2 {
			continue
		}
		ms := pair[0].Int()
		out = append(out, PricePoint{
			Timestamp: time.UnixMilli(ms).UTC(),
			Close:     pair[1].Float(),
		})
	}
	if len(out) == 0 {
		return nil, ErrEmptyPayload
	}
	out.sortAscending()
	return out, nil
}
