package market

import (
	"context"
	"errors"
)

// Sentinel errors a Source may return so the fetch boundary can classify
// the failure. Anything else counts as a transport error.
var (
	ErrRateLimited  = errors.New("provider rate limited")
	ErrEmptyPayload = errors.New("empty or malformed payload")
)

// Source retrieves a raw close series covering the trailing days window.
type Source interface {
	Name() string
	FetchSeries(ctx context.Context, assetID string, days int) (PriceSeries, error)
}

const userAgent = "Mozilla/5.0 (tickboard)"
