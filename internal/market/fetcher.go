package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tickboard/internal/logger"
	"tickboard/internal/pkg/cache"
)

// PaddingDays is the extra history fetched beyond the display window so the
// longest moving average is seeded before the visible range begins.
const PaddingDays = 210

// Fetcher is the unit of error containment: every transport fault, rate
// limit, timeout or malformed payload becomes a Failure result here and
// nothing propagates past it. Results are cached per (asset, window).
type Fetcher struct {
	source  Source
	cache   *cache.TTL[FetchResult]
	padding int
	timeout time.Duration
}

type FetcherOptions struct {
	CacheTTL time.Duration
	Padding  int
	Timeout  time.Duration
}

func NewFetcher(source Source, opts FetcherOptions) *Fetcher {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.Padding <= 0 {
		opts.Padding = PaddingDays
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Fetcher{
		source:  source,
		cache:   cache.NewTTL[FetchResult](opts.CacheTTL),
		padding: opts.Padding,
		timeout: opts.Timeout,
	}
}

// Fetch returns the padded series for assetID covering displayDays plus the
// padding window. Failures are values, cached like successes; the cache TTL
// is the only retry mechanism.
func (f *Fetcher) Fetch(ctx context.Context, assetID string, displayDays int) FetchResult {
	key := fmt.Sprintf("%s|%d", assetID, displayDays)
	res, _ := f.cache.GetOrCompute(key, func() (FetchResult, error) {
		return f.fetchRemote(ctx, assetID, displayDays), nil
	})
	return res
}

func (f *Fetcher) fetchRemote(ctx context.Context, assetID string, displayDays int) FetchResult {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	window := displayDays + f.padding
	series, err := f.source.FetchSeries(ctx, assetID, window)
	if err != nil {
		reason := classify(err)
		logger.Warnf("[fetch] %s %s days=%d failed (%s): %v", f.source.Name(), assetID, window, reason, err)
		return failure(assetID, displayDays, reason)
	}
	if len(series) == 0 {
		return failure(assetID, displayDays, ReasonEmptyPayload)
	}
	logger.Debugf("[fetch] %s %s days=%d points=%d", f.source.Name(), assetID, window, len(series))
	return FetchResult{AssetID: assetID, DisplayDays: displayDays, Padded: series}
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, ErrRateLimited):
		return ReasonRateLimited
	case errors.Is(err, ErrEmptyPayload):
		return ReasonEmptyPayload
	default:
		return ReasonTransport
	}
}
