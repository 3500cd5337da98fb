package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchManyPartialFailure(t *testing.T) {
	var inflight, peak atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		if strings.Contains(r.URL.Path, "/coins/unknown-asset/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		fmt.Fprint(w, `{"prices":[`)
		for i := 0; i < 10; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, "[%d,%g]", base.AddDate(0, 0, i).UnixMilli(), float64(i))
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	fetcher := NewFetcher(NewCoinGeckoSource(srv.URL, 0), FetcherOptions{})
	batch := NewBatch(fetcher, 4)

	reqs := []BatchRequest{
		{AssetID: "bitcoin", DisplayDays: 7},
		{AssetID: "ethereum", DisplayDays: 7},
		{AssetID: "solana", DisplayDays: 7},
		{AssetID: "unknown-asset", DisplayDays: 7},
	}
	results := batch.FetchMany(context.Background(), reqs)

	require.Len(t, results, 4, "exactly one entry per submitted key")
	ok, bad := 0, 0
	for id, res := range results {
		assert.Equal(t, id, res.AssetID)
		if res.OK() {
			ok++
			assert.Equal(t, 10, res.Padded.Len(), "sibling series content unaffected by the failing slot")
		} else {
			bad++
			assert.Equal(t, "unknown-asset", id)
		}
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, 1, bad)
	assert.LessOrEqual(t, peak.Load(), int64(4), "worker bound respected")
}

func TestFetchManyDeduplicatesIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"prices":[[1735689600000,42.0]]}`)
	}))
	defer srv.Close()

	batch := NewBatch(NewFetcher(NewCoinGeckoSource(srv.URL, 0), FetcherOptions{}), 4)
	results := batch.FetchMany(context.Background(), []BatchRequest{
		{AssetID: "bitcoin", DisplayDays: 7},
		{AssetID: "bitcoin", DisplayDays: 7},
		{AssetID: "", DisplayDays: 7},
	})
	assert.Len(t, results, 1)
}

func TestFetchManyEmpty(t *testing.T) {
	batch := NewBatch(NewFetcher(NewCoinGeckoSource("http://127.0.0.1:0", 0), FetcherOptions{}), 4)
	assert.Empty(t, batch.FetchMany(context.Background(), nil))
}
