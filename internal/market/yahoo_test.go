package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooFetchSeries(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AKBNK.IS", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))

		p1, err := strconv.ParseInt(r.URL.Query().Get("period1"), 10, 64)
		require.NoError(t, err)
		p2, err := strconv.ParseInt(r.URL.Query().Get("period2"), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, now.Unix(), p2)
		assert.Equal(t, now.AddDate(0, 0, -300).Unix(), p1)

		// Second close is null: a market holiday row that must be skipped.
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d,%d,%d],`+
			`"indicators":{"quote":[{"close":[55.1,null,56.3]}]}}]}}`,
			now.AddDate(0, 0, -3).Unix(), now.AddDate(0, 0, -2).Unix(), now.AddDate(0, 0, -1).Unix())
	}))
	defer srv.Close()

	src := NewYahooSource(srv.URL, 0)
	src.SetClock(func() time.Time { return now })

	series, err := src.FetchSeries(context.Background(), "AKBNK.IS", 300)
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, 55.1, series[0].Close)
	assert.Equal(t, 56.3, series[1].Close)
	assert.Equal(t, time.UTC, series[0].Timestamp.Location(), "timestamps normalized timezone-naive")
	assert.True(t, series[0].Timestamp.Before(series[1].Timestamp))
}

func TestYahooEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found"}}}`)
	}))
	defer srv.Close()

	src := NewYahooSource(srv.URL, 0)
	_, err := src.FetchSeries(context.Background(), "NOPE.IS", 90)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestYahooRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	src := NewYahooSource(srv.URL, 0)
	_, err := src.FetchSeries(context.Background(), "AKBNK.IS", 90)
	assert.ErrorIs(t, err, ErrRateLimited)
}
