package chart

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickboard/internal/indicator"
	"tickboard/internal/market"
)

func dailySeries(n int) market.PriceSeries {
	base := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	s := make(market.PriceSeries, n)
	for i := range s {
		s[i] = market.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Close:     50 + math.Cos(float64(i)/11)*4 + float64(i)*0.1,
		}
	}
	return s
}

func okResult(points, displayDays int) market.FetchResult {
	return market.FetchResult{AssetID: "x", DisplayDays: displayDays, Padded: dailySeries(points)}
}

func TestBuildFailurePlaceholder(t *testing.T) {
	res := market.FetchResult{AssetID: "x", DisplayDays: 90, Failure: market.ReasonTransport}
	art := Build(Input{Label: "Bitcoin", Currency: "USD", Days: 90, Result: res})

	assert.True(t, art.NoData)
	assert.Equal(t, 0, art.Traces, "placeholder carries no traces")
	assert.False(t, art.HasLatest)
	assert.Equal(t, "unavailable", art.LatestDisplay)

	var buf bytes.Buffer
	require.NoError(t, art.Render(&buf))
	assert.Contains(t, buf.String(), "no data", "annotation must be visible")
}

func TestBuildFullCoverage(t *testing.T) {
	// End-to-end shape check: 400 daily points, 90 displayed, all four SMAs
	// fully defined inside the display window.
	res := okResult(400, 90)
	overlays := indicator.ComputeSet(res.Padded, res.Display().Len())
	art := Build(Input{Label: "Asset X", Currency: "USD", Days: 90, Result: res, Overlays: overlays})

	assert.False(t, art.NoData)
	assert.Equal(t, 5, art.Traces, "price plus SMA20/50/100/200")
	require.True(t, art.HasLatest)
	last, _ := res.Display().Latest()
	assert.Equal(t, last, art.LatestClose)
	assert.Equal(t, "Asset X – 90d", art.Title)

	var buf bytes.Buffer
	require.NoError(t, art.Render(&buf))
	for _, name := range []string{"SMA20", "SMA50", "SMA100", "SMA200"} {
		assert.Contains(t, buf.String(), name)
	}
}

func TestBuildShortHistoryDropsLongWindows(t *testing.T) {
	res := okResult(50, 50)
	overlays := indicator.ComputeSet(res.Padded, res.Display().Len())
	art := Build(Input{Label: "Newcoin", Currency: "USD", Days: 50, Result: res, Overlays: overlays})

	assert.Equal(t, 3, art.Traces, "SMA100/SMA200 omitted entirely")

	var buf bytes.Buffer
	require.NoError(t, art.Render(&buf))
	assert.NotContains(t, buf.String(), "SMA100")
	assert.NotContains(t, buf.String(), "SMA200")
}

func TestFormatClose(t *testing.T) {
	assert.Equal(t, "$0.123457", FormatClose(0.12345678, "USD"))
	assert.Equal(t, "$64250", FormatClose(64250.0, "USD"))
	assert.Equal(t, "₺55.1", FormatClose(55.1001, "TRY"))
}
