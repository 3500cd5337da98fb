package market

import (
	"sort"
	"time"
)

// PricePoint is one close sample. Timestamps are timezone-naive instants
// (stored as UTC wall clock).
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Close     float64   `json:"close"`
}

// PriceSeries is an ascending sequence of close samples for one asset.
type PriceSeries []PricePoint

func (s PriceSeries) Len() int { return len(s) }

func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

func (s PriceSeries) Timestamps() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Timestamp
	}
	return out
}

// Tail returns the trailing keep samples (the whole series when shorter).
func (s PriceSeries) Tail(keep int) PriceSeries {
	if keep <= 0 {
		return nil
	}
	if len(s) <= keep {
		return s
	}
	return s[len(s)-keep:]
}

// Latest returns the last close, or false on an empty series.
func (s PriceSeries) Latest() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1].Close, true
}

// sortAscending enforces the non-decreasing timestamp invariant in place.
func (s PriceSeries) sortAscending() {
	if sort.SliceIsSorted(s, func(i, j int) bool { return s[i].Timestamp.Before(s[j].Timestamp) }) {
		return
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Timestamp.Before(s[j].Timestamp) })
}

// Reason classifies a fetch failure. Downstream treats every reason the same
// way; the code exists for logs and tests.
type Reason string

const (
	ReasonTransport    Reason = "transport"
	ReasonRateLimited  Reason = "rate_limited"
	ReasonEmptyPayload Reason = "empty_payload"
)

// FetchResult is the tagged outcome of one series fetch. Padded holds the
// full over-fetched window and stays available for indicator computation;
// the chart consumes Display(). A failed result carries a Reason and an
// empty Padded, never a partial series.
type FetchResult struct {
	AssetID     string
	DisplayDays int
	Padded      PriceSeries
	Failure     Reason
}

func (r FetchResult) OK() bool { return r.Failure == "" }

// Display returns the trailing DisplayDays samples of the padded series.
func (r FetchResult) Display() PriceSeries {
	if !r.OK() {
		return nil
	}
	return r.Padded.Tail(r.DisplayDays)
}

func failure(assetID string, displayDays int, reason Reason) FetchResult {
	return FetchResult{AssetID: assetID, DisplayDays: displayDays, Failure: reason}
}
