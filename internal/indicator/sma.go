// Package indicator computes trailing simple moving averages over close
// series. Undefined positions (fewer than window preceding samples) are NaN,
// never a partial average.
package indicator

import (
	"fmt"
	"math"

	talib "github.com/markcheno/go-talib"

	"tickboard/internal/market"
)

// Windows is the fixed overlay set used across every chart.
var Windows = []int{20, 50, 100, 200}

// Overlay is a named indicator series aligned index-for-index with its
// source; NaN marks positions where the trailing window is not yet full.
type Overlay struct {
	Name   string
	Values []float64
}

// HasDefined reports whether any position carries a defined value.
func (o Overlay) HasDefined() bool {
	for _, v := range o.Values {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Tail trims the overlay to the trailing keep positions.
func (o Overlay) Tail(keep int) Overlay {
	if keep <= 0 || len(o.Values) <= keep {
		return o
	}
	return Overlay{Name: o.Name, Values: o.Values[len(o.Values)-keep:]}
}

// SMA computes the trailing simple moving average. The first window-1
// positions are NaN; talib emits zeros there, which would be indistinguishable
// from real zero prices, so the warmup prefix is masked explicitly.
func SMA(closes []float64, window int) Overlay {
	name := fmt.Sprintf("SMA%d", window)
	out := make([]float64, len(closes))
	if window <= 0 || len(closes) < window {
		for i := range out {
			out[i] = math.NaN()
		}
		return Overlay{Name: name, Values: out}
	}
	copy(out, talib.Sma(closes, window))
	for i := 0; i < window-1; i++ {
		out[i] = math.NaN()
	}
	return Overlay{Name: name, Values: out}
}

// ComputeSet runs every fixed window over the padded series and trims each
// overlay to the trailing displayLen positions. Overlays with no defined
// value anywhere in the display window are dropped.
func ComputeSet(padded market.PriceSeries, displayLen int) []Overlay {
	if padded.Len() == 0 || displayLen <= 0 {
		return nil
	}
	closes := padded.Closes()
	out := make([]Overlay, 0, len(Windows))
	for _, w := range Windows {
		overlay := SMA(closes, w).Tail(displayLen)
		if !overlay.HasDefined() {
			continue
		}
		out = append(out, overlay)
	}
	return out
}
