// Package chart shapes fetch results and indicator overlays into renderable
// line charts. Rendering itself is go-echarts; this layer owns the data
// shaping and the mandatory no-data fallback.
package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/shopspring/decimal"

	"tickboard/internal/indicator"
	"tickboard/internal/market"
)

const (
	colorBackground    = "#060c1b"
	colorTextPrimary   = "#eceff4"
	colorTextSecondary = "#9ca3af"
	colorPrice         = "#00CED1"
	colorSMA20         = "#ADD8E6"
	colorSMA50         = "#FFFF99"
	colorSMA100        = "#FFA500"
	colorSMA200        = "#FF0000"

	chartWidthPx  = 760
	chartHeightPx = 380
)

var overlayColors = map[string]string{
	"SMA20":  colorSMA20,
	"SMA50":  colorSMA50,
	"SMA100": colorSMA100,
	"SMA200": colorSMA200,
}

// Input is one chart slot: a fetch outcome, its overlays trimmed to the
// display window, and presentation tags.
type Input struct {
	Label    string
	Currency string // "USD" or "TRY"
	Days     int
	Result   market.FetchResult
	Overlays []indicator.Overlay
	Wide     bool // single-asset view renders full width
}

// Artifact is the built chart plus the summary metric next to it.
type Artifact struct {
	Line          *charts.Line
	Title         string
	NoData        bool
	Traces        int
	LatestClose   float64
	HasLatest     bool
	LatestDisplay string
}

// Render writes the chart snippet HTML.
func (a *Artifact) Render(w io.Writer) error {
	return a.Line.Render(w)
}

// Build produces the chart for one slot. A Failure input yields a
// placeholder with a visible no-data annotation and zero traces; it never
// returns an error.
func Build(input Input) *Artifact {
	title := fmt.Sprintf("%s – %dd", input.Label, input.Days)
	display := input.Result.Display()

	if !input.Result.OK() || display.Len() == 0 {
		return placeholder(input, title)
	}

	latest, hasLatest := display.Latest()
	latestDisplay := FormatClose(latest, input.Currency)
	line := newStyledLine(input, title, "last "+latestDisplay)
	xAxis := make([]string, display.Len())
	priceData := make([]opts.LineData, display.Len())
	for i, p := range display {
		xAxis[i] = p.Timestamp.Format("2006-01-02")
		priceData[i] = opts.LineData{Value: round(p.Close, 6)}
	}
	line.SetXAxis(xAxis)
	line.AddSeries(fmt.Sprintf("Price (%s)", input.Currency), priceData,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorPrice, Width: 2}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: colorPrice, Opacity: opts.Float(0.05)}),
	)
	traces := 1
	for _, overlay := range input.Overlays {
		if !overlay.HasDefined() {
			continue
		}
		line.AddSeries(overlay.Name, toLineData(overlay.Values, display.Len()),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: overlayColors[overlay.Name], Width: 1.5}),
		)
		traces++
	}

	return &Artifact{
		Line:          line,
		Title:         title,
		Traces:        traces,
		LatestClose:   latest,
		HasLatest:     hasLatest,
		LatestDisplay: latestDisplay,
	}
}

func placeholder(input Input, title string) *Artifact {
	line := newStyledLine(input, title, "no data")
	line.SetXAxis([]string{})
	return &Artifact{
		Line:          line,
		Title:         title,
		NoData:        true,
		LatestDisplay: "unavailable",
	}
}

func newStyledLine(input Input, title, subtitle string) *charts.Line {
	width := chartWidthPx
	height := chartHeightPx
	if input.Wide {
		width = 1520
		height = 700
	}
	subtitleColor := colorTextSecondary
	if subtitle == "no data" {
		subtitleColor = colorSMA200
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:           types.ThemeWesteros,
			Width:           fmt.Sprintf("%dpx", width),
			Height:          fmt.Sprintf("%dpx", height),
			BackgroundColor: colorBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         title,
			Subtitle:      subtitle,
			Left:          "left",
			TitleStyle:    &opts.TextStyle{Color: colorTextPrimary, FontSize: 16},
			SubtitleStyle: &opts.TextStyle{Color: subtitleColor, FontSize: 14},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), TextStyle: &opts.TextStyle{Color: colorTextPrimary, FontSize: 10}}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary, Rotate: 45},
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale:     opts.Bool(true),
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.2)}},
		}),
	)
	return line
}

// toLineData maps NaN positions to nil values, which echarts renders as
// gaps. No interpolation across undefined stretches.
func toLineData(series []float64, length int) []opts.LineData {
	line := make([]opts.LineData, length)
	offset := length - len(series)
	if offset < 0 {
		offset = 0
	}
	for i := 0; i < offset; i++ {
		line[i] = opts.LineData{Value: nil}
	}
	for i := 0; i < len(series) && offset+i < length; i++ {
		val := series[i]
		if math.IsNaN(val) {
			line[offset+i] = opts.LineData{Value: nil}
		} else {
			line[offset+i] = opts.LineData{Value: round(val, 6)}
		}
	}
	return line
}

// FormatClose renders a latest-close metric: 6 decimals for USD quotes,
// 2 for everything else, with trailing zeros trimmed via decimal.
func FormatClose(value float64, currency string) string {
	places := int32(2)
	symbol := "₺"
	if currency == "USD" {
		places = 6
		symbol = "$"
	}
	d := decimal.NewFromFloat(value).Round(places)
	return symbol + d.String()
}

func round(val float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(val)
	}
	scale := math.Pow10(decimals)
	return math.Round(val*scale) / scale
}
