package boardhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/components"

	"tickboard/internal/catalog"
	"tickboard/internal/chart"
	"tickboard/internal/config"
	"tickboard/internal/indicator"
	"tickboard/internal/market"
)

const comparisonSlots = 4

type handler struct {
	cfg ServerConfig
}

func newHandler(cfg ServerConfig) *handler {
	return &handler{cfg: cfg}
}

func (h *handler) register(router *gin.Engine) {
	router.GET("/", h.handleIndex)
	router.GET("/crypto", func(c *gin.Context) { h.handleComparison(c, catalog.UniverseCrypto) })
	router.GET("/equity", func(c *gin.Context) { h.handleComparison(c, catalog.UniverseEquity) })
	router.GET("/single", h.handleSingle)

	api := router.Group("/api")
	api.GET("/catalog/:universe", h.handleCatalog)
	api.GET("/series/:universe/:id", h.handleSeries)
	if h.cfg.SnapshotEnabled {
		api.GET("/board/snapshot.png", h.handleSnapshot)
	}
}

func (h *handler) deps(universe catalog.Universe) (*market.Batch, *market.Fetcher, string) {
	if universe == catalog.UniverseEquity {
		return h.cfg.EquityBatch, h.cfg.EquityFetcher, "TRY"
	}
	return h.cfg.CryptoBatch, h.cfg.CryptoFetcher, "USD"
}

func (h *handler) days(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return h.cfg.DefaultDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || !config.ValidLookback(days) {
		return h.cfg.DefaultDays
	}
	return days
}

func (h *handler) handleIndex(c *gin.Context) {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>tickboard</title></head>`)
	b.WriteString(`<body style="background:#060c1b;color:#eceff4;font-family:sans-serif">`)
	b.WriteString(`<h1>tickboard</h1><ul>`)
	b.WriteString(`<li><a href="/crypto">crypto comparison (4 slots)</a></li>`)
	b.WriteString(`<li><a href="/equity">equity comparison (4 slots)</a></li>`)
	b.WriteString(`<li><a href="/single">single asset</a></li>`)
	b.WriteString(`</ul><p>lookback choices: `)
	for i, d := range config.LookbackChoices {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%dd", d)
	}
	b.WriteString(`</p></body></html>`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

func (h *handler) handleCatalog(c *gin.Context) {
	universe := catalog.Universe(c.Param("universe"))
	assets, err := h.cfg.Catalog.List(c.Request.Context(), universe)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, catalog.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"universe": universe, "count": len(assets), "assets": assets})
}

// handleComparison renders the 4-slot board. A failed slot degrades to its
// own no-data placeholder; the catalog being unavailable halts the page.
func (h *handler) handleComparison(c *gin.Context, universe catalog.Universe) {
	ctx := c.Request.Context()
	assets, err := h.cfg.Catalog.List(ctx, universe)
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable, try again shortly"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days := h.days(c)
	ids := h.slotIDs(c, assets)
	batch, _, currency := h.deps(universe)

	reqs := make([]market.BatchRequest, 0, len(ids))
	for _, id := range ids {
		reqs = append(reqs, market.BatchRequest{AssetID: id, DisplayDays: days})
	}
	results := batch.FetchMany(ctx, reqs)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = fmt.Sprintf("tickboard %s", universe)
	for _, id := range ids {
		res := results[id]
		art := h.buildSlot(ctx, universe, id, currency, days, res)
		page.AddCharts(art.Line)
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

func (h *handler) handleSingle(c *gin.Context) {
	ctx := c.Request.Context()
	universe := catalog.Universe(c.DefaultQuery("universe", string(catalog.UniverseCrypto)))
	assets, err := h.cfg.Catalog.List(ctx, universe)
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable, try again shortly"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := strings.TrimSpace(c.Query("id"))
	if id == "" && len(assets) > 0 {
		id = assets[0].ID
	}
	days := h.days(c)
	_, fetcher, currency := h.deps(universe)
	res := fetcher.Fetch(ctx, id, days)

	art := h.buildSlotWide(ctx, universe, id, currency, days, res)
	page := components.NewPage()
	page.PageTitle = "tickboard single"
	page.AddCharts(art.Line)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

func (h *handler) handleSeries(c *gin.Context) {
	ctx := c.Request.Context()
	universe := catalog.Universe(c.Param("universe"))
	id := c.Param("id")
	days := h.days(c)

	_, fetcher, currency := h.deps(universe)
	if fetcher == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown universe %q", universe)})
		return
	}
	res := fetcher.Fetch(ctx, id, days)
	if !res.OK() {
		c.JSON(http.StatusOK, gin.H{
			"asset_id": id,
			"days":     days,
			"failure":  res.Failure,
		})
		return
	}

	display := res.Display()
	overlays := indicator.ComputeSet(res.Padded, display.Len())
	overlayJSON := make(map[string][]*float64, len(overlays))
	for _, o := range overlays {
		overlayJSON[o.Name] = nullableValues(o.Values)
	}
	latest, _ := display.Latest()
	c.JSON(http.StatusOK, gin.H{
		"asset_id":       id,
		"days":           days,
		"points":         display,
		"latest":         latest,
		"latest_display": chart.FormatClose(latest, currency),
		"overlays":       overlayJSON,
	})
}

func (h *handler) handleSnapshot(c *gin.Context) {
	ctx := c.Request.Context()
	universe := catalog.Universe(c.DefaultQuery("universe", string(catalog.UniverseCrypto)))
	assets, err := h.cfg.Catalog.List(ctx, universe)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	days := h.days(c)
	ids := h.slotIDs(c, assets)
	batch, _, currency := h.deps(universe)

	reqs := make([]market.BatchRequest, 0, len(ids))
	for _, id := range ids {
		reqs = append(reqs, market.BatchRequest{AssetID: id, DisplayDays: days})
	}
	results := batch.FetchMany(ctx, reqs)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	for _, id := range ids {
		art := h.buildSlot(ctx, universe, id, currency, days, results[id])
		page.AddCharts(art.Line)
	}
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	png, err := chart.Snapshot(ctx, buf.Bytes(), 1600, 900)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": fmt.Sprintf("snapshot unavailable: %v", err)})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// slotIDs picks up to four asset ids from s1..s4 query params, falling back
// to the top of the catalog.
func (h *handler) slotIDs(c *gin.Context, assets []catalog.Asset) []string {
	ids := make([]string, 0, comparisonSlots)
	seen := make(map[string]struct{}, comparisonSlots)
	for i := 1; i <= comparisonSlots; i++ {
		id := strings.TrimSpace(c.Query(fmt.Sprintf("s%d", i)))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, a := range assets {
		if len(ids) >= comparisonSlots {
			break
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		ids = append(ids, a.ID)
	}
	return ids
}

func (h *handler) buildSlot(ctx context.Context, universe catalog.Universe, id, currency string, days int, res market.FetchResult) *chart.Artifact {
	return h.build(ctx, universe, id, currency, days, res, false)
}

func (h *handler) buildSlotWide(ctx context.Context, universe catalog.Universe, id, currency string, days int, res market.FetchResult) *chart.Artifact {
	return h.build(ctx, universe, id, currency, days, res, true)
}

func (h *handler) build(ctx context.Context, universe catalog.Universe, id, currency string, days int, res market.FetchResult, wide bool) *chart.Artifact {
	label := id
	if asset, err := h.cfg.Catalog.Find(ctx, universe, id); err == nil {
		label = asset.Name
	}
	overlays := indicator.ComputeSet(res.Padded, res.Display().Len())
	return chart.Build(chart.Input{
		Label:    label,
		Currency: currency,
		Days:     days,
		Result:   res,
		Overlays: overlays,
		Wide:     wide,
	})
}

func nullableValues(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		v := v
		out[i] = &v
	}
	return out
}
