package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"tickboard/internal/logger"
)

// Non-tradable synthetic assets are dropped by substring match on the id:
// stablecoins, wrapped/bridged tokens and staking derivatives.
var defaultDenylist = []string{
	"bridged", "wrapped", "vault", "token", "usd", "usdc",
	"usdt", "tether", "stake", "stable",
}

const (
	listingPageSize = 250
	listingPages    = 4
)

// CoinGeckoLister paginates /coins/markets ordered by market cap. Pages are
// paced to stay under the provider's informal rate budget; a 429 anywhere
// aborts the whole build rather than returning a partial universe.
type CoinGeckoLister struct {
	baseURL  string
	client   *http.Client
	pace     time.Duration
	pages    int
	denylist []string
	sleep    func(context.Context, time.Duration) error
}

type ListerOptions struct {
	Pace     time.Duration
	Pages    int
	Timeout  time.Duration
	Denylist []string
}

func NewCoinGeckoLister(base string, opts ListerOptions) *CoinGeckoLister {
	if base == "" {
		base = "https://api.coingecko.com/api/v3"
	}
	if opts.Pages <= 0 || opts.Pages > listingPages {
		opts.Pages = listingPages
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	deny := opts.Denylist
	if len(deny) == 0 {
		deny = defaultDenylist
	}
	return &CoinGeckoLister{
		baseURL:  base,
		client:   &http.Client{Timeout: opts.Timeout},
		pace:     opts.Pace,
		pages:    opts.Pages,
		denylist: deny,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (l *CoinGeckoLister) List(ctx context.Context) ([]Asset, error) {
	var all []Asset
	for page := 1; page <= l.pages; page++ {
		if err := l.sleep(ctx, l.pace); err != nil {
			return nil, err
		}
		rows, err := l.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			// Non-success page: skip it, the listing tolerates holes.
			continue
		}
		if len(rows) == 0 {
			break
		}
		all = append(all, rows...)
		if len(rows) < listingPageSize {
			break
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: listing returned no rows", ErrUnavailable)
	}
	assets := l.project(all)
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: every row filtered", ErrUnavailable)
	}
	logger.Infof("[catalog] crypto universe built: %d assets", len(assets))
	return assets, nil
}

// fetchPage returns (nil, nil) for a retriable non-success status. A 429 is
// a hard stop for the whole build.
func (l *CoinGeckoLister) fetchPage(ctx context.Context, page int) ([]Asset, error) {
	u, err := url.Parse(l.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path += "/coins/markets"
	q := u.Query()
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(listingPageSize))
	q.Set("page", strconv.Itoa(page))
	q.Set("sparkline", "false")
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (tickboard)")
	resp, err := l.client.Do(req)
	if err != nil {
		logger.Warnf("[catalog] markets page %d: %v", page, err)
		return nil, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: rate limited on page %d", ErrUnavailable, page)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Warnf("[catalog] markets page %d: status %d", page, resp.StatusCode)
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, nil
	}
	rows := make([]Asset, 0, listingPageSize)
	for _, row := range parsed.Array() {
		rows = append(rows, Asset{
			ID:     row.Get("id").String(),
			Symbol: row.Get("symbol").String(),
			Name:   row.Get("name").String(),
			Rank:   int(row.Get("market_cap_rank").Int()),
		})
	}
	return rows, nil
}

// project applies the denylist, de-duplicates by id and sorts by rank.
func (l *CoinGeckoLister) project(rows []Asset) []Asset {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Asset, 0, len(rows))
	for _, a := range rows {
		if a.ID == "" || l.denied(a.ID) {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rank, out[j].Rank
		if ri == 0 {
			ri = int(^uint(0) >> 1)
		}
		if rj == 0 {
			rj = int(^uint(0) >> 1)
		}
		return ri < rj
	})
	return out
}

func (l *CoinGeckoLister) denied(id string) bool {
	lower := strings.ToLower(id)
	for _, frag := range l.denylist {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
