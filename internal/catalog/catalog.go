// Package catalog resolves the selectable asset universes into stable,
// de-duplicated, sorted lookup tables.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tickboard/internal/pkg/cache"
)

// ErrUnavailable means no catalog could be built (rate limit or empty
// listing). Callers must halt asset-dependent flows on it: a partial list is
// never returned.
var ErrUnavailable = errors.New("catalog unavailable")

type Universe string

const (
	UniverseCrypto Universe = "crypto"
	UniverseEquity Universe = "equity"
)

// Asset is one selectable entry of a universe snapshot.
type Asset struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Rank   int    `json:"rank,omitempty"`
}

// Label is the selector text, "Name (SYMBOL)".
func (a Asset) Label() string {
	return fmt.Sprintf("%s (%s)", a.Name, strings.ToUpper(a.Symbol))
}

// Service serves catalog snapshots cached per universe. Failed builds are
// not cached, so the next interaction retries naturally.
type Service struct {
	crypto   *CoinGeckoLister
	equities *Registry
	cache    *cache.TTL[[]Asset]
}

func NewService(crypto *CoinGeckoLister, equities *Registry, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		crypto:   crypto,
		equities: equities,
		cache:    cache.NewTTL[[]Asset](ttl),
	}
}

// List returns the snapshot for a universe, building it on cache miss.
func (s *Service) List(ctx context.Context, universe Universe) ([]Asset, error) {
	switch universe {
	case UniverseCrypto:
		return s.cache.GetOrCompute(string(universe), func() ([]Asset, error) {
			return s.crypto.List(ctx)
		})
	case UniverseEquity:
		return s.cache.GetOrCompute(string(universe), func() ([]Asset, error) {
			return s.equities.Assets(), nil
		})
	default:
		return nil, fmt.Errorf("unknown universe %q", universe)
	}
}

// Find resolves an asset id within a universe snapshot.
func (s *Service) Find(ctx context.Context, universe Universe, id string) (Asset, error) {
	assets, err := s.List(ctx, universe)
	if err != nil {
		return Asset{}, err
	}
	for _, a := range assets {
		if a.ID == id {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("asset %q not in %s catalog", id, universe)
}
