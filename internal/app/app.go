// Package app wires configuration into the running dashboard.
package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"tickboard/internal/catalog"
	"tickboard/internal/config"
	"tickboard/internal/logger"
	"tickboard/internal/market"
	boardhttp "tickboard/internal/transport/http/board"
)

// App holds the assembled dependency graph.
type App struct {
	cfg    *config.Config
	server *boardhttp.Server
}

// NewApp builds the app from config without starting anything.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	lister := catalog.NewCoinGeckoLister(cfg.Catalog.CoinGeckoURL, catalog.ListerOptions{
		Pace:     time.Duration(cfg.Catalog.PaceMillis) * time.Millisecond,
		Pages:    cfg.Catalog.Pages,
		Timeout:  time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		Denylist: cfg.Catalog.DenylistExtra,
	})
	registry, err := catalog.NewRegistry(cfg.Catalog.EquitiesFile)
	if err != nil {
		return nil, fmt.Errorf("building equity registry: %w", err)
	}
	catalogSvc := catalog.NewService(lister, registry, time.Duration(cfg.Catalog.TTLSeconds)*time.Second)

	timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
	fetchOpts := market.FetcherOptions{
		CacheTTL: time.Duration(cfg.Fetch.TTLSeconds) * time.Second,
		Padding:  cfg.Fetch.PaddingDays,
		Timeout:  timeout,
	}
	cryptoFetcher := market.NewFetcher(market.NewCoinGeckoSource(cfg.Fetch.CoinGeckoURL, timeout), fetchOpts)
	equityFetcher := market.NewFetcher(market.NewYahooSource(cfg.Fetch.YahooURL, timeout), fetchOpts)

	server, err := boardhttp.NewServer(boardhttp.ServerConfig{
		Addr:            cfg.App.HTTPAddr,
		Catalog:         catalogSvc,
		CryptoBatch:     market.NewBatch(cryptoFetcher, cfg.Fetch.Workers),
		EquityBatch:     market.NewBatch(equityFetcher, cfg.Fetch.Workers),
		CryptoFetcher:   cryptoFetcher,
		EquityFetcher:   equityFetcher,
		DefaultDays:     cfg.Chart.DefaultDays,
		SnapshotEnabled: cfg.Chart.SnapshotEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("building board server: %w", err)
	}

	return &App{cfg: cfg, server: server}, nil
}

// Run serves until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("board http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}

// Server exposes the HTTP server, mainly for tests.
func (a *App) Server() *boardhttp.Server {
	if a == nil {
		return nil
	}
	return a.server
}
