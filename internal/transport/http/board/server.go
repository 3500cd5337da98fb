// Package boardhttp serves the dashboard pages and the JSON API.
package boardhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tickboard/internal/catalog"
	"tickboard/internal/logger"
	"tickboard/internal/market"
)

// Server wraps the gin engine and its listener lifecycle.
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig wires the dashboard dependencies.
type ServerConfig struct {
	Addr            string
	Catalog         *catalog.Service
	CryptoBatch     *market.Batch
	EquityBatch     *market.Batch
	CryptoFetcher   *market.Fetcher
	EquityFetcher   *market.Fetcher
	DefaultDays     int
	SnapshotEnabled bool
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Catalog == nil || cfg.CryptoFetcher == nil || cfg.EquityFetcher == nil {
		return nil, errors.New("board http server requires catalog and fetchers")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8781"
	}
	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = 90
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := newHandler(cfg)
	h.register(router)

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("[http] board listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()[:8]
		c.Set("request_id", id)
		c.Next()
		logger.Debugf("[http %s] %s %s -> %d (%s)", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
