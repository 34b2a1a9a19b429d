// Package server exposes the chart state over HTTP: a snapshot endpoint for
// initial page loads, a selection endpoint backing the symbol/pattern search
// box, and the websocket upgrade for live updates.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chartd/internal/collector"
	"chartd/internal/surface"
)

// StateProvider supplies the current drawable state.
type StateProvider interface {
	Snapshot() surface.Snapshot
}

// Selector switches the chart target and refreshes it.
type Selector interface {
	Select(ctx context.Context, symbol, pattern string) error
}

// Server is the HTTP front of the chart service.
type Server struct {
	router *gin.Engine
	log    zerolog.Logger
}

type selectRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Pattern string `json:"pattern"`
}

// New builds the router.
func New(state StateProvider, target *collector.Collector, selector Selector, ws http.HandlerFunc, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/chart", func(c *gin.Context) {
		symbol, pattern := target.Target()
		c.JSON(http.StatusOK, gin.H{
			"symbol":  symbol,
			"pattern": pattern,
			"state":   state.Snapshot(),
		})
	})

	router.POST("/api/chart/select", func(c *gin.Context) {
		var req selectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := selector.Select(c.Request.Context(), req.Symbol, req.Pattern); err != nil {
			log.Error().Err(err).Str("symbol", req.Symbol).Msg("selection refresh failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		symbol, pattern := target.Target()
		c.JSON(http.StatusOK, gin.H{"symbol": symbol, "pattern": pattern})
	})

	router.GET("/ws", gin.WrapF(ws))

	return &Server{router: router, log: log}
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("server shutdown")
		}
	}()

	s.log.Info().Str("addr", addr).Msg("http server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
