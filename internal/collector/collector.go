// Package collector fetches the inputs of one render cycle — price history
// plus detected-pattern markers — for the currently selected chart target.
package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"chartd/internal/model"
)

// ChartData is one render cycle's worth of engine input.
type ChartData struct {
	Symbol  string
	Pattern string
	Title   string
	Candles []model.Candle
	Markers []model.Marker
}

// Collector bundles a fetcher with the selected symbol and pattern. The
// selection can change at any time (the search UI), so access is guarded.
type Collector struct {
	mu      sync.Mutex
	fetcher Fetcher
	symbol  string
	pattern string
	limit   int
}

// NewCollector creates a collector fetching up to limit candles per cycle.
func NewCollector(fetcher Fetcher, symbol, pattern string, limit int) *Collector {
	if limit <= 0 {
		limit = 300
	}
	return &Collector{fetcher: fetcher, symbol: symbol, pattern: pattern, limit: limit}
}

// Select switches the chart target.
func (c *Collector) Select(symbol, pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if symbol != "" {
		c.symbol = symbol
	}
	c.pattern = pattern
}

// Target returns the currently selected symbol and pattern.
func (c *Collector) Target() (symbol, pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.symbol, c.pattern
}

// Collect fetches candles and markers for the current target. The returned
// title carries the pattern name, which is what switches the engine into
// bowl mode.
func (c *Collector) Collect(ctx context.Context) (*ChartData, error) {
	symbol, pattern := c.Target()

	candles, err := c.fetcher.FetchCandles(ctx, symbol, c.limit)
	if err != nil {
		return nil, fmt.Errorf("fetch candles for %s: %w", symbol, err)
	}
	markers, err := c.fetcher.FetchMarkers(ctx, symbol, pattern)
	if err != nil {
		return nil, fmt.Errorf("fetch markers for %s: %w", symbol, err)
	}

	return &ChartData{
		Symbol:  symbol,
		Pattern: pattern,
		Title:   chartTitle(symbol, pattern),
		Candles: candles,
		Markers: markers,
	}, nil
}

func chartTitle(symbol, pattern string) string {
	if strings.TrimSpace(pattern) == "" {
		return symbol
	}
	return fmt.Sprintf("%s %s patterns", symbol, pattern)
}
