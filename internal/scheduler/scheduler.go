// Package scheduler drives chart refreshes: a cron-timed recompute plus
// on-demand triggers when the selection changes.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"chartd/internal/collector"
	"chartd/internal/overlay"
	"chartd/internal/recorder"
)

// Scheduler serializes refreshes so the engine's key→handle map is only ever
// touched by one recompute at a time.
type Scheduler struct {
	cron      *cron.Cron
	collector *collector.Collector
	engine    *overlay.Engine
	recorder  recorder.Recorder
	log       zerolog.Logger
	ctx       context.Context

	mu sync.Mutex
}

// NewScheduler creates a scheduler refreshing through the given collector
// and engine.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *overlay.Engine, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		collector: col,
		engine:    eng,
		recorder:  rec,
		log:       log,
		ctx:       ctx,
	}
}

// Register installs the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.cron.AddFunc(refreshCron, func() {
		if err := s.Refresh(s.ctx); err != nil {
			s.log.Error().Err(err).Msg("scheduled refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// Select switches the chart target and refreshes immediately. This is the
// entry point behind the search UI.
func (s *Scheduler) Select(ctx context.Context, symbol, pattern string) error {
	s.collector.Select(symbol, pattern)
	return s.Refresh(ctx)
}

// Refresh runs one full collect-and-render cycle.
func (s *Scheduler) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	data, err := s.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect chart data: %w", err)
	}

	stats := s.engine.Render(data.Candles, data.Markers, data.Title)
	elapsed := time.Since(start)

	if err := s.recorder.RecordRender(&recorder.RenderCycle{
		Symbol:           data.Symbol,
		Pattern:          data.Pattern,
		Candles:          len(data.Candles),
		Markers:          len(data.Markers),
		PatternInstances: stats.PatternInstances,
		RangeSegments:    stats.RangeSegments,
		PointMarkers:     stats.PointMarkers,
		Duration:         elapsed,
	}); err != nil {
		s.log.Error().Err(err).Msg("record render cycle")
	}

	s.log.Info().
		Str("symbol", data.Symbol).
		Str("pattern", data.Pattern).
		Int("candles", len(data.Candles)).
		Int("patterns", stats.PatternInstances).
		Int("segments", stats.RangeSegments).
		Int("point_markers", stats.PointMarkers).
		Dur("elapsed", elapsed).
		Msg("chart refreshed")
	return nil
}
