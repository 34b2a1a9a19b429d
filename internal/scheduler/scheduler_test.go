package scheduler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartd/internal/collector"
	"chartd/internal/model"
	"chartd/internal/overlay"
	"chartd/internal/recorder"
	"chartd/internal/surface"
)

func TestScheduler_RefreshRendersOntoSurface(t *testing.T) {
	id := int64(4)
	day := int64(24 * 60 * 60)
	t0 := int64(1_600_000_000)
	candles := make([]model.Candle, 60)
	for i := range candles {
		low := 100.0
		candles[i] = model.Candle{Time: t0 + int64(i)*day, Open: low + 1, High: low + 2, Low: low, Close: low + 1}
	}

	mock := &collector.MockFetcher{
		Candles: candles,
		Markers: []model.Marker{{Time: t0 + 30*day, PatternID: &id, Text: "Bowl"}},
	}
	col := collector.NewCollector(mock, "NIFTY", "bowl", 300)
	surf := surface.NewMemory()
	eng := overlay.NewEngine(surf, overlay.Options{}, zerolog.Nop())
	sched := NewScheduler(context.Background(), col, eng, recorder.NewNoopRecorder(), zerolog.Nop())

	require.NoError(t, sched.Refresh(context.Background()))

	snap := surf.Snapshot()
	require.Len(t, snap.Series, 1)
	assert.Equal(t, "pattern:4", snap.Series[0].Style.Title)
	assert.NotEmpty(t, snap.Series[0].Data)
}

func TestScheduler_SelectSwitchesTarget(t *testing.T) {
	mock := &collector.MockFetcher{
		Candles: []model.Candle{},
		Markers: []model.Marker{},
	}
	col := collector.NewCollector(mock, "NIFTY", "bowl", 300)
	surf := surface.NewMemory()
	eng := overlay.NewEngine(surf, overlay.Options{}, zerolog.Nop())
	sched := NewScheduler(context.Background(), col, eng, recorder.NewNoopRecorder(), zerolog.Nop())

	require.NoError(t, sched.Select(context.Background(), "BANKNIFTY", "nrb"))
	symbol, pattern := col.Target()
	assert.Equal(t, "BANKNIFTY", symbol)
	assert.Equal(t, "nrb", pattern)
}
