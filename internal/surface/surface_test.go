package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartd/internal/model"
)

func TestMemory_SnapshotIsCopy(t *testing.T) {
	mem := NewMemory()
	series := mem.CreateLineSeries(LineStyle{Color: "#fff", Width: 2, Title: "a"})
	series.SetData([]model.Point{{Time: 1, Value: 10}})
	mem.SetMarkers([]model.PointMarker{{Time: 1, Position: "belowBar", Color: "#abc", Shape: "circle"}})

	snap := mem.Snapshot()
	require.Len(t, snap.Series, 1)
	require.Len(t, snap.Markers, 1)

	// Mutating the surface afterwards must not leak into the snapshot.
	series.SetData([]model.Point{{Time: 2, Value: 20}, {Time: 3, Value: 30}})
	mem.SetMarkers(nil)
	assert.Len(t, snap.Series[0].Data, 1)
	assert.Len(t, snap.Markers, 1)
}

func TestMemory_ClearSeries(t *testing.T) {
	mem := NewMemory()
	series := mem.CreateLineSeries(LineStyle{})
	series.SetData([]model.Point{{Time: 1, Value: 10}})
	series.SetData(nil)

	snap := mem.Snapshot()
	require.Len(t, snap.Series, 1)
	assert.Empty(t, snap.Series[0].Data)
}

func TestStream_PublishesEveryMutation(t *testing.T) {
	var events []Event
	stream := NewStream(func(e Event) { events = append(events, e) })

	series := stream.CreateLineSeries(LineStyle{Color: "#abc", Width: 1})
	series.SetData([]model.Point{{Time: 1, Value: 10}})
	series.ApplyStyle(LineStyle{Color: "#def", Width: 1})
	stream.SetMarkers([]model.PointMarker{{Time: 1}})

	require.Len(t, events, 4)
	assert.Equal(t, EventSeriesNew, events[0].Type)
	assert.Equal(t, EventSeriesData, events[1].Type)
	assert.Equal(t, EventSeriesStyle, events[2].Type)
	assert.Equal(t, EventMarkers, events[3].Type)
	assert.Equal(t, events[0].SeriesID, events[1].SeriesID)

	// The mirror keeps the latest state for late joiners.
	snap := stream.Snapshot()
	require.Len(t, snap.Series, 1)
	assert.Equal(t, "#def", snap.Series[0].Style.Color)
}
