package surface

import (
	"sync"

	"chartd/internal/model"
)

// Memory is an in-process Surface holding the full drawable state. It backs
// the engine tests and serves as the snapshot store behind the streaming
// surface. Safe for concurrent snapshot reads while the engine renders.
type Memory struct {
	mu      sync.RWMutex
	nextID  int
	series  []*MemorySeries
	markers []model.PointMarker
}

// MemorySeries is a line-series handle on a Memory surface.
type MemorySeries struct {
	mem   *Memory
	id    int
	style LineStyle
	data  []model.Point
}

// NewMemory creates an empty in-memory surface.
func NewMemory() *Memory {
	return &Memory{}
}

// CreateLineSeries allocates a new series with the given style.
func (m *Memory) CreateLineSeries(style LineStyle) LineSeries {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s := &MemorySeries{mem: m, id: m.nextID, style: style}
	m.series = append(m.series, s)
	return s
}

// SetMarkers replaces the point marker batch.
func (m *Memory) SetMarkers(batch []model.PointMarker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers = append([]model.PointMarker(nil), batch...)
}

// ID returns the surface-assigned series id.
func (s *MemorySeries) ID() int { return s.id }

// SetData replaces the series data. An empty or nil slice clears the series.
func (s *MemorySeries) SetData(points []model.Point) {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	s.data = append([]model.Point(nil), points...)
}

// ApplyStyle replaces the series style.
func (s *MemorySeries) ApplyStyle(style LineStyle) {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	s.style = style
}

// SeriesState is the externally visible state of one series.
type SeriesState struct {
	ID    int           `json:"id"`
	Style LineStyle     `json:"style"`
	Data  []model.Point `json:"data"`
}

// Snapshot is a deep copy of the whole drawable state.
type Snapshot struct {
	Series  []SeriesState       `json:"series"`
	Markers []model.PointMarker `json:"markers"`
}

// Snapshot returns a copy of the current drawable state.
func (m *Memory) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := Snapshot{
		Series:  make([]SeriesState, 0, len(m.series)),
		Markers: append([]model.PointMarker(nil), m.markers...),
	}
	for _, s := range m.series {
		snap.Series = append(snap.Series, SeriesState{
			ID:    s.id,
			Style: s.style,
			Data:  append([]model.Point(nil), s.data...),
		})
	}
	return snap
}
