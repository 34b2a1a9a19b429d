package surface

import "chartd/internal/model"

// Event types published by the streaming surface.
const (
	EventSnapshot    = "snapshot"
	EventSeriesNew   = "series_create"
	EventSeriesData  = "series_data"
	EventSeriesStyle = "series_style"
	EventMarkers     = "markers"
)

// Event is one surface mutation in wire form. Snapshot events carry the full
// state and are sent to clients joining mid-session.
type Event struct {
	Type     string              `json:"type"`
	SeriesID int                 `json:"series_id,omitempty"`
	Style    *LineStyle          `json:"style,omitempty"`
	Data     []model.Point       `json:"data,omitempty"`
	Markers  []model.PointMarker `json:"markers,omitempty"`
	State    *Snapshot           `json:"state,omitempty"`
}

// SnapshotEvent wraps a snapshot for late joiners.
func SnapshotEvent(snap Snapshot) Event {
	return Event{Type: EventSnapshot, State: &snap}
}

// Stream is a Surface that mirrors every mutation into a Memory snapshot and
// publishes it as an Event. The publish func must not block; the websocket
// hub satisfies that.
type Stream struct {
	mem     *Memory
	publish func(Event)
}

type streamSeries struct {
	stream *Stream
	inner  *MemorySeries
}

// NewStream creates a streaming surface publishing through publish.
func NewStream(publish func(Event)) *Stream {
	return &Stream{mem: NewMemory(), publish: publish}
}

// CreateLineSeries allocates a series and announces it.
func (s *Stream) CreateLineSeries(style LineStyle) LineSeries {
	inner := s.mem.CreateLineSeries(style).(*MemorySeries)
	st := style
	s.publish(Event{Type: EventSeriesNew, SeriesID: inner.ID(), Style: &st})
	return &streamSeries{stream: s, inner: inner}
}

// SetMarkers replaces and broadcasts the point marker batch.
func (s *Stream) SetMarkers(batch []model.PointMarker) {
	s.mem.SetMarkers(batch)
	s.publish(Event{Type: EventMarkers, Markers: batch})
}

// Snapshot returns the current drawable state.
func (s *Stream) Snapshot() Snapshot {
	return s.mem.Snapshot()
}

func (ss *streamSeries) SetData(points []model.Point) {
	ss.inner.SetData(points)
	ss.stream.publish(Event{Type: EventSeriesData, SeriesID: ss.inner.ID(), Data: points})
}

func (ss *streamSeries) ApplyStyle(style LineStyle) {
	ss.inner.ApplyStyle(style)
	st := style
	ss.stream.publish(Event{Type: EventSeriesStyle, SeriesID: ss.inner.ID(), Style: &st})
}
