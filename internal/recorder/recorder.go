// Package recorder persists render-cycle telemetry for later inspection.
package recorder

import "time"

// RenderCycle is one recorded overlay recompute.
type RenderCycle struct {
	Symbol           string
	Pattern          string
	Candles          int
	Markers          int
	PatternInstances int
	RangeSegments    int
	PointMarkers     int
	Duration         time.Duration
}

// Recorder persists render cycles.
type Recorder interface {
	RecordRender(cycle *RenderCycle) error
	Close() error
}
