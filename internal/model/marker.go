package model

// Breakout direction strings emitted by the analysis service.
const (
	DirectionBullishBreak = "Bullish Break"
	DirectionBearishBreak = "Bearish Break"
)

// Marker is one detected-pattern event as delivered by the analysis service.
// Every field except Time is optional: a nil pointer or empty string means
// the detector had no opinion, never that the marker is malformed.
type Marker struct {
	Time     int64  `json:"time"`
	Position string `json:"position,omitempty"`
	Color    string `json:"color,omitempty"`
	Shape    string `json:"shape,omitempty"`
	Text     string `json:"text,omitempty"`

	// Bowl grouping id supplied by the detector, when it has one.
	PatternID *int64 `json:"pattern_id,omitempty"`

	// Narrow-range regime bounds. A marker describes a range only when all
	// four fields are present.
	RangeLow   *float64 `json:"range_low,omitempty"`
	RangeHigh  *float64 `json:"range_high,omitempty"`
	RangeStart *int64   `json:"range_start_time,omitempty"`
	RangeEnd   *int64   `json:"range_end_time,omitempty"`
	NRBID      *int64   `json:"nrb_id,omitempty"`

	// Breakout direction, e.g. "Bullish Break".
	Direction string `json:"direction,omitempty"`
}

// HasRange reports whether the marker carries a complete narrow-range window.
func (m Marker) HasRange() bool {
	return m.RangeLow != nil && m.RangeHigh != nil && m.RangeStart != nil && m.RangeEnd != nil
}

// PointMarker is a fully resolved point annotation ready for the chart
// surface: every rendering hint has been defaulted.
type PointMarker struct {
	Time     int64  `json:"time"`
	Position string `json:"position"`
	Color    string `json:"color"`
	Shape    string `json:"shape"`
	Text     string `json:"text,omitempty"`
}
