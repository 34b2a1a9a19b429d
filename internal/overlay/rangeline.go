package overlay

import (
	"strconv"

	"chartd/internal/model"
)

// RangeSegment is a pair of horizontal levels bounding one narrow-range
// regime over an explicit time window.
type RangeSegment struct {
	ID        string
	High      float64
	Low       float64
	StartTime int64
	EndTime   int64
}

// HighKey returns the series key of the upper bound line.
func (s RangeSegment) HighKey() string { return "range:" + s.ID + "-high" }

// LowKey returns the series key of the lower bound line.
func (s RangeSegment) LowKey() string { return "range:" + s.ID + "-low" }

// HighPoints returns the two-point constant line at the range high.
func (s RangeSegment) HighPoints() []model.Point {
	return []model.Point{{Time: s.StartTime, Value: s.High}, {Time: s.EndTime, Value: s.High}}
}

// LowPoints returns the two-point constant line at the range low.
func (s RangeSegment) LowPoints() []model.Point {
	return []model.Point{{Time: s.StartTime, Value: s.Low}, {Time: s.EndTime, Value: s.Low}}
}

// BuildRangeSegments converts range-candidate markers into segments, keyed by
// nrb_id when present and by the marker's own time otherwise. Markers without
// a complete range window are skipped.
func BuildRangeSegments(ranges []model.Marker) []RangeSegment {
	out := make([]RangeSegment, 0, len(ranges))
	for _, m := range ranges {
		if !m.HasRange() {
			continue
		}
		id := strconv.FormatInt(m.Time, 10)
		if m.NRBID != nil {
			id = strconv.FormatInt(*m.NRBID, 10)
		}
		out = append(out, RangeSegment{
			ID:        id,
			High:      *m.RangeHigh,
			Low:       *m.RangeLow,
			StartTime: *m.RangeStart,
			EndTime:   *m.RangeEnd,
		})
	}
	return out
}
