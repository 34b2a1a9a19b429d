package overlay

import (
	"sort"

	"chartd/internal/model"
)

// SynthesizeCurve produces the smooth U-shaped line approximating one bowl
// pattern over the candles inside its padded time window.
//
// The window spans the instance's first through last marker, extended by
// CurveExtensionSeconds on each side. Over that span a parabola is anchored
// at the lowest low, normalized so its depth is 1 at the bottom and 0 at both
// edges, pulled toward the bottom by BowlDepthFactor, and finally blended
// with the real candle lows by BlendRatio so the curve tracks actual price
// action instead of floating free. An empty span yields no curve.
func SynthesizeCurve(inst PatternInstance, candles []model.Candle, opts Options) []model.Point {
	opts = opts.withDefaults()
	if len(inst.Members) == 0 || len(candles) == 0 {
		return nil
	}

	firstTime := inst.Members[0].Time
	lastTime := inst.Members[len(inst.Members)-1].Time
	extendedFirst := firstTime - opts.CurveExtensionSeconds
	extendedLast := lastTime + opts.CurveExtensionSeconds

	span := make([]model.Candle, 0, len(candles))
	for _, c := range candles {
		if c.Time >= extendedFirst && c.Time <= extendedLast {
			span = append(span, c)
		}
	}
	if len(span) == 0 {
		return nil
	}
	sort.Slice(span, func(i, j int) bool { return span[i].Time < span[j].Time })

	minLow := span[0].Low
	minIdx := 0
	for i, c := range span {
		if c.Low < minLow {
			minLow = c.Low
			minIdx = i
		}
	}

	// max(1, len-1) keeps single-candle spans from dividing by zero.
	denom := float64(len(span) - 1)
	if denom < 1 {
		denom = 1
	}
	bottomPos := float64(minIdx) / denom

	startLow := span[0].Low
	endLow := span[len(span)-1].Low

	maxDistance := bottomPos
	if 1-bottomPos > maxDistance {
		maxDistance = 1 - bottomPos
	}
	maxParabola := maxDistance * maxDistance

	points := make([]model.Point, 0, len(span))
	for i, c := range span {
		t := float64(i) / denom
		distance := t - bottomPos
		normalized := 0.0
		if maxParabola > 0 {
			normalized = (distance * distance) / maxParabola
		}
		depth := 1 - normalized

		edge := startLow + (endLow-startLow)*t
		curved := edge + (minLow-edge)*depth*opts.BowlDepthFactor
		value := opts.BlendRatio*curved + (1-opts.BlendRatio)*c.Low

		points = append(points, model.Point{Time: c.Time, Value: value})
	}
	return points
}
