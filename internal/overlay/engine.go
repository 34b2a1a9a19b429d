// Package overlay turns candle history plus detected pattern markers into a
// minimal, leak-free set of drawable overlay series: grouped bowl instances
// with synthesized reversal curves, paired horizontal lines for narrow-range
// regimes, and a resolved point-marker batch.
package overlay

import (
	"github.com/rs/zerolog"

	"chartd/internal/model"
	"chartd/internal/surface"
)

// Defaults applied to plain point markers when the detector left the hint
// unset, plus the fixed breakout overrides.
const (
	defaultMarkerPosition = "belowBar"
	defaultMarkerColor    = "#2196F3"
	defaultMarkerShape    = "circle"

	bullishBreakColor = "#4CAF50"
	bearishBreakColor = "#F44336"

	rangeLineColor = "#FF9800"
)

// Engine owns the key→handle mapping across render cycles and reconciles it
// against each recompute so the surface never accumulates stale artifacts.
// Not safe for concurrent use; callers serialize Render.
type Engine struct {
	surface surface.Surface
	opts    Options
	log     zerolog.Logger
	handles map[string]surface.LineSeries
}

// NewEngine creates an engine drawing on surf. Zero option fields resolve to
// defaults.
func NewEngine(surf surface.Surface, opts Options, log zerolog.Logger) *Engine {
	return &Engine{
		surface: surf,
		opts:    opts.withDefaults(),
		log:     log,
		handles: make(map[string]surface.LineSeries),
	}
}

// RenderStats summarizes one render cycle.
type RenderStats struct {
	PatternInstances int
	RangeSegments    int
	PointMarkers     int
	ActiveSeries     int
}

type seriesSpec struct {
	key    string
	style  surface.LineStyle
	points []model.Point
}

// Render recomputes every overlay from the given inputs and applies the
// minimal set of surface mutations: existing handles are restyled and
// refilled, new keys get fresh series, and handles whose key disappeared are
// cleared (not destroyed, so the surface can reuse them). An empty candle
// series clears everything. Render never fails; malformed or partial markers
// degrade to defaults.
func (e *Engine) Render(candles []model.Candle, markers []model.Marker, title string) RenderStats {
	classified := Classify(markers, title)
	instances := Cluster(classified.Bowls, e.opts)
	segments := BuildRangeSegments(classified.Ranges)

	var specs []seriesSpec
	if len(candles) > 0 {
		for _, inst := range instances {
			points := SynthesizeCurve(inst, candles, e.opts)
			if len(points) == 0 {
				e.log.Debug().Str("key", inst.Key.String()).Msg("no candles in pattern window, skipping curve")
				continue
			}
			specs = append(specs, seriesSpec{
				key:    inst.Key.String(),
				style:  surface.LineStyle{Color: e.opts.colorFor(inst.Key), Width: 2, Title: inst.Key.String()},
				points: points,
			})
		}
		for _, seg := range segments {
			specs = append(specs,
				seriesSpec{
					key:    seg.HighKey(),
					style:  surface.LineStyle{Color: rangeLineColor, Width: 1, Title: seg.HighKey()},
					points: seg.HighPoints(),
				},
				seriesSpec{
					key:    seg.LowKey(),
					style:  surface.LineStyle{Color: rangeLineColor, Width: 1, Title: seg.LowKey()},
					points: seg.LowPoints(),
				},
			)
		}
	}

	active := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		handle, ok := e.handles[spec.key]
		if ok {
			handle.ApplyStyle(spec.style)
		} else {
			handle = e.surface.CreateLineSeries(spec.style)
			e.handles[spec.key] = handle
		}
		handle.SetData(spec.points)
		active[spec.key] = struct{}{}
	}
	for key, handle := range e.handles {
		if _, ok := active[key]; !ok {
			handle.SetData(nil)
		}
	}

	batch := resolvePointMarkers(classified.Points)
	e.surface.SetMarkers(batch)

	return RenderStats{
		PatternInstances: len(instances),
		RangeSegments:    len(segments),
		PointMarkers:     len(batch),
		ActiveSeries:     len(active),
	}
}

// resolvePointMarkers applies the breakout overrides and fills in defaults
// for every rendering hint the detector left unset.
func resolvePointMarkers(points []model.Marker) []model.PointMarker {
	out := make([]model.PointMarker, 0, len(points))
	for _, m := range points {
		pm := model.PointMarker{
			Time:     m.Time,
			Position: m.Position,
			Color:    m.Color,
			Shape:    m.Shape,
			Text:     m.Text,
		}
		switch m.Direction {
		case model.DirectionBullishBreak:
			pm.Position = defaultMarkerPosition
			pm.Color = bullishBreakColor
			pm.Shape = "arrowUp"
		case model.DirectionBearishBreak:
			pm.Position = "aboveBar"
			pm.Color = bearishBreakColor
			pm.Shape = "arrowDown"
		default:
			if pm.Position == "" {
				pm.Position = defaultMarkerPosition
			}
			if pm.Color == "" {
				pm.Color = defaultMarkerColor
			}
			if pm.Shape == "" {
				pm.Shape = defaultMarkerShape
			}
		}
		out = append(out, pm)
	}
	return out
}
