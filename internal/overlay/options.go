package overlay

// Defaults for the engine tunables. The gap and extension windows are both
// 30 days of unix seconds.
const (
	DefaultClusterGapSeconds     int64 = 30 * 24 * 60 * 60
	DefaultCurveExtensionSeconds int64 = 30 * 24 * 60 * 60
	DefaultBowlDepthFactor             = 0.8
	DefaultBlendRatio                  = 0.65
)

// DefaultPalette is the fixed 10-color palette pattern instances are mapped
// onto. Assignment is deterministic per pattern id, so a pattern keeps its
// color across re-renders.
var DefaultPalette = []string{
	"#2196F3", // blue
	"#E91E63", // pink
	"#4CAF50", // green
	"#FF9800", // orange
	"#9C27B0", // purple
	"#00BCD4", // cyan
	"#FFC107", // amber
	"#F44336", // red
	"#3F51B5", // indigo
	"#009688", // teal
}

// Options holds the engine tunables. The zero value is usable: every zero
// field resolves to its default.
type Options struct {
	Palette               []string
	ClusterGapSeconds     int64
	CurveExtensionSeconds int64
	BowlDepthFactor       float64
	BlendRatio            float64
}

// DefaultOptions returns the fully populated default engine options.
func DefaultOptions() Options {
	return Options{
		Palette:               DefaultPalette,
		ClusterGapSeconds:     DefaultClusterGapSeconds,
		CurveExtensionSeconds: DefaultCurveExtensionSeconds,
		BowlDepthFactor:       DefaultBowlDepthFactor,
		BlendRatio:            DefaultBlendRatio,
	}
}

func (o Options) withDefaults() Options {
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	if o.ClusterGapSeconds <= 0 {
		o.ClusterGapSeconds = DefaultClusterGapSeconds
	}
	if o.CurveExtensionSeconds <= 0 {
		o.CurveExtensionSeconds = DefaultCurveExtensionSeconds
	}
	if o.BowlDepthFactor <= 0 {
		o.BowlDepthFactor = DefaultBowlDepthFactor
	}
	if o.BlendRatio <= 0 {
		o.BlendRatio = DefaultBlendRatio
	}
	return o
}

// colorFor maps a pattern key onto the palette by abs(id) mod palette size.
func (o Options) colorFor(key PatternKey) string {
	idx := key.Value
	if idx < 0 {
		idx = -idx
	}
	return o.Palette[int(idx)%len(o.Palette)]
}
