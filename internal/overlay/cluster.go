package overlay

import (
	"fmt"
	"sort"

	"chartd/internal/model"
)

// PatternKey identifies one pattern instance. Explicit keys carry the
// detector-supplied pattern id; inferred keys carry a chronological cluster
// index assigned by the temporal fallback. Keeping the two tagged apart
// means an explicit id can never collide with a fallback cluster number.
type PatternKey struct {
	Inferred bool
	Value    int64
}

// ExplicitKey builds a key from a detector-supplied pattern id.
func ExplicitKey(id int64) PatternKey { return PatternKey{Value: id} }

// InferredKey builds a key from a fallback cluster index (1-based).
func InferredKey(index int64) PatternKey { return PatternKey{Inferred: true, Value: index} }

// String returns the stable series key for this pattern instance.
func (k PatternKey) String() string {
	if k.Inferred {
		return fmt.Sprintf("pattern:c%d", k.Value)
	}
	return fmt.Sprintf("pattern:%d", k.Value)
}

// PatternInstance is one clustered group of bowl markers, members sorted by
// time ascending. It lives for a single recompute.
type PatternInstance struct {
	Key     PatternKey
	Members []model.Marker
}

// Cluster groups bowl-candidate markers into pattern instances.
//
// When the candidates carry more than one distinct pattern id, or when there
// is exactly one candidate, grouping follows the ids. Otherwise (all
// candidates share a single id or none carry one) the temporal fallback
// applies: sorted by time, a gap larger than ClusterGapSeconds starts a new
// cluster, numbered from 1 in chronological order. The detector is expected
// to supply ids; the fallback keeps rendering sane when it does not.
func Cluster(bowls []model.Marker, opts Options) []PatternInstance {
	opts = opts.withDefaults()
	if len(bowls) == 0 {
		return nil
	}

	sorted := make([]model.Marker, len(bowls))
	copy(sorted, bowls)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	distinct := make(map[int64]struct{})
	for _, m := range sorted {
		if m.PatternID != nil {
			distinct[*m.PatternID] = struct{}{}
		}
	}

	if len(sorted) == 1 {
		m := sorted[0]
		if m.PatternID != nil {
			return []PatternInstance{{Key: ExplicitKey(*m.PatternID), Members: sorted}}
		}
		return []PatternInstance{{Key: InferredKey(1), Members: sorted}}
	}

	if len(distinct) > 1 {
		return clusterByID(sorted, opts)
	}
	return clusterByGap(sorted, opts.ClusterGapSeconds)
}

// clusterByID groups markers by their explicit pattern id, instances ordered
// by first appearance. Markers lacking an id are clustered among themselves
// by the temporal fallback and appended after the explicit instances.
func clusterByID(sorted []model.Marker, opts Options) []PatternInstance {
	var order []int64
	groups := make(map[int64][]model.Marker)
	var orphans []model.Marker

	for _, m := range sorted {
		if m.PatternID == nil {
			orphans = append(orphans, m)
			continue
		}
		id := *m.PatternID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], m)
	}

	out := make([]PatternInstance, 0, len(order))
	for _, id := range order {
		out = append(out, PatternInstance{Key: ExplicitKey(id), Members: groups[id]})
	}
	if len(orphans) > 0 {
		out = append(out, clusterByGap(orphans, opts.ClusterGapSeconds)...)
	}
	return out
}

// clusterByGap splits time-sorted markers wherever the gap to the previous
// marker exceeds gapSeconds.
func clusterByGap(sorted []model.Marker, gapSeconds int64) []PatternInstance {
	var out []PatternInstance
	var current []model.Marker
	for i, m := range sorted {
		if i > 0 && m.Time-sorted[i-1].Time > gapSeconds {
			out = append(out, PatternInstance{Key: InferredKey(int64(len(out) + 1)), Members: current})
			current = nil
		}
		current = append(current, m)
	}
	if len(current) > 0 {
		out = append(out, PatternInstance{Key: InferredKey(int64(len(out) + 1)), Members: current})
	}
	return out
}
