package overlay

import (
	"strings"

	"chartd/internal/model"
)

// Classified holds the three disjoint partitions of a marker list. Every
// input marker lands in exactly one of them.
type Classified struct {
	Bowls  []model.Marker
	Ranges []model.Marker
	Points []model.Marker
}

// BowlMode reports whether the chart title asks for bowl-pattern rendering
// (case-insensitive substring match).
func BowlMode(title string) bool {
	return strings.Contains(strings.ToLower(title), "bowl")
}

// Classify partitions markers into bowl candidates, narrow-range candidates,
// and plain point markers. Bowl detection wins over range fields, so a bowl
// marker that incidentally carries range bounds is never rendered as a range
// line.
func Classify(markers []model.Marker, title string) Classified {
	bowlMode := BowlMode(title)
	var out Classified
	for _, m := range markers {
		switch {
		case (bowlMode && m.PatternID != nil) || strings.Contains(strings.ToUpper(m.Text), "BOWL"):
			out.Bowls = append(out.Bowls, m)
		case m.HasRange():
			out.Ranges = append(out.Ranges, m)
		default:
			out.Points = append(out.Points, m)
		}
	}
	return out
}
