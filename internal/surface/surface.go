// Package surface defines the minimal drawing contract the overlay engine
// needs from a charting surface, plus in-process implementations.
package surface

import "chartd/internal/model"

// LineStyle carries the rendering hints for one overlay line series.
type LineStyle struct {
	Color string `json:"color"`
	Width int    `json:"width"`
	Title string `json:"title,omitempty"`
}

// LineSeries is a drawable line-series handle. The surface owns the handle's
// lifetime once created; callers may keep it across render cycles and reuse
// it by replacing its data.
type LineSeries interface {
	SetData(points []model.Point)
	ApplyStyle(style LineStyle)
}

// Surface is a drawable chart canvas. SetMarkers replaces the whole point
// marker batch each call.
type Surface interface {
	CreateLineSeries(style LineStyle) LineSeries
	SetMarkers(batch []model.PointMarker)
}
