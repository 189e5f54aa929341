package feature

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
)

// Marker places a named symbol at a position with its own rotation and
// class, optionally stretched towards a second "extent" position (spec
// §3.3), grounded on original_source/src/railway/feature/marker.rs.
type Marker struct {
	Position       pathmodel.Position
	Rotation       float64
	Class          Railway
	Symbol         string
	ExtentPosition *pathmodel.Position
}

func (m Marker) StorageBounds() geo.Rect {
	p, _ := m.Position.Resolve()
	r := geo.RectFromPoint(p)
	if m.ExtentPosition != nil {
		ep, _ := m.ExtentPosition.Resolve()
		r = r.UnionPoint(ep)
	}
	return r
}

func (m Marker) Group() Group { return NewGroup(LayerMarker, m.Class) }

// Shape erases the underlying track with a white disc in MarkerCasing,
// then draws the symbol disc in MarkerBase (spec §4.6: "Markers in
// MarkerCasing stamp a white disc/rectangle to erase underlying track,
// then draw the symbol in MarkerBase").
func (m Marker) Shape(st style.Style) canvas.Shape {
	p, dir := m.Position.Resolve()
	return &markerShape{
		center: st.Project(p),
		dir:    dir + m.Rotation,
		radius: st.Measures.StationWidth() / 2,
		color:  st.Electric.Color(colorKey(m.Class)),
	}
}

type markerShape struct {
	center geo.Point
	dir    float64
	radius float64
	color  colorful.Color
}

func (s *markerShape) Render(stage canvas.Stage, st style.Style, cv canvas.Canvas) {
	switch stage {
	case canvas.MarkerCasing:
		circlePath(cv.Sketch(), s.center, s.radius*1.3).SetColor(whiteColor, 1).Fill()
	case canvas.MarkerBase:
		circlePath(cv.Sketch(), s.center, s.radius).SetColor(s.color, 1).Fill()
	}
}

func (s *markerShape) Stages() canvas.StageSet {
	return canvas.Of(canvas.MarkerCasing, canvas.MarkerBase)
}
