package feature

import (
	"io"
	"testing"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/canvas/svgcanvas"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
	"github.com/railwayhistory/railmap/internal/symbolset"
)

func emptyClass(t *testing.T) Railway {
	t.Helper()
	symbols := symbolset.New()
	return FromSymbolsOnly(&symbols)
}

func straightTestPath(t *testing.T) *pathmodel.BasePath {
	t.Helper()
	nodes := []pathmodel.Node{
		{Name: "a", Point: geo.Point{X: 0, Y: 0}},
		{Name: "b", Point: geo.Point{X: 10, Y: 0}},
	}
	p, err := pathmodel.NewBasePath("straight", nodes)
	if err != nil {
		t.Fatalf("NewBasePath: %v", err)
	}
	return p
}

// Every variant's StorageBounds/Group/Shape must satisfy the Feature
// contract (spec §3.3) without panicking given a zero-value style --
// Shape is exercised by calling Render through the returned canvas.Shape
// for every stage it declares, on an SVG canvas writing to io.Discard.
func exerciseShape(t *testing.T, f Feature) {
	t.Helper()
	_ = f.StorageBounds()
	_ = f.Group()
	shape := f.Shape(style.Style{})
	cv := svgcanvas.New(io.Discard, 192)
	for _, stage := range canvas.Stages {
		if shape.Stages().Contains(stage) {
			shape.Render(stage, style.Style{}, cv)
		}
	}
}

func TestDotSatisfiesFeatureContract(t *testing.T) {
	p := straightTestPath(t)
	pos := pathmodel.Position{Path: p, At: pathmodel.Location{NodeIndex: 0}}
	class := emptyClass(t)

	d := Dot{Position: pos, Class: class, Size: 2, Paint: DotFilled, Casing: true}
	exerciseShape(t, d)

	want := geo.RectFromPoint(geo.Point{X: 0, Y: 0})
	if got := d.StorageBounds(); got != want {
		t.Errorf("StorageBounds = %+v, want %+v", got, want)
	}
	if d.Group().Layer != LayerMarker {
		t.Errorf("Group().Layer = %v, want LayerMarker", d.Group().Layer)
	}
}

func TestMarkerSatisfiesFeatureContract(t *testing.T) {
	p := straightTestPath(t)
	pos := pathmodel.Position{Path: p, At: pathmodel.Location{NodeIndex: 0}}
	ext := pathmodel.Position{Path: p, At: pathmodel.Location{NodeIndex: 1}}
	class := emptyClass(t)

	m := Marker{Position: pos, Rotation: 0, Class: class, Symbol: "de.bf", ExtentPosition: &ext}
	exerciseShape(t, m)

	bounds := m.StorageBounds()
	if !bounds.Contains(geo.Point{X: 0, Y: 0}) || !bounds.Contains(geo.Point{X: 10, Y: 0}) {
		t.Errorf("StorageBounds = %+v, want to contain both position and extent", bounds)
	}
	if m.Group().Layer != LayerMarker {
		t.Errorf("Group().Layer = %v, want LayerMarker", m.Group().Layer)
	}
}

func TestTrackSatisfiesFeatureContract(t *testing.T) {
	p := straightTestPath(t)
	class := emptyClass(t)
	trace, err := pathmodel.NewTrace([]pathmodel.TracePart{
		{Section: pathmodel.Subpath{Path: p, Start: pathmodel.Location{NodeIndex: 0}, End: pathmodel.Location{NodeIndex: 1}}},
	})
	if err != nil {
		t.Fatalf("NewTrace: %v", err)
	}

	tr := Track{Class: class, Casing: true, Trace: trace}
	exerciseShape(t, tr)

	if tr.Group().Layer != LayerTrack {
		t.Errorf("Group().Layer = %v, want LayerTrack", tr.Group().Layer)
	}
}
