package feature

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
)

// DotPaint selects how a Dot's disc is painted.
type DotPaint int

const (
	DotFilled DotPaint = iota
	DotStroked
	DotNone
)

// Dot is a small filled/stroked/invisible disc at a position, with an
// optional white casing underneath (spec §3.3's "statdot"/gauge-group
// glyph family), grounded on original_source/src/railway/feature/dot.rs.
type Dot struct {
	Position pathmodel.Position
	Class    Railway
	Size     float64
	Paint    DotPaint
	Casing   bool
}

func (d Dot) StorageBounds() geo.Rect {
	p, _ := d.Position.Resolve()
	return geo.RectFromPoint(p)
}

func (d Dot) Group() Group { return NewGroup(LayerMarker, d.Class) }

func (d Dot) Shape(st style.Style) canvas.Shape {
	p, _ := d.Position.Resolve()
	return &dotShape{
		center: st.Project(p),
		radius: d.Size * st.Mag / 2,
		paint:  d.Paint,
		casing: d.Casing,
		color:  st.Electric.Color(colorKey(d.Class)),
	}
}

type dotShape struct {
	center geo.Point
	radius float64
	paint  DotPaint
	casing bool
	color  colorful.Color
}

func (s *dotShape) Render(stage canvas.Stage, st style.Style, cv canvas.Canvas) {
	switch stage {
	case canvas.MarkerCasing:
		if s.casing {
			circlePath(cv.Sketch(), s.center, s.radius*1.4).SetColor(whiteColor, 1).Fill()
		}
	case canvas.MarkerBase:
		switch s.paint {
		case DotFilled:
			circlePath(cv.Sketch(), s.center, s.radius).SetColor(s.color, 1).Fill()
		case DotStroked:
			circlePath(cv.Sketch(), s.center, s.radius).SetColor(s.color, 1).SetLineWidth(s.radius * 0.3).Stroke()
		}
	}
}

func (s *dotShape) Stages() canvas.StageSet {
	return canvas.Of(canvas.MarkerCasing, canvas.MarkerBase)
}
