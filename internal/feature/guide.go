package feature

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/curve"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
)

// Guide is a thin line attaching a label to the feature it describes
// (spec §3.3), grounded on
// original_source/src/railway/feature/guide.rs's GuideContour.
type Guide struct {
	Class  Railway
	Casing bool
	Trace  pathmodel.Trace
}

func (g Guide) StorageBounds() geo.Rect { return g.Trace.Bounds() }

func (g Guide) Group() Group { return NewGroupDefault(LayerLabel) }

func (g Guide) Shape(st style.Style) canvas.Shape {
	return &guideShape{
		casing:  g.Casing,
		width:   st.Measures.GuideWidth(),
		color:   st.Electric.Color(colorKey(g.Class)),
		project: st.Project,
		segs:    g.Trace.Segments(),
	}
}

type guideShape struct {
	casing  bool
	width   float64
	color   colorful.Color
	project func(geo.Point) geo.Point
	segs    []curve.Segment
}

func (s *guideShape) Render(stage canvas.Stage, st style.Style, cv canvas.Canvas) {
	switch stage {
	case canvas.Casing:
		if s.casing {
			sk := cv.Sketch()
			sk = canvas.PlotSegments(sk, s.project, s.segs)
			sk.SetColor(whiteColor, 0.7).SetLineWidth(3 * s.width).Stroke()
		}
	case canvas.Base:
		sk := cv.Sketch()
		sk = canvas.PlotSegments(sk, s.project, s.segs)
		sk.SetColor(s.color, 1).SetLineWidth(s.width).Stroke()
	}
}

func (s *guideShape) Stages() canvas.StageSet {
	set := canvas.Of(canvas.Base)
	if s.casing {
		set = set.Add(canvas.Casing)
	}
	return set
}
