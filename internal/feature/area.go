package feature

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
)

// Area is a filled contour drawn flat in the Back group, used for area
// fills such as yards and depot grounds (spec §3.3), grounded on
// original_source/src/railway/feature/area.rs's AreaContour.
type Area struct {
	Class Railway
	Trace pathmodel.Trace
}

func (a Area) StorageBounds() geo.Rect { return a.Trace.Bounds() }

func (a Area) Group() Group { return NewGroup(LayerBack, a.Class) }

func (a Area) Shape(st style.Style) canvas.Shape {
	return canvas.Func(fillShape(a.Trace, st, st.Electric.Color(colorKey(a.Class))))
}

// Platform is a filled contour identical in rendering to Area but kept
// as its own feature type since the DSL's "platform" builtin carries
// distinct semantics upstream (spec §3.3), grounded on
// original_source/src/railway/feature/area.rs's PlatformContour.
type Platform struct {
	Class Railway
	Trace pathmodel.Trace
}

func (p Platform) StorageBounds() geo.Rect { return p.Trace.Bounds() }

func (p Platform) Group() Group { return NewGroup(LayerBack, p.Class) }

func (p Platform) Shape(st style.Style) canvas.Shape {
	return canvas.Func(fillShape(p.Trace, st, st.Electric.Color(colorKey(p.Class))))
}

// fillShape builds a Base-stage-only fill painter for trace, projected
// and filled in the given colour, shared by Area and Platform.
func fillShape(trace pathmodel.Trace, st style.Style, color colorful.Color) canvas.Func {
	segs := trace.Segments()
	project := st.Project
	return func(_ style.Style, cv canvas.Canvas) {
		sk := cv.Sketch()
		sk = canvas.PlotSegments(sk, project, segs)
		sk.ClosePath().SetColor(color, 1).Fill()
	}
}
