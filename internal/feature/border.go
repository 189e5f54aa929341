package feature

import (
	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
)

// Border is a thin dashed line marking an administrative boundary along
// a trace (spec §3.3: "class + trace"), grounded on the same
// Trace-drawing pattern as GuideContour in
// original_source/src/railway/feature/guide.rs, since no dedicated
// border.rs source file was retrieved.
type Border struct {
	Class Railway
	Trace pathmodel.Trace
}

func (b Border) StorageBounds() geo.Rect { return b.Trace.Bounds() }

func (b Border) Group() Group { return NewGroupDefault(LayerBack) }

func (b Border) Shape(st style.Style) canvas.Shape {
	width := st.Measures.BorderWidth()
	seg := st.Measures.Seg()
	project := st.Project
	segs := b.Trace.Segments()
	color := st.Electric.Color(colorKey(b.Class))

	return canvas.Func(func(_ style.Style, cv canvas.Canvas) {
		sk := cv.Sketch()
		sk = canvas.PlotSegments(sk, project, segs)
		sk.SetColor(color, 1).SetLineWidth(width).
			SetDash([]float64{0.6 * seg, 0.3 * seg}, 0).Stroke()
	})
}
