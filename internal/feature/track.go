package feature

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/curve"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
)

var whiteColor = colorful.Color{R: 1, G: 1, B: 1}

// Track is a contour feature: a railway line drawn along a trace, with
// its classification and an optional casing stroke underneath it (spec
// §3.3), grounded on original_source/src/map/feature/track.rs's
// TrackContour.
type Track struct {
	Class  Railway
	Casing bool
	Trace  pathmodel.Trace
}

func (t Track) StorageBounds() geo.Rect { return t.Trace.Bounds() }

func (t Track) Group() Group { return NewGroup(LayerTrack, t.Class) }

// Shape builds the track's per-style drawable: casing (white halo)
// under a coloured base stroke, with dashed project markings and a
// thin "open but no scheduled passengers" inside stripe in the Marking
// stage, drawn at every detail level.
func (t Track) Shape(st style.Style) canvas.Shape {
	key := trackKey(t.Class)
	width := st.Measures.ClassTrack(key)
	if t.Class.Double() {
		width = st.Measures.ClassDouble(key)
	}
	if !t.Class.Category().IsMain() {
		width *= 1.2
	}

	return &trackShape{
		class:   t.Class,
		casing:  t.Casing,
		width:   width,
		color:   st.Electric.Color(colorKey(t.Class)),
		project: st.Project,
		segs:    t.Trace.Segments(),
		seg:     st.Measures.Seg(),
	}
}

type trackShape struct {
	class   Railway
	casing  bool
	width   float64
	color   colorful.Color
	project func(geo.Point) geo.Point
	segs    []curve.Segment
	seg     float64
}

func (s *trackShape) Render(stage canvas.Stage, st style.Style, cv canvas.Canvas) {
	switch stage {
	case canvas.Casing:
		if s.casing {
			sk := cv.Sketch()
			sk = canvas.PlotSegments(sk, s.project, s.segs)
			sk.SetColor(whiteColor, 0.7).SetLineWidth(1.5 * s.width).Stroke()
		}
	case canvas.Base:
		sk := cv.Sketch()
		sk = canvas.PlotSegments(sk, s.project, s.segs)
		sk = sk.SetColor(s.color, colorAlpha(s.class)).SetLineWidth(s.width)
		if dash, offset, ok := trackDash(s.class, s.seg); ok {
			sk = sk.SetDash(dash, offset)
		}
		sk.Stroke()
	case canvas.Marking:
		if s.class.IsOpen() && !s.class.Pax().IsFull() {
			sk := cv.Sketch()
			sk = canvas.PlotSegments(sk, s.project, s.segs)
			sk.SetColor(whiteColor, 1).SetLineWidth(s.width*0.4).
				SetDash([]float64{0.25 * s.seg, 0.25 * s.seg}, 0.375*s.seg).Stroke()
		}
	}
}

func (s *trackShape) Stages() canvas.StageSet {
	return canvas.Of(canvas.Casing, canvas.Base, canvas.Marking)
}

func colorAlpha(class Railway) float64 {
	if class.IsOpenNoPax() {
		return 0.7
	}
	return 1
}

// trackDash returns the base-stage dash pattern for a project track,
// mirroring TrackContour's project-status dashing.
func trackDash(class Railway, seg float64) (pattern []float64, offset float64, ok bool) {
	if class.Status().IsProject() {
		return []float64{0.7 * seg, 0.3 * seg}, 0.85 * seg, true
	}
	return nil, 0, false
}
