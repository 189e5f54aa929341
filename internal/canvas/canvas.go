package canvas

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/railwayhistory/railmap/internal/curve"
	"github.com/railwayhistory/railmap/internal/geo"
)

// Canvas is the opaque drawing surface a renderer paints onto (spec §1:
// "treated as an opaque Canvas with primitive path operations"). A tile
// format (PNG/SVG) provides a concrete implementation; shapes only ever
// see this interface.
type Canvas interface {
	// Sketch starts a new path-building/paint operation.
	Sketch() Sketch

	// Size returns the canvas's square extent in bp.
	Size() float64

	// DrawText paints text left-anchored at p in the given colour and
	// approximate font size (bp). Glyph rendering is backend-specific
	// (native text element for SVG, rasterized bitmap font for PNG),
	// so it is a Canvas primitive rather than a Sketch path operation.
	DrawText(p geo.Point, text string, size float64, c colorful.Color)
}

// Sketch accumulates one path plus paint state (colour, line width,
// dash) and commits it with Stroke or Fill, mirroring the
// canvas.sketch().apply(...).stroke() builder chain the original
// renderer uses (original_source/src/map/feature/track.rs).
//
// Every setter returns the Sketch so calls chain; Stroke/Fill consume
// it.
type Sketch interface {
	SetColor(c colorful.Color, alpha float64) Sketch
	SetLineWidth(w float64) Sketch
	SetDash(pattern []float64, offset float64) Sketch

	MoveTo(p geo.Point) Sketch
	LineTo(p geo.Point) Sketch
	CubicTo(c1, c2, p geo.Point) Sketch
	ClosePath() Sketch

	Stroke()
	Fill()
}

// PlotSegments walks a sequence of storage-space Bézier segments,
// projecting each point through project, and appends the equivalent
// MoveTo/CubicTo path operations to sk. Segments are assumed contiguous
// (segment i's P3 equals segment i+1's P0), as produced by
// pathmodel.Trace.Segments.
func PlotSegments(sk Sketch, project func(geo.Point) geo.Point, segments []curve.Segment) Sketch {
	for i, seg := range segments {
		if i == 0 {
			sk = sk.MoveTo(project(seg.P0))
		}
		sk = sk.CubicTo(project(seg.P1), project(seg.P2), project(seg.P3))
	}
	return sk
}
