package feature

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
)

// FontSize selects one of the style's six named font sizes, mirroring
// original_source/src/railway/feature/label.rs's FontSize enum.
type FontSize int

const (
	FontXSmall FontSize = iota
	FontSmall
	FontMedium
	FontLarge
	FontXLarge
	FontBadge
)

// Size resolves a named size against the style's measures table.
func (f FontSize) Size(st style.Style) float64 {
	switch f {
	case FontXSmall:
		return st.Measures.XSmallFont()
	case FontSmall:
		return st.Measures.SmallFont()
	case FontLarge:
		return st.Measures.LargeFont()
	case FontXLarge:
		return st.Measures.XLargeFont()
	case FontBadge:
		return st.Measures.BadgeFont()
	default:
		return st.Measures.MediumFont()
	}
}

// Span is one line of text in a label's layout tree, carrying its own
// font size so a multi-line label can mix sizes, mirroring label.rs's
// per-span LayoutProperties.
type Span struct {
	Text string
	Size FontSize
}

// Label draws one or more stacked text spans anchored to a position,
// with an optional along-path base direction (spec §3.3: "position +
// on-path flag + layout tree"), grounded on
// original_source/src/railway/feature/label.rs's Label/Layout.
//
// The layout tree is flattened to a simple vertical span stack rather
// than the original's full box/frame/badge layout engine, since no
// text-shaping or box-layout library is present anywhere in the
// retrieved corpus to ground a fuller port against (see DESIGN.md).
type Label struct {
	Position pathmodel.Position
	OnPath   bool
	Class    Railway
	Spans    []Span
}

func (l Label) StorageBounds() geo.Rect {
	p, _ := l.Position.Resolve()
	return geo.RectFromPoint(p)
}

func (l Label) Group() Group { return NewGroupDefault(LayerLabel) }

func (l Label) Shape(st style.Style) canvas.Shape {
	p, dir := l.Position.Resolve()
	anchor := st.Project(p)
	if !l.OnPath {
		dir = 0
	}

	color := st.Electric.Color(colorKey(l.Class))
	lines := make([]labelLine, len(l.Spans))
	y := anchor.Y
	for i, span := range l.Spans {
		size := span.Size.Size(st)
		lines[i] = labelLine{text: span.Text, size: size, pos: geo.Point{X: anchor.X, Y: y}}
		y += size * 1.2
	}

	return &labelShape{lines: lines, color: color, rotation: dir}
}

type labelLine struct {
	text string
	size float64
	pos  geo.Point
}

type labelShape struct {
	lines    []labelLine
	color    colorful.Color
	rotation float64
}

// haloOffsets approximates label.rs's Stage::Casing stroke-text halo
// (a white outline under the coloured glyphs) by stamping the same
// text in white at small offsets around the anchor, since Canvas's
// DrawText primitive fills glyphs rather than stroking them.
var haloOffsets = []geo.Point{
	{X: -0.6, Y: 0}, {X: 0.6, Y: 0}, {X: 0, Y: -0.6}, {X: 0, Y: 0.6},
}

func (s *labelShape) Render(stage canvas.Stage, st style.Style, cv canvas.Canvas) {
	switch stage {
	case canvas.Casing:
		for _, line := range s.lines {
			for _, off := range haloOffsets {
				p := geo.Point{X: line.pos.X + off.X, Y: line.pos.Y + off.Y}
				cv.DrawText(p, line.text, line.size, whiteColor)
			}
		}
	case canvas.Base:
		for _, line := range s.lines {
			cv.DrawText(line.pos, line.text, line.size, s.color)
		}
	}
}

func (s *labelShape) Stages() canvas.StageSet {
	return canvas.Of(canvas.Casing, canvas.Base)
}
