// Package svgcanvas implements internal/canvas.Canvas on top of
// github.com/ajstarks/svgo, producing the SVG tile format (spec §6.4).
package svgcanvas

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
)

// Canvas renders onto an SVG document of size bp x bp points.
type Canvas struct {
	svg  *svgo.SVG
	size float64
}

// New starts an SVG document of the given size (in pt, per spec §6.4's
// 192pt notional tile canvas) written to w, and returns a Canvas ready
// for sketches. Callers must call Close to emit the closing tag.
func New(w io.Writer, size float64) *Canvas {
	s := svgo.New(w)
	s.Start(int(size), int(size))
	return &Canvas{svg: s, size: size}
}

// Close finishes the SVG document.
func (c *Canvas) Close() { c.svg.End() }

// Size implements canvas.Canvas.
func (c *Canvas) Size() float64 { return c.size }

// Sketch implements canvas.Canvas.
func (c *Canvas) Sketch() canvas.Sketch {
	return &sketch{canvas: c}
}

// DrawText implements canvas.Canvas using svgo's native text element.
func (c *Canvas) DrawText(p geo.Point, text string, size float64, col colorful.Color) {
	style := fmt.Sprintf("font-size:%spx;fill:%s", fmtNum(size), col.Hex())
	c.svg.Text(int(p.X), int(p.Y), text, style)
}

type sketch struct {
	canvas *Canvas
	d      strings.Builder
	color  colorful.Color
	alpha  float64
	width  float64
	dash   []float64
	offset float64
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func (s *sketch) SetColor(c colorful.Color, alpha float64) canvas.Sketch {
	s.color, s.alpha = c, alpha
	return s
}

func (s *sketch) SetLineWidth(w float64) canvas.Sketch {
	s.width = w
	return s
}

func (s *sketch) SetDash(pattern []float64, offset float64) canvas.Sketch {
	s.dash, s.offset = pattern, offset
	return s
}

func (s *sketch) MoveTo(p geo.Point) canvas.Sketch {
	fmt.Fprintf(&s.d, "M%s,%s ", fmtNum(p.X), fmtNum(p.Y))
	return s
}

func (s *sketch) LineTo(p geo.Point) canvas.Sketch {
	fmt.Fprintf(&s.d, "L%s,%s ", fmtNum(p.X), fmtNum(p.Y))
	return s
}

func (s *sketch) CubicTo(c1, c2, p geo.Point) canvas.Sketch {
	fmt.Fprintf(&s.d, "C%s,%s %s,%s %s,%s ",
		fmtNum(c1.X), fmtNum(c1.Y), fmtNum(c2.X), fmtNum(c2.Y), fmtNum(p.X), fmtNum(p.Y))
	return s
}

func (s *sketch) ClosePath() canvas.Sketch {
	s.d.WriteString("Z ")
	return s
}

func (s *sketch) hexColor() string {
	return s.color.Hex()
}

func (s *sketch) dashArray() string {
	if len(s.dash) == 0 {
		return ""
	}
	parts := make([]string, len(s.dash))
	for i, d := range s.dash {
		parts[i] = fmtNum(d)
	}
	return fmt.Sprintf("stroke-dasharray:%s;stroke-dashoffset:%s;", strings.Join(parts, ","), fmtNum(s.offset))
}

func (s *sketch) Stroke() {
	style := fmt.Sprintf(
		"fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%s;%s",
		s.hexColor(), fmtNum(s.alpha), fmtNum(s.width), s.dashArray(),
	)
	s.canvas.svg.Path(s.d.String(), style)
}

func (s *sketch) Fill() {
	style := fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:none", s.hexColor(), fmtNum(s.alpha))
	s.canvas.svg.Path(s.d.String(), style)
}
