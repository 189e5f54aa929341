// Package pngcanvas implements internal/canvas.Canvas as a software
// rasterizer over golang.org/x/image/vector, producing the PNG tile
// format (spec §6.4: 512px raster at 192dpi).
//
// The corpus pulls in no dedicated 2D path-stroking library, so strokes
// are built here by flattening each Bézier segment and emitting an
// offset quad per flattened step into the vector rasterizer's
// accumulated path -- fills go through the rasterizer directly, which
// natively accepts cubic segments.
package pngcanvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
)

// flattenSteps is how many line segments approximate one cubic Bézier
// piece when building a stroke's outline quads.
const flattenSteps = 12

// Canvas rasterizes onto an in-memory RGBA image of size*size pixels.
type Canvas struct {
	img  *image.RGBA
	size float64
}

// New allocates a PNG canvas of the given size in pixels (spec §6.4's
// 512px tile raster), with an opaque white background.
func New(size int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return &Canvas{img: img, size: float64(size)}
}

// Image returns the rendered image; callers encode it with image/png.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Size implements canvas.Canvas.
func (c *Canvas) Size() float64 { return c.size }

// Sketch implements canvas.Canvas.
func (c *Canvas) Sketch() canvas.Sketch {
	return &sketch{canvas: c}
}

// DrawText implements canvas.Canvas using golang.org/x/image/font's
// fixed-width bitmap face. The corpus carries no scalable font library,
// so every size renders at the same 7x13 bitmap glyph size -- labels
// are positioned correctly but not proportioned to the requested size
// the way the SVG backend's native text element is.
func (c *Canvas) DrawText(p geo.Point, text string, size float64, col colorful.Color) {
	r, g, b := col.Clamped().RGB255()
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(p.X), int(p.Y)),
	}
	d.DrawString(text)
}

type op struct {
	kind   byte // 'M', 'L', 'C', 'Z'
	p      geo.Point
	c1, c2 geo.Point
}

type sketch struct {
	canvas *Canvas
	ops    []op
	cur    geo.Point
	color  colorful.Color
	alpha  float64
	width  float64
	dash   []float64
	offset float64
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
	s.ops = append(s.ops, op{kind: 'M', p: p})
	s.cur = p
	return s
}

func (s *sketch) LineTo(p geo.Point) canvas.Sketch {
	s.ops = append(s.ops, op{kind: 'L', p: p})
	s.cur = p
	return s
}

func (s *sketch) CubicTo(c1, c2, p geo.Point) canvas.Sketch {
	s.ops = append(s.ops, op{kind: 'C', p: p, c1: c1, c2: c2})
	s.cur = p
	return s
}

func (s *sketch) ClosePath() canvas.Sketch {
	s.ops = append(s.ops, op{kind: 'Z'})
	return s
}

func cubicPoint(p0, p1, p2, p3 geo.Point, t float64) geo.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return geo.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// flatten reduces the recorded ops into a polyline (one slice of points
// per contiguous subpath).
func (s *sketch) flatten() [][]geo.Point {
	var subpaths [][]geo.Point
	var cur []geo.Point
	var last geo.Point
	for _, o := range s.ops {
		switch o.kind {
		case 'M':
			if len(cur) > 1 {
				subpaths = append(subpaths, cur)
			}
			cur = []geo.Point{o.p}
			last = o.p
		case 'L':
			cur = append(cur, o.p)
			last = o.p
		case 'C':
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / float64(flattenSteps)
				cur = append(cur, cubicPoint(last, o.c1, o.c2, o.p, t))
			}
			last = o.p
		case 'Z':
			if len(cur) > 0 {
				cur = append(cur, cur[0])
			}
		}
	}
	if len(cur) > 1 {
		subpaths = append(subpaths, cur)
	}
	return subpaths
}

func (s *sketch) nrgba() color.NRGBA {
	r, g, b := s.color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(s.alpha) * 255)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Fill rasterizes the accumulated path with non-zero winding and
// composites it in the sketch's colour.
func (s *sketch) Fill() {
	size := s.canvas.Size()
	z := vector.NewRasterizer(int(size), int(size))
	for _, o := range s.ops {
		switch o.kind {
		case 'M':
			z.MoveTo(float32(o.p.X), float32(o.p.Y))
		case 'L':
			z.LineTo(float32(o.p.X), float32(o.p.Y))
		case 'C':
			z.CubeTo(float32(o.c1.X), float32(o.c1.Y), float32(o.c2.X), float32(o.c2.Y), float32(o.p.X), float32(o.p.Y))
		case 'Z':
			z.ClosePath()
		}
	}
	z.Draw(s.canvas.img, s.canvas.img.Bounds(), image.NewUniform(s.nrgba()), image.Point{})
}

// Stroke flattens every subpath and rasterizes a quad per flattened
// step, width wide, honouring the dash pattern if set.
func (s *sketch) Stroke() {
	size := s.canvas.Size()
	z := vector.NewRasterizer(int(size), int(size))
	half := s.width / 2
	if half <= 0 {
		half = 0.5
	}

	for _, poly := range s.flatten() {
		dashed := dashPoly(poly, s.dash, s.offset)
		for _, seg := range dashed {
			emitQuad(z, seg[0], seg[1], half)
		}
	}
	z.Draw(s.canvas.img, s.canvas.img.Bounds(), image.NewUniform(s.nrgba()), image.Point{})
}

// emitQuad adds the filled rectangle covering the thick line from a to
// b with the given half-width as one subpath of z's accumulated path.
func emitQuad(z *vector.Rasterizer, a, b geo.Point, half float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*half, dx/length*half
	p0 := geo.Point{X: a.X + nx, Y: a.Y + ny}
	p1 := geo.Point{X: b.X + nx, Y: b.Y + ny}
	p2 := geo.Point{X: b.X - nx, Y: b.Y - ny}
	p3 := geo.Point{X: a.X - nx, Y: a.Y - ny}
	z.MoveTo(float32(p0.X), float32(p0.Y))
	z.LineTo(float32(p1.X), float32(p1.Y))
	z.LineTo(float32(p2.X), float32(p2.Y))
	z.LineTo(float32(p3.X), float32(p3.Y))
	z.ClosePath()
}

// dashPoly splits a flattened polyline into the "on" [start,end] pairs
// of a dash pattern, or returns the whole polyline undashed if pattern
// is empty.
func dashPoly(poly []geo.Point, pattern []float64, offset float64) [][2]geo.Point {
	if len(pattern) == 0 {
		var out [][2]geo.Point
		for i := 0; i+1 < len(poly); i++ {
			out = append(out, [2]geo.Point{poly[i], poly[i+1]})
		}
		return out
	}

	total := 0.0
	for _, d := range pattern {
		total += d
	}
	if total <= 0 {
		return nil
	}

	pos := math.Mod(offset, total)
	if pos < 0 {
		pos += total
	}
	idx := 0
	for pos >= pattern[idx] {
		pos -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	on := idx%2 == 0

	var out [][2]geo.Point
	for i := 0; i+1 < len(poly); i++ {
		a, b := poly[i], poly[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		walked := 0.0
		for walked < segLen {
			remain := pattern[idx] - pos
			step := math.Min(remain, segLen-walked)
			if step <= 0 {
				step = segLen - walked
			}
			t0 := walked / segLen
			t1 := (walked + step) / segLen
			if on {
				out = append(out, [2]geo.Point{a.Lerp(b, t0), a.Lerp(b, t1)})
			}
			walked += step
			pos += step
			if pos >= pattern[idx]-1e-9 {
				pos = 0
				idx = (idx + 1) % len(pattern)
				on = !on
			}
		}
	}
	return out
}
