// Package curve implements the Bézier segment algebra the whole renderer
// sits on: connecting two segments with Metafont-style tension (§4.2),
// offsetting via the Tiller-Hanson approximation, subdivision,
// reversal, bounds and arc-length/arc-time conversion (§4.2, §8.5-8.7).
//
// Every Segment is a cubic Bézier. A straight line is represented as a
// cubic whose control points sit at one third and two thirds along the
// chord -- the standard reduction of a line to Bézier form -- so callers
// never need to special-case "is this a line" before calling Offset,
// Subdivide or ArcLength.
package curve

import (
	"math"

	"github.com/railwayhistory/railmap/internal/geo"
)

// Segment is one cubic Bézier piece: P0 and P3 are its endpoints, P1 and
// P2 its control points.
type Segment struct {
	P0, P1, P2, P3 geo.Point
}

// Line returns the Bézier reduction of the straight segment from a to b.
func Line(a, b geo.Point) Segment {
	return Segment{
		P0: a,
		P1: a.Lerp(b, 1.0/3.0),
		P2: a.Lerp(b, 2.0/3.0),
		P3: b,
	}
}

// Point evaluates the curve at parameter t in [0,1].
func (s Segment) Point(t float64) geo.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return geo.Point{
		X: a*s.P0.X + b*s.P1.X + c*s.P2.X + d*s.P3.X,
		Y: a*s.P0.Y + b*s.P1.Y + c*s.P2.Y + d*s.P3.Y,
	}
}

// Deriv evaluates the (unnormalised) velocity dB/dt at parameter t.
func (s Segment) Deriv(t float64) geo.Vector {
	mt := 1 - t
	a := 3 * mt * mt
	b := 6 * mt * t
	c := 3 * t * t
	return geo.Vector{
		Dx: a*(s.P1.X-s.P0.X) + b*(s.P2.X-s.P1.X) + c*(s.P3.X-s.P2.X),
		Dy: a*(s.P1.Y-s.P0.Y) + b*(s.P2.Y-s.P1.Y) + c*(s.P3.Y-s.P2.Y),
	}
}

// StartDirection returns the direction the curve departs P0 in, falling
// back to the chord direction if the first control point coincides with
// P0 (a degenerate/"simpler formula" case, §4.2).
func (s Segment) StartDirection() float64 {
	if s.P1 != s.P0 {
		return s.P0.Sub(s.P1).Scaled(-1).Angle()
	}
	return s.P3.Sub(s.P0).Angle()
}

// EndDirection returns the direction the curve arrives at P3 along,
// i.e. the direction of travel, not the reverse.
func (s Segment) EndDirection() float64 {
	if s.P2 != s.P3 {
		return s.P3.Sub(s.P2).Angle()
	}
	return s.P3.Sub(s.P0).Angle()
}

// Reverse swaps endpoints and control points, producing the segment
// traversed in the opposite direction.
func (s Segment) Reverse() Segment {
	return Segment{P0: s.P3, P1: s.P2, P2: s.P1, P3: s.P0}
}

// Bounds returns the tight axis-aligned bounding box of the curve,
// found by solving for the roots of each component's derivative.
func (s Segment) Bounds() geo.Rect {
	r := geo.RectFromPoint(s.P0)
	r = r.UnionPoint(s.P3)
	for _, t := range cubicExtrema(s.P0.X, s.P1.X, s.P2.X, s.P3.X) {
		r = r.UnionPoint(s.Point(t))
	}
	for _, t := range cubicExtrema(s.P0.Y, s.P1.Y, s.P2.Y, s.P3.Y) {
		r = r.UnionPoint(s.Point(t))
	}
	return r
}

// cubicExtrema returns the parameters t in (0,1) where the derivative of
// the scalar cubic Bézier through a,b,c,d vanishes.
func cubicExtrema(a, b, c, d float64) []float64 {
	// B'(t)/3 = (1-t)^2 (b-a) + 2(1-t)t (c-b) + t^2 (d-c)
	//         = A t^2 + B t + C, with:
	A := -a + 3*b - 3*c + d
	B := 2 * (a - 2*b + c)
	C := b - a

	var roots []float64
	const eps = 1e-12
	if math.Abs(A) < eps {
		if math.Abs(B) > eps {
			t := -C / B
			roots = append(roots, t)
		}
	} else {
		disc := B*B - 4*A*C
		if disc >= 0 {
			sq := math.Sqrt(disc)
			roots = append(roots, (-B+sq)/(2*A), (-B-sq)/(2*A))
		}
	}
	out := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

// Subdivide returns the Bézier reparametrisation of s restricted to the
// sub-interval [u,v], u and v in [0,1], u possibly greater than v for a
// reversed sub-range.
func (s Segment) Subdivide(u, v float64) Segment {
	_, tail := splitAt(s, u)
	head, _ := splitAt(tail, (v-u)/(1-u))
	if v < u {
		// Caller asked for a reversed range; deCasteljau above assumed
		// u<=v, so undo that assumption by reversing the result taken
		// from the [v,u] range.
		_, tail := splitAt(s, v)
		head, _ := splitAt(tail, (u-v)/(1-v))
		return head.Reverse()
	}
	return head
}

// splitAt runs de Casteljau's algorithm at parameter t, returning the
// two sub-curves [0,t] and [t,1].
func splitAt(s Segment, t float64) (before, after Segment) {
	p01 := s.P0.Lerp(s.P1, t)
	p12 := s.P1.Lerp(s.P2, t)
	p23 := s.P2.Lerp(s.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	p0123 := p012.Lerp(p123, t)

	before = Segment{P0: s.P0, P1: p01, P2: p012, P3: p0123}
	after = Segment{P0: p0123, P1: p123, P2: p23, P3: s.P3}
	return
}

// Offset returns the Tiller-Hanson approximate offset of s by distance d
// to the left of the direction of travel (matching pathmodel's sign
// convention: positive is left-of-path). This assumes no tight curves,
// as noted in §4.2 -- acceptable for railway paths: translate each
// control-polygon edge along its own normal, then recompute the interior
// control points as the intersections of the offset edges.
func (s Segment) Offset(d float64) Segment {
	if d == 0 {
		return s
	}

	edges := [3][2]geo.Point{{s.P0, s.P1}, {s.P1, s.P2}, {s.P2, s.P3}}
	var lines [3]line
	var normals [3]geo.Vector
	for i, e := range edges {
		dir := e[1].Sub(e[0])
		if dir.Len() == 0 {
			// Degenerate control-polygon edge: borrow the direction of
			// the nearest non-degenerate edge instead (§4.2 "downgrade
			// to simpler formula").
			dir = nearestEdgeDirection(edges, i)
		}
		normals[i] = dir.Normalized().Perp()
		lines[i] = line{p: e[0].Add(normals[i].Dx*d, normals[i].Dy*d), d: dir}
	}

	p0 := s.P0.Add(normals[0].Dx*d, normals[0].Dy*d)
	p3 := s.P3.Add(normals[2].Dx*d, normals[2].Dy*d)

	p1, ok1 := intersectLines(lines[0], lines[1])
	if !ok1 {
		// Parallel adjacent edges (e.g. a straight segment): the shared
		// normal is a pure translation, so the offset control point is
		// just the original translated by it.
		p1 = s.P1.Add(normals[0].Dx*d, normals[0].Dy*d)
	}
	p2, ok2 := intersectLines(lines[1], lines[2])
	if !ok2 {
		p2 = s.P2.Add(normals[2].Dx*d, normals[2].Dy*d)
	}

	return Segment{P0: p0, P1: p1, P2: p2, P3: p3}
}

// nearestEdgeDirection finds a non-degenerate edge direction to stand in
// for control-polygon edge i, which has coincident endpoints.
func nearestEdgeDirection(edges [3][2]geo.Point, i int) geo.Vector {
	for offset := 1; offset < 3; offset++ {
		for _, j := range []int{i - offset, i + offset} {
			if j < 0 || j > 2 {
				continue
			}
			dir := edges[j][1].Sub(edges[j][0])
			if dir.Len() > 0 {
				return dir
			}
		}
	}
	return geo.Vector{Dx: 1, Dy: 0}
}

type line struct {
	p geo.Point
	d geo.Vector
}

// intersectLines returns the intersection of two lines given in
// point+direction form, and false if they are parallel (a degenerate
// control polygon edge) -- the caller then translates the original
// control point by the adjacent edge's normal instead.
func intersectLines(l1, l2 line) (geo.Point, bool) {
	denom := l1.d.Dx*l2.d.Dy - l1.d.Dy*l2.d.Dx
	if math.Abs(denom) < 1e-12 {
		return geo.Point{}, false
	}
	dx := l2.p.X - l1.p.X
	dy := l2.p.Y - l1.p.Y
	t := (dx*l2.d.Dy - dy*l2.d.Dx) / denom
	return l1.p.Add(l1.d.Dx*t, l1.d.Dy*t), true
}
