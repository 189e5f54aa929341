package curve

import (
	"math"

	"github.com/railwayhistory/railmap/internal/geo"
)

// InfiniteTension is the tension value the caller uses to request a
// straight join: per §4.2, infinite tension on both sides of a joint
// always yields a straight line, independent of the angle between the
// adjoining segments.
const InfiniteTension = math.MaxFloat64

// metafontC is the constant "c = (3-sqrt(5))/2" from the Metafont
// velocity formula, Knuth's "superness" parameter for the standard
// (non-"at least") join.
var metafontC = (3 - math.Sqrt(5)) / 2

// Connect produces the joining segment between the end of "before" and
// the start of "after" using the Metafont velocity formula (§4.2),
// given the departure tension at before's end (post) and the arrival
// tension at after's start (pre).
func Connect(before Segment, post, pre float64, after Segment) Segment {
	p0 := before.P3
	p3 := after.P0
	chord := p3.Sub(p0)

	if chord.Len() == 0 {
		return Segment{P0: p0, P1: p0, P2: p0, P3: p3}
	}

	if post >= InfiniteTension && pre >= InfiniteTension {
		return Line(p0, p3)
	}

	chordAngle := chord.Angle()
	exitDir := before.EndDirection()
	entryDir := after.StartDirection()

	theta := exitDir - chordAngle
	phi := entryDir - chordAngle

	sinT, cosT := math.Sin(theta), math.Cos(theta)
	sinP, cosP := math.Sin(phi), math.Cos(phi)

	alpha := math.Sqrt2 * (sinT - sinP/16) * (sinP - sinT/16) * (cosT - cosP)
	rho := (2 + alpha) / (1 + (1-metafontC)*cosT + metafontC*cosP)
	sigma := (2 - alpha) / (1 + (1-metafontC)*cosP + metafontC*cosT)

	chordLen := chord.Len()
	dir0 := geo.Vector{Dx: math.Cos(exitDir), Dy: math.Sin(exitDir)}
	dir3 := geo.Vector{Dx: math.Cos(entryDir), Dy: math.Sin(entryDir)}

	d1 := rho / (3 * post) * chordLen
	d2 := sigma / (3 * pre) * chordLen

	p1 := p0.Add(dir0.Dx*d1, dir0.Dy*d1)
	p2 := p3.Add(-dir3.Dx*d2, -dir3.Dy*d2)

	seg := Segment{P0: p0, P1: p1, P2: p2, P3: p3}
	return simplifyDegenerate(seg)
}

// simplifyDegenerate implements §4.2's "if a control point coincides
// with its endpoint, downgrade to a simpler formula (3 unique points) or
// a straight line (2 unique points)".
func simplifyDegenerate(s Segment) Segment {
	unique := map[geo.Point]struct{}{}
	for _, p := range []geo.Point{s.P0, s.P1, s.P2, s.P3} {
		unique[p] = struct{}{}
	}
	switch len(unique) {
	case 2:
		return Line(s.P0, s.P3)
	case 3:
		// Collapse the repeated control point onto the chord at its
		// matching endpoint so the curve degenerates to a quadratic
		// expressed in cubic form, rather than leaving an unreachable
		// control point that can create a cusp.
		if s.P1 == s.P0 {
			return Segment{P0: s.P0, P1: s.P0.Lerp(s.P2, 0.5), P2: s.P2, P3: s.P3}
		}
		if s.P2 == s.P3 {
			return Segment{P0: s.P0, P1: s.P1, P2: s.P1.Lerp(s.P3, 0.5), P3: s.P3}
		}
		return s
	default:
		return s
	}
}
