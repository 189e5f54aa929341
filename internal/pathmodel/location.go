package pathmodel

import (
	"fmt"

	"github.com/railwayhistory/railmap/internal/geo"
)

// Location names a point along a BasePath, either by a named node and an
// optional signed offset distance from it, or by an absolute along-path
// distance from the path's start (spec §3.1).
type Location struct {
	NodeIndex int     // index of the reference node
	Distance  float64 // signed arc-length distance from that node, in storage units
}

// NodeLocation returns the location of node i exactly, with no offset.
func NodeLocation(i int) Location {
	return Location{NodeIndex: i, Distance: 0}
}

// NamedLocation resolves a named node on path p to a Location, failing if
// no node with that name exists.
func NamedLocation(p *BasePath, name string, offset float64) (Location, error) {
	i, ok := p.NodeIndex(name)
	if !ok {
		return Location{}, fmt.Errorf("path %q: no node named %q", p.Name(), name)
	}
	return Location{NodeIndex: i, Distance: offset}, nil
}

// SegTime is a location resolved against a path's segment sequence: the
// index of the segment and the Bézier parameter t within it.
type SegTime struct {
	Segment int
	T       float64
}

// Resolve converts a Location into a SegTime against path p, walking from
// the reference node along the path's arc length and clamping to the
// path's valid range (spec §3.1 invariant: out-of-range locations clamp
// rather than error).
func (l Location) Resolve(p *BasePath) SegTime {
	target := p.Node(l.NodeIndex).Distance() + l.Distance
	total := p.TotalDistance()
	if target <= 0 {
		return SegTime{Segment: 0, T: 0}
	}
	if target >= total {
		return SegTime{Segment: p.SegmentCount() - 1, T: 1}
	}

	// Binary search the node distances for the segment containing target.
	lo, hi := 0, p.NodeCount()-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if p.Node(mid).Distance() <= target {
			lo = mid
		} else {
			hi = mid
		}
	}
	seg := p.Segment(lo)
	segStart := p.Node(lo).Distance()
	segEnd := p.Node(lo + 1).Distance()
	segLen := segEnd - segStart
	if segLen <= 0 {
		return SegTime{Segment: lo, T: 0}
	}
	within := target - segStart
	t := seg.ArcTime(within, 1e-9)
	return SegTime{Segment: lo, T: t}
}

// Point resolves l to its geographic point on path p.
func (l Location) Point(p *BasePath) geo.Point {
	st := l.Resolve(p)
	return p.Segment(st.Segment).Point(st.T)
}

// Direction resolves l to the path's direction of travel at that point,
// in radians.
func (l Location) Direction(p *BasePath) float64 {
	st := l.Resolve(p)
	return p.Segment(st.Segment).Deriv(st.T).Angle()
}
