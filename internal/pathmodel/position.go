package pathmodel

import (
	"math"

	"github.com/railwayhistory/railmap/internal/geo"
)

// Position names a single point derived from a path location, shifted
// sideways from the path and then by an absolute (dx,dy) storage-space
// offset, with an associated rotation -- the building block markers,
// labels and edges are placed from (spec §3.1).
type Position struct {
	Path     *BasePath
	At       Location
	Sideways float64 // offset to the left of the path's direction, in storage units
	Dx, Dy   float64 // additional absolute offset in storage units, not rotated
	Rotation float64 // additional rotation applied to the path's direction, radians
}

// Resolve computes the position's storage-space point and direction.
func (p Position) Resolve() (geo.Point, float64) {
	pt := p.At.Point(p.Path)
	dir := p.At.Direction(p.Path)

	if p.Sideways != 0 {
		perp := dir + math.Pi/2
		pt = pt.Add(p.Sideways*math.Cos(perp), p.Sideways*math.Sin(perp))
	}
	if p.Dx != 0 || p.Dy != 0 {
		pt = pt.Add(p.Dx, p.Dy)
	}
	return pt, dir + p.Rotation
}

// Edge is a straight line segment directly between two Positions,
// independent of any base path (spec §3.1's Edge section kind).
type Edge struct {
	From, To Position
}

// Bounds returns the bounding box of the edge's two endpoints.
func (e Edge) Bounds() geo.Rect {
	from, _ := e.From.Resolve()
	to, _ := e.To.Resolve()
	r := geo.RectFromPoint(from)
	return r.UnionPoint(to)
}
