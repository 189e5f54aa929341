// Package geo provides the Web Mercator projection used to store every
// coordinate in the map: a normalised [0,1]x[0,1] square where tile
// scaling is a single multiplication instead of a per-feature
// lat/lon recomputation.
package geo

import "math"

// LatLon is a geographic point in degrees.
type LatLon struct {
	Lon float64
	Lat float64
}

// Point is a location in the normalised Web Mercator square, x and y both
// in [0,1]. (0,0) is the north-west corner of the world ("null island"
// wrapped around the antimeridian at x=0/1).
type Point struct {
	X float64
	Y float64
}

// Project converts a geographic point into the normalised Mercator square.
func Project(ll LatLon) Point {
	return Point{
		X: (ll.Lon + 180) / 360,
		Y: (1 - math.Asinh(math.Tan(ll.Lat*math.Pi/180))/math.Pi) / 2,
	}
}

// Unproject is the inverse of Project.
func Unproject(p Point) LatLon {
	return LatLon{
		Lon: p.X*360 - 180,
		Lat: math.Atan(math.Sinh(math.Pi*(1-2*p.Y))) * 180 / math.Pi,
	}
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{Dx: p.X - q.X, Dy: p.Y - q.Y}
}

// Lerp linearly interpolates between p and q at parameter t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Dist returns the Euclidean distance between p and q in storage units.
func (p Point) Dist(q Point) float64 {
	d := p.Sub(q)
	return d.Len()
}

// Vector is a displacement in storage space.
type Vector struct {
	Dx float64
	Dy float64
}

// Len returns the Euclidean length of v.
func (v Vector) Len() float64 {
	return math.Hypot(v.Dx, v.Dy)
}

// Angle returns the direction of v in radians, matching math.Atan2(dy, dx).
func (v Vector) Angle() float64 {
	return math.Atan2(v.Dy, v.Dx)
}

// Scaled returns v scaled by s.
func (v Vector) Scaled(s float64) Vector {
	return Vector{Dx: v.Dx * s, Dy: v.Dy * s}
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector) Normalized() Vector {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scaled(1 / l)
}

// Perp returns v rotated 90 degrees counter-clockwise, i.e. the direction
// to the left of v when walking from its tail to its head.
func (v Vector) Perp() Vector {
	return Vector{Dx: -v.Dy, Dy: v.Dx}
}

// Rect is an axis-aligned bounding rectangle in storage space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyRect returns a rectangle that contains no points; the first Union
// with a real point establishes its extent.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// RectFromPoint returns the degenerate rectangle containing only p.
func RectFromPoint(p Point) Rect {
	return Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, s.MinX),
		MinY: math.Min(r.MinY, s.MinY),
		MaxX: math.Max(r.MaxX, s.MaxX),
		MaxY: math.Max(r.MaxY, s.MaxY),
	}
}

// UnionPoint returns r expanded, if necessary, to contain p.
func (r Rect) UnionPoint(p Point) Rect {
	return r.Union(RectFromPoint(p))
}

// Expand returns r grown by dx/dy on every side.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{
		MinX: r.MinX - dx, MinY: r.MinY - dy,
		MaxX: r.MaxX + dx, MaxY: r.MaxY + dy,
	}
}

// Intersects reports whether r and s share any point.
func (r Rect) Intersects(s Rect) bool {
	return r.MinX <= s.MaxX && r.MaxX >= s.MinX &&
		r.MinY <= s.MaxY && r.MaxY >= s.MinY
}

// Contains reports whether p lies within r (inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }
