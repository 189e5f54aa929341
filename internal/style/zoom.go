package style

import "github.com/railwayhistory/railmap/internal/geo"

// zoomEntry is one row of the 21-entry zoom table (spec §4.5):
// the detail level and magnification multiplier to use at that zoom.
//
// The concrete table in original_source/src/maps/overnight/style.rs
// (DETAILS[]/MAG[]) was not present in the retrieved source tree (it
// lives outside the files pulled into original_source/); this table was
// authored to satisfy the spec's stated shape and invariants instead:
// detail is non-decreasing and caps at 5, magnification grows with
// zoom so finer zooms get proportionally larger strokes and text.
type zoomEntry struct {
	Detail int
	Mag    float64
}

// zoomTable covers zoom 0 through MaxZoom (tileid.MaxZoom == 20), one
// entry per zoom level.
var zoomTable = [21]zoomEntry{
	{0, 0.6}, {0, 0.6}, {0, 0.7}, {0, 0.7}, {0, 0.8},
	{1, 0.8}, {1, 0.9}, {1, 0.9}, {2, 1.0}, {2, 1.0},
	{3, 1.0}, {3, 1.05}, {3, 1.1}, {4, 1.1}, {4, 1.15},
	{4, 1.2}, {5, 1.2}, {5, 1.25}, {5, 1.3}, {5, 1.35},
	{5, 1.4},
}

// zoomAt returns the (detail, mag) pair for zoom, clamped to the
// table's range.
func zoomAt(zoom int) zoomEntry {
	if zoom < 0 {
		zoom = 0
	}
	if zoom >= len(zoomTable) {
		zoom = len(zoomTable) - 1
	}
	return zoomTable[zoom]
}

// Transform maps normalised Mercator storage coordinates to a tile's
// local canvas coordinates: subtract the tile's north-west corner, then
// multiply by Scale (spec §4.5).
type Transform struct {
	CanvasBp float64
	Scale    float64
	NW       geo.Point
}

// NewTransform builds the transform for a tile of the given pixel/pt
// size at zoom level n tiles per axis, anchored at its NW corner.
func NewTransform(canvasBp float64, nw geo.Point, scale float64) Transform {
	return Transform{CanvasBp: canvasBp, Scale: scale, NW: nw}
}

// Apply maps a storage-space point to canvas coordinates.
func (t Transform) Apply(p geo.Point) geo.Point {
	return geo.Point{
		X: (p.X - t.NW.X) * t.Scale,
		Y: (p.Y - t.NW.Y) * t.Scale,
	}
}
