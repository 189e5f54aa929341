package style

import (
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/tileid"
)

// unitsLen mirrors the six base unit tables referenced by spec §3.4 /
// §4.3 (bp, pt, mm, m, dt, and the rendering canvas's own bp unit).
const unitsLen = 6

const (
	unitBp = iota
	unitPt
	unitMm
	unitM
	unitDt
	unitCanvas
)

// Units resolves the DSL's unit-number literals (spec §4.1's
// unit-number production, §4.3's Distance rule) against the style's
// canvas scale and detail-dependent dt.
type Units [unitsLen]float64

func newUnits(canvasBp float64, dt float64) Units {
	var u Units
	u[unitBp] = 1
	u[unitPt] = 1
	u[unitMm] = 72.0 / 25.4
	u[unitM] = 1000 * u[unitMm]
	u[unitDt] = dt
	u[unitCanvas] = canvasBp
	return u
}

// Resolve converts a magnitude expressed in the named unit into bp,
// scaled by the style's magnification (spec §4.5's
// world_part*equator_scale + map_part*units[index] split collapses, for
// the map-local case, to value*units[index]*mag).
func (u Units) Resolve(value float64, unit string, mag float64) float64 {
	idx, ok := unitIndex(unit)
	if !ok {
		return value * mag
	}
	return value * u[idx] * mag
}

func unitIndex(unit string) (int, bool) {
	switch unit {
	case "bp":
		return unitBp, true
	case "pt":
		return unitPt, true
	case "mm":
		return unitMm, true
	case "m":
		return unitM, true
	case "dt":
		return unitDt, true
	case "canvas":
		return unitCanvas, true
	default:
		return 0, false
	}
}

// EquatorScale is the bp-per-storage-unit scale at the equator for a
// tile of n tiles per axis and the given canvas size in bp, used to
// resolve the world part of a Distance (spec §4.5).
func EquatorScale(canvasBp, n float64) float64 {
	return canvasBp * n
}

// Style bundles everything the renderer needs to turn storage-space
// features into canvas-space shapes for one tile request: the detail
// level and magnification selected by zoom, the scaled measures table,
// the storage-to-canvas transform, the two colour palettes, and the
// unit table for resolving DSL distances (spec §4.5).
type Style struct {
	Detail    int
	Mag       float64
	Measures  Measures
	Transform Transform
	Units     Units
	Electric  Palette
	Pax       Palette
}

// BoundsCorrectionFactor mirrors BOUNDS_CORRECTION from
// maps/overnight/style.rs; multiplied by 1.5*detail to expand a tile's
// query bbox so off-tile strokes and labels still get drawn into it.
const BoundsCorrectionFactor = 0.3

// BoundsCorrection returns the dimensionless factor a tile's own
// storage-space width is multiplied by to get the margin it should be
// expanded by before querying the feature store (spec §4.6 step 1;
// railway/map.rs's TileId::feature_bbox scales this factor by
// size/(size*n), i.e. by the tile's own storage-space width, rather
// than treating it as an absolute margin).
func (s Style) BoundsCorrection() float64 {
	return BoundsCorrectionFactor * 1.5 * float64(s.Detail)
}

// New builds the Style for rendering tile id at the given canvas size
// in bp (tileid.Format.Size()), mirroring Style::new(id) in
// maps/overnight/style.rs: the zoom selects (detail, mag) from the
// table, the measures scale by canvasBp*mag, and the transform is
// anchored at the tile's north-west corner with scale canvasBp*n.
func New(id tileid.ID, canvasBp float64) Style {
	entry := zoomAt(int(id.Zoom))
	n := id.N()
	scale := EquatorScale(canvasBp, n)
	measures := BaseMeasures(entry.Detail).Scaled(canvasBp * entry.Mag)
	return Style{
		Detail:    entry.Detail,
		Mag:       entry.Mag,
		Measures:  measures,
		Transform: NewTransform(canvasBp, id.NWCorner(), scale),
		Units:     newUnits(canvasBp, measures.Dt()),
		Electric:  NewPalette(PaletteElectric),
		Pax:       NewPalette(PalettePax),
	}
}

// Project is a convenience wrapper applying the style's transform to a
// storage-space point.
func (s Style) Project(p geo.Point) geo.Point {
	return s.Transform.Apply(p)
}
