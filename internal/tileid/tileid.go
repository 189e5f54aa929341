// Package tileid implements the tile identifier and its slippy-map
// coordinate conventions (spec §3.4, §6.3-6.4), grounded on
// original_source/src/tile.rs's TileId.
package tileid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/railwayhistory/railmap/internal/geo"
)

// MaxZoom is the highest zoom level the server supports. This must stay
// below 32 or the coordinate bit-math below breaks.
const MaxZoom = 20

// Format is the tile's output encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

// ParseFormat recognises the two closed-set format extensions.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return 0, fmt.Errorf("tileid: unknown format %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatSVG:
		return "svg"
	default:
		return "?"
	}
}

// ContentType returns the HTTP Content-Type for the format (spec §6.3).
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// Size is the tile's canvas extent in bp: PNG assumes 512px at 192dpi,
// SVG a 192pt notional canvas (spec §6.4) -- both work out to 192 bp.
func (f Format) Size() float64 {
	switch f {
	case FormatPNG:
		return 192
	case FormatSVG:
		return 192
	default:
		return 192
	}
}

// PixelSize is the PNG format's raster dimension in pixels; SVG has no
// fixed raster size.
const PixelSize = 512

// ID identifies one tile: zoom level, tile coordinates, a rendering
// layer name (the feature-store subset to draw, §4.4), and an output
// format.
type ID struct {
	Zoom   uint8
	X, Y   uint32
	Layer  string
	Format Format
}

// Error is returned for any malformed tile path -- callers map it
// directly to an HTTP 404 (spec §6.3, §7).
type Error struct {
	reason string
}

func (e *Error) Error() string { return "tileid: " + e.reason }

func errf(format string, args ...any) error {
	return &Error{reason: fmt.Sprintf(format, args...)}
}

// coordEnd returns the exclusive upper bound for a tile coordinate at
// the given zoom: 2^zoom.
func coordEnd(zoom uint8) uint32 {
	return uint32(1) << uint(zoom)
}

// ParsePath parses a URL path of the form "/{zoom}/{x}/{y}.{fmt}" into
// an ID with an empty Layer (the server assigns the layer separately
// based on routing, §6.3). Out-of-range zoom/x/y, non-numeric
// components, malformed extensions, and trailing path segments are all
// parse errors.
func ParsePath(path string) (ID, error) {
	parts := strings.Split(path, "/")
	if len(parts) != 4 || parts[0] != "" {
		return ID{}, errf("malformed path %q", path)
	}

	zoom64, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return ID{}, errf("bad zoom %q: %v", parts[1], err)
	}
	zoom := uint8(zoom64)
	if zoom > MaxZoom {
		return ID{}, errf("zoom %d exceeds max %d", zoom, MaxZoom)
	}

	x64, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return ID{}, errf("bad x %q: %v", parts[2], err)
	}
	x := uint32(x64)
	if x >= coordEnd(zoom) {
		return ID{}, errf("x %d out of range for zoom %d", x, zoom)
	}

	nameFmt := strings.SplitN(parts[3], ".", 2)
	if len(nameFmt) != 2 {
		return ID{}, errf("missing format extension in %q", parts[3])
	}
	y64, err := strconv.ParseUint(nameFmt[0], 10, 32)
	if err != nil {
		return ID{}, errf("bad y %q: %v", nameFmt[0], err)
	}
	y := uint32(y64)
	if y >= coordEnd(zoom) {
		return ID{}, errf("y %d out of range for zoom %d", y, zoom)
	}

	format, err := ParseFormat(nameFmt[1])
	if err != nil {
		return ID{}, err
	}

	return ID{Zoom: zoom, X: x, Y: y, Format: format}, nil
}

// String renders the ID back to its path form, e.g. "3/4/2.png".
func (id ID) String() string {
	return fmt.Sprintf("%d/%d/%d.%s", id.Zoom, id.X, id.Y, id.Format)
}

// N returns the number of tiles along one axis at this zoom, 2^zoom.
func (id ID) N() float64 { return float64(coordEnd(id.Zoom)) }

func lonAt(n, x float64) float64 { return x/n*360 - 180 }

// LonRange returns the tile's west/east longitude bounds in degrees.
func (id ID) LonRange() [2]float64 {
	n := id.N()
	return [2]float64{lonAt(n, float64(id.X)), lonAt(n, float64(id.X)+1)}
}

func latAt(n, y float64) float64 {
	return math.Atan(math.Sinh(math.Pi*(1-2*y/n))) * 180 / math.Pi
}

// LatRange returns the tile's north/south latitude bounds in degrees.
func (id ID) LatRange() [2]float64 {
	n := id.N()
	return [2]float64{latAt(n, float64(id.Y)), latAt(n, float64(id.Y)+1)}
}

// NWCorner returns the normalised Mercator point of the tile's
// north-west corner.
func (id ID) NWCorner() geo.Point {
	n := id.N()
	return geo.Point{X: float64(id.X) / n, Y: float64(id.Y) / n}
}

// Bounds returns the tile's bounding rectangle in normalised Mercator
// storage space.
func (id ID) Bounds() geo.Rect {
	n := id.N()
	return geo.Rect{
		MinX: float64(id.X) / n, MinY: float64(id.Y) / n,
		MaxX: float64(id.X+1) / n, MaxY: float64(id.Y+1) / n,
	}
}

// Project maps a normalised Mercator point to this tile's local canvas
// coordinates, scaling by the tile's pixel size (grounded on tile.rs's
// proj(), generalised from its hard-coded 512 to the format's size).
func (id ID) Project(p geo.Point, canvasSize float64) (x, y float64) {
	n := id.N()
	x = (p.X*n - float64(id.X)) * canvasSize
	y = (p.Y*n - float64(id.Y)) * canvasSize
	return
}
