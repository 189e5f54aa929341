package style

import "github.com/lucasb-eyer/go-colorful"

// PaletteKind selects between the two colour mappings a layer can use
// (spec §3.4, §4.5).
type PaletteKind int

const (
	// PaletteElectric colours tracks by catenary/third-rail kind.
	PaletteElectric PaletteKind = iota
	// PalettePax colours tracks by passenger-service band.
	PalettePax
)

// Palette resolves a track's colour key to a drawing colour, honouring
// status overrides (closed/removed/gone/planned desaturate towards
// grey) ahead of the electrification- or passenger-oriented base hue.
//
// ColorKey carries only the primitives a palette needs, rather than the
// full feature.Railway classification, so that internal/feature (which
// builds the key from a Railway and needs Style for Shape(style)) can
// import this package without a cycle back into internal/feature.
type Palette struct {
	kind PaletteKind
}

// NewPalette returns the palette of the given kind.
func NewPalette(kind PaletteKind) Palette {
	return Palette{kind: kind}
}

// ColorKey is the subset of a Railway classification that colour
// selection depends on (built by internal/feature from its own
// Railway type).
type ColorKey struct {
	// Greyed is true for closed/suspended/planned/explanned statuses.
	Greyed bool
	// VeryGreyed is true for removed/gone statuses, drawn fainter still.
	VeryGreyed bool

	HasCat      bool
	CatDC       bool
	CatHighVolt bool
	NoCat       bool

	HasRail      bool
	RailHighVolt bool

	PaxFull    bool
	PaxPartial bool
}

var (
	colorACHigh     = colorful.Color{R: 0.75, G: 0.1, B: 0.1}
	colorACLow      = colorful.Color{R: 0.85, G: 0.35, B: 0.2}
	colorDCHigh     = colorful.Color{R: 0.1, G: 0.3, B: 0.75}
	colorDCLow      = colorful.Color{R: 0.3, G: 0.55, B: 0.85}
	colorRailHigh   = colorful.Color{R: 0.1, G: 0.6, B: 0.3}
	colorRailLow    = colorful.Color{R: 0.4, G: 0.75, B: 0.45}
	colorNoCat      = colorful.Color{R: 0.15, G: 0.15, B: 0.15}
	colorUnknown    = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	colorPaxFull    = colorful.Color{R: 0.1, G: 0.1, B: 0.7}
	colorPaxPart    = colorful.Color{R: 0.4, G: 0.4, B: 0.85}
	colorPaxNone    = colorful.Color{R: 0.3, G: 0.3, B: 0.3}
	colorGreyed     = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	colorVeryGreyed = colorful.Color{R: 0.8, G: 0.8, B: 0.8}
)

// Color resolves key to this palette's drawing colour.
func (p Palette) Color(key ColorKey) colorful.Color {
	switch {
	case key.VeryGreyed:
		return colorVeryGreyed
	case key.Greyed:
		return colorGreyed
	}
	if p.kind == PalettePax {
		return paxColor(key)
	}
	return electricColor(key)
}

func electricColor(key ColorKey) colorful.Color {
	switch {
	case key.HasCat && key.CatDC && key.CatHighVolt:
		return colorDCHigh
	case key.HasCat && key.CatDC:
		return colorDCLow
	case key.HasCat && key.CatHighVolt:
		return colorACHigh
	case key.HasCat:
		return colorACLow
	case key.HasRail && key.RailHighVolt:
		return colorRailHigh
	case key.HasRail:
		return colorRailLow
	case key.NoCat:
		return colorNoCat
	default:
		return colorUnknown
	}
}

func paxColor(key ColorKey) colorful.Color {
	switch {
	case key.PaxFull:
		return colorPaxFull
	case key.PaxPartial:
		return colorPaxPart
	default:
		return colorPaxNone
	}
}
