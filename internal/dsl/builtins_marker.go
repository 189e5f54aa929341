package dsl

import (
	"fmt"
	"math"
)

// markerNames is the single marker table the `marker` procedure consults
// (spec §4.4, §9), grounded on original_source/src/library/feature/
// markers.rs's MARKERS static array: a flat list of known base-marker
// symbols, checked against a symbol/label statement's remaining symbol
// set in order, first match wins. Old/legacy marker names that the
// original's history renamed are kept as aliases resolved to the same
// canonical id below rather than as a second table -- the alias list is
// the full extent of the legacy fallback; there is no separate
// rendering path for a legacy name once resolved.
var markerNames = []string{
	"de.abzw",
	"de.abzw.casing",
	"de.anst",
	"de.aw",
	"de.awanst",
	"de.bbf",
	"de.bf",
	"de.bf.casing",
	"de.bft",
	"de.bft.abzw",
	"de.bft.casing",
	"de.bftk",
	"de.bftp",
	"de.bk",
	"de.bk.casing",
	"de.bw",
	"de.dirgr",
	"de.dkst",
	"de.est",
	"de.gbf",
	"de.hp",
	"de.hp.casing",
	"de.hpext",
	"de.hpext.casing",
	"de.hst",
	"de.inbf",
	"de.kabzw",
	"de.kbf",
	"de.khp",
	"de.kzst",
	"de.ldst",
	"de.lgr",
	"de.stw",
	"de.stw.casing",
	"de.uest",
	"de.uest.casing",
	"de.zst",
	"dot.casing",
	"dot.filled",
	"dot.filled.casing",
	"dot.open",
	"dot.open.casing",
	"ref",
	"refdt",
	"sdot",
	"sdot.casing",
	"sdot.filled",
	"statcase",
	"statdot",
	"statdt",
	"tunnel.dt",
	"tunnel.l",
	"tunnel.r",
}

// markerAliases maps old/legacy marker symbol names still found in
// existing rule files (short forms predating the "de." namespacing) to
// the canonical markerNames id they should resolve to.
// resolveMarkerSymbol checks it before falling through to markerNames,
// so adding an alias never requires touching the canonical table.
var markerAliases = map[string]string{
	"bf":   "de.bf",
	"hp":   "de.hp",
	"abzw": "de.abzw",
}

// resolveMarkerSymbol takes the first marker name (alias or canonical)
// present in args' symbol set and returns its canonical id, matching
// marker_from_symbols's first-match-wins scan.
func resolveMarkerSymbol(args *callArgs) (string, error) {
	for alias, canonical := range markerAliases {
		if args.Symbols.Take(alias) {
			return canonical, nil
		}
	}
	for _, name := range markerNames {
		if args.Symbols.Take(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("missing marker symbol")
}

// markerOrientation returns the extra rotation (radians) a marker's
// `:top`/`:left`/`:bottom`/`:right` orientation symbol selects, matching
// rotation_from_symbols's ordering and default of :right (no rotation).
func markerOrientation(args *callArgs) float64 {
	switch {
	case args.Symbols.Take("top"):
		return 1.5 * math.Pi
	case args.Symbols.Take("left"):
		return math.Pi
	case args.Symbols.Take("bottom"):
		return 0.5 * math.Pi
	default:
		args.Symbols.Take("right")
		return 0
	}
}
