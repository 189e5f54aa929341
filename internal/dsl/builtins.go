package dsl

import (
	"fmt"

	"github.com/railwayhistory/railmap/internal/feature"
	"github.com/railwayhistory/railmap/internal/pathmodel"
)

// contourProc builds a feature from a resolved Trace and a contour
// statement's evaluated arguments.
type contourProc func(scope *Scope, args *callArgs, trace pathmodel.Trace) (feature.Feature, error)

// pointProc builds a feature from a resolved Position and a symbol/
// label statement's evaluated arguments.
type pointProc func(scope *Scope, args *callArgs, pos pathmodel.Position) (feature.Feature, error)

// contourProcedures are the six trace-building built-ins a `contour`
// statement's rule may call (spec §4.4's procedure list), each
// resolving the statement's symbols into a Railway classification
// before constructing its feature: via feature.FromSymbols, except
// border, which uses feature.FromSymbolsOnly and ignores the scope.
var contourProcedures = map[string]contourProc{
	"track": func(scope *Scope, args *callArgs, trace pathmodel.Trace) (feature.Feature, error) {
		class := feature.FromSymbols(args.Symbols, scope)
		return feature.Track{Class: class, Casing: args.Symbols.Take("casing"), Trace: trace}, nil
	},
	"casing": func(scope *Scope, args *callArgs, trace pathmodel.Trace) (feature.Feature, error) {
		class := feature.FromSymbols(args.Symbols, scope)
		return feature.Track{Class: class, Casing: true, Trace: trace}, nil
	},
	"area": func(scope *Scope, args *callArgs, trace pathmodel.Trace) (feature.Feature, error) {
		class := feature.FromSymbols(args.Symbols, scope)
		return feature.Area{Class: class, Trace: trace}, nil
	},
	"platform": func(scope *Scope, args *callArgs, trace pathmodel.Trace) (feature.Feature, error) {
		class := feature.FromSymbols(args.Symbols, scope)
		return feature.Platform{Class: class, Trace: trace}, nil
	},
	"border": func(scope *Scope, args *callArgs, trace pathmodel.Trace) (feature.Feature, error) {
		class := feature.FromSymbolsOnly(args.Symbols)
		return feature.Border{Class: class, Trace: trace}, nil
	},
	"guide": func(scope *Scope, args *callArgs, trace pathmodel.Trace) (feature.Feature, error) {
		class := feature.FromSymbols(args.Symbols, scope)
		return feature.Guide{Class: class, Casing: args.Symbols.Take("casing"), Trace: trace}, nil
	},
}

// dotSize and stationSize are the diameters, in canvas bp before
// magnification, that statdot/station discs are given; unlike
// Track/Guide widths they have no corresponding style.Measures entry in
// the retrieved corpus, so feature.Dot.Shape scales Size by st.Mag alone.
const (
	dotSize     = 0.8
	stationSize = 1.4
)

// pointProcedures are the eleven position-building built-ins a `symbol`
// statement's rule may call (spec §4.4's procedure list): three marker/
// dot kinds, plus eight label-family procedures that build a
// feature.Label directly from a positional text argument, as an
// alternative to the dedicated `label position rule;` grammar form
// (evalLabel) which instead takes a box-function Layout expression.
var pointProcedures = map[string]pointProc{
	"marker": func(scope *Scope, args *callArgs, pos pathmodel.Position) (feature.Feature, error) {
		rotation := markerOrientation(args)
		class := feature.FromSymbols(args.Symbols, scope)
		name, err := resolveMarkerSymbol(args)
		if err != nil {
			return nil, err
		}
		return feature.Marker{Position: pos, Rotation: rotation, Class: class, Symbol: name}, nil
	},
	"statdot": func(scope *Scope, args *callArgs, pos pathmodel.Position) (feature.Feature, error) {
		class := feature.FromSymbols(args.Symbols, scope)
		paint := feature.DotFilled
		if args.Symbols.Take("open") {
			paint = feature.DotStroked
		}
		return feature.Dot{Position: pos, Class: class, Size: dotSize, Paint: paint, Casing: true}, nil
	},
	"station": func(scope *Scope, args *callArgs, pos pathmodel.Position) (feature.Feature, error) {
		class := feature.FromSymbols(args.Symbols, scope)
		return feature.Dot{Position: pos, Class: class, Size: stationSize, Paint: feature.DotStroked, Casing: true}, nil
	},
	"label":      labelProc(feature.FontMedium, true),
	"slabel":     labelProc(feature.FontSmall, true),
	"badge":      labelProc(feature.FontBadge, false),
	"line_badge": labelProc(feature.FontBadge, false),
	"line_box":   labelProc(feature.FontLarge, false),
	"line_label": labelProc(feature.FontMedium, true),
	"tt_badge":   labelProc(feature.FontBadge, false),
	"tt_label":   labelProc(feature.FontSmall, true),
}

// labelProc builds the pointProc for one of the eight label-family
// builtins, each fixed to a font size and on-path behaviour but
// otherwise identical: a single text span at the resolved position.
func labelProc(size feature.FontSize, onPath bool) pointProc {
	return func(scope *Scope, args *callArgs, pos pathmodel.Position) (feature.Feature, error) {
		text, err := firstText(args)
		if err != nil {
			return nil, err
		}
		class := feature.FromScope(scope)
		return feature.Label{
			Position: pos,
			OnPath:   onPath,
			Class:    class,
			Spans:    []feature.Span{{Text: text, Size: size}},
		}, nil
	}
}

// firstText requires args to carry at least one positional Text value,
// returning the first.
func firstText(args *callArgs) (string, error) {
	if len(args.Positional) == 0 {
		return "", fmt.Errorf("expected a text argument")
	}
	return asText(args.Positional[0])
}
