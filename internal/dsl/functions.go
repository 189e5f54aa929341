package dsl

import "fmt"

// valueFunction builds a Value from a call's evaluated arguments,
// implementing one of the nine value-producing built-ins spec §4.4
// lists (hbox, vbox, span, latspan, hrule, vrule, hbar, hexcolor, path).
type valueFunction func(scope *Scope, args *callArgs) (Value, error)

// valueFunctions are the built-in functions a DistanceExpr/VariableExpr
// context's FunctionExpr may call, distinct from the feature-producing
// procedures contourProcedures/pointProcedures dispatch into.
var valueFunctions = map[string]valueFunction{
	"hbox":     boxFunction("medium"),
	"vbox":     boxFunction("medium"),
	"span":     boxFunction("medium"),
	"latspan":  boxFunction("small"),
	"hrule":    ruleFunction,
	"vrule":    ruleFunction,
	"hbar":     ruleFunction,
	"hexcolor": hexcolorFunction,
	"path":     pathFunction,
}

// boxFunction builds a Layout whose spans are one per positional text
// argument, all set to the given named size -- hbox/vbox/span/latspan
// differ in the original's layout engine only by box orientation and
// emphasis, which collapse together once a layout is flattened to a
// plain stacked-span list (see feature.Label's doc comment).
func boxFunction(size string) valueFunction {
	return func(scope *Scope, args *callArgs) (Value, error) {
		if len(args.Positional) == 0 {
			return nil, fmt.Errorf("expected at least one text argument")
		}
		spans := make([]LayoutSpan, len(args.Positional))
		for i, v := range args.Positional {
			t, err := asText(v)
			if err != nil {
				return nil, err
			}
			spans[i] = LayoutSpan{Text: t, Size: size}
		}
		return Layout{Spans: spans}, nil
	}
}

// ruleFunction builds a blank spacer span for hrule/vrule/hbar, which
// in the original divide a layout with a drawn line rather than text --
// no rule-drawing canvas primitive exists anywhere in the retrieved
// corpus to ground a real line-drawing port against, so these collapse
// to an empty span that still occupies a layout row.
func ruleFunction(scope *Scope, args *callArgs) (Value, error) {
	return Layout{Spans: []LayoutSpan{{Text: "", Size: "small"}}}, nil
}

// hexcolorFunction passes its single text argument through unchanged;
// no per-feature colour override exists in feature.Shape's rendering in
// this port (colour always comes from the active style's palette via
// colorKey), so a parsed hex string has nowhere to flow except back out
// as plain text.
func hexcolorFunction(scope *Scope, args *callArgs) (Value, error) {
	if len(args.Positional) != 1 {
		return nil, fmt.Errorf("hexcolor expects exactly one argument")
	}
	return args.Positional[0], nil
}

// pathFunction resolves a named base path via the scope's loaded path
// set, implementing the `path(name)` built-in (spec §4.4).
func pathFunction(scope *Scope, args *callArgs) (Value, error) {
	if len(args.Positional) != 1 {
		return nil, fmt.Errorf("path expects exactly one argument")
	}
	name, err := asText(args.Positional[0])
	if err != nil {
		return nil, err
	}
	p, ok := scope.Paths().Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no such path %q", name)
	}
	return PathRef{Path: p}, nil
}
