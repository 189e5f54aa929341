package dsl

import (
	"fmt"

	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/style"
	"github.com/railwayhistory/railmap/internal/symbolset"
)

// Value is the evaluator's runtime value union (spec §3.2: "Number |
// Text | SymbolSet | Distance | Position | Trace | ImportPathRef |
// List(Value) | Custom(Layout) | ..."). Go has no tagged-union syntax,
// so each variant is its own type implementing the marker method.
type Value interface {
	isValue()
}

// Number is a bare numeric value, e.g. the result of a range bound or
// an arithmetic built-in.
type Number float64

func (Number) isValue() {}

// Text is a string value, the result of one or more adjacent quoted
// literals.
type Text string

func (Text) isValue() {}

// SymbolSetValue wraps a symbolset.Set flowing through `let`/variables,
// distinct from the SymbolSet tokens a procedure call's own bare
// arguments supply directly (spec §3.2).
type SymbolSetValue struct {
	Set symbolset.Set
}

func (SymbolSetValue) isValue() {}

// Distance is a resolved unit-number-sum (spec §4.5): bare-number terms
// accumulate in World, normalised-Mercator-space units that scale with
// zoom via the style's equator scale; named-unit terms (bp/pt/mm/m/dt/
// canvas) accumulate in Map, resolved independently against the
// style's unit table at paint time. This generalises spec §4.5's
// stated single-term formula ("world_part × equator_scale + map_part ×
// units[index]") to a sum over every term a DistanceExpr carries, and
// treats a bare number as a world-space (not canvas-bp) magnitude --
// see DESIGN.md's Distance entry for the reasoning.
type Distance struct {
	World float64
	Map   []MapTerm
}

// MapTerm is one named-unit term of a Distance.
type MapTerm struct {
	Unit  string
	Value float64
}

func (Distance) isValue() {}

// Resolve converts d to a canvas-bp magnitude under style st.
func (d Distance) Resolve(st style.Style) float64 {
	total := d.World * st.Transform.Scale
	for _, m := range d.Map {
		total += st.Units.Resolve(m.Value, m.Unit, st.Mag)
	}
	return total
}

// PositionValue wraps a resolved pathmodel.Position.
type PositionValue struct {
	Position pathmodel.Position
}

func (PositionValue) isValue() {}

// TraceValue wraps a resolved pathmodel.Trace.
type TraceValue struct {
	Trace pathmodel.Trace
}

func (TraceValue) isValue() {}

// PathRef is the ImportPathRef value spec §3.2 names: a reference to a
// base path loaded by internal/pathimport, returned by the `path(...)`
// built-in function.
type PathRef struct {
	Path *pathmodel.BasePath
}

func (PathRef) isValue() {}

// List is an ordered collection of values, e.g. a detail range's
// `[lo, hi]` spelling or a multi-value argument.
type List []Value

func (List) isValue() {}

// Range is a `number "->" number` pair, used as a detail range (spec
// §4.3: "Range: evaluated as a pair (lo, hi); used as detail ranges").
type Range struct {
	Lo, Hi float64
}

func (Range) isValue() {}

// Layout is the Custom(Layout) value spec §3.2 names: a label's layout
// tree, flattened to a stack of styled text spans (spec §3.3's "layout
// tree (boxes/spans with typography properties)"; see internal/feature's
// Label/Span doc comment for why a full box-layout engine isn't ported).
type Layout struct {
	Spans []LayoutSpan
}

func (Layout) isValue() {}

// LayoutSpan is one line of a Layout, produced by the hbox/vbox/span
// family of built-in functions.
type LayoutSpan struct {
	Text string
	Size string // "xsmall" | "small" | "medium" | "large" | "xlarge" | "badge"
}

// valueTypeName names a Value's dynamic type for error messages.
func valueTypeName(v Value) string {
	switch v.(type) {
	case Number:
		return "number"
	case Text:
		return "text"
	case SymbolSetValue:
		return "symbol set"
	case Distance:
		return "distance"
	case PositionValue:
		return "position"
	case TraceValue:
		return "trace"
	case PathRef:
		return "path"
	case List:
		return "list"
	case Layout:
		return "layout"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// asNumber requires v to be a Number, failing otherwise.
func asNumber(v Value) (float64, error) {
	n, ok := v.(Number)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %s", valueTypeName(v))
	}
	return float64(n), nil
}

// asText requires v to be Text, failing otherwise.
func asText(v Value) (string, error) {
	t, ok := v.(Text)
	if !ok {
		return "", fmt.Errorf("expected text, got %s", valueTypeName(v))
	}
	return string(t), nil
}

// asDistance requires v to be a Distance, failing otherwise. A bare
// Number is accepted and treated as a dimensionless (world-space)
// distance, since the parser itself only ever distinguishes the two at
// the single-term boundary (see parseNumericExpression).
func asDistance(v Value) (Distance, error) {
	switch val := v.(type) {
	case Distance:
		return val, nil
	case Number:
		return Distance{World: float64(val)}, nil
	default:
		return Distance{}, fmt.Errorf("expected a distance, got %s", valueTypeName(v))
	}
}

// asPosition requires v to be a PositionValue, failing otherwise.
func asPosition(v Value) (pathmodel.Position, error) {
	p, ok := v.(PositionValue)
	if !ok {
		return pathmodel.Position{}, fmt.Errorf("expected a position, got %s", valueTypeName(v))
	}
	return p.Position, nil
}

// asTrace requires v to be a TraceValue, failing otherwise.
func asTrace(v Value) (pathmodel.Trace, error) {
	t, ok := v.(TraceValue)
	if !ok {
		return pathmodel.Trace{}, fmt.Errorf("expected a trace, got %s", valueTypeName(v))
	}
	return t.Trace, nil
}

// asPathRef requires v to be a PathRef, failing otherwise.
func asPathRef(v Value) (*pathmodel.BasePath, error) {
	p, ok := v.(PathRef)
	if !ok {
		return nil, fmt.Errorf("expected a path, got %s", valueTypeName(v))
	}
	return p.Path, nil
}
