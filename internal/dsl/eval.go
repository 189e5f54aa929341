package dsl

import (
	"fmt"
	"math"

	"github.com/railwayhistory/railmap/internal/diag"
	"github.com/railwayhistory/railmap/internal/feature"
	"github.com/railwayhistory/railmap/internal/featurestore"
	"github.com/railwayhistory/railmap/internal/pathmodel"
	"github.com/railwayhistory/railmap/internal/symbolset"
)

// earthCircumferenceMeters grounds the one real-world unit (metres)
// that can appear in a geometry-building position -- a Segment/
// Position's sideways "<</>>" offset or a Location's signed node
// offset -- into the normalised Mercator storage square internal/geo
// projects every coordinate into, where 1.0 spans the whole equator
// (internal/geo's own doc comment). Every other named unit (bp/pt/mm/
// dt/canvas) is a print/canvas measure with no fixed real-world size,
// so it is rejected there; those units are only meaningful once a
// style.Style exists, which a geometry position is built without (see
// DESIGN.md's Distance entry).
const earthCircumferenceMeters = 40075016.6856
const storageUnitsPerMeter = 1 / earthCircumferenceMeters

// Eval evaluates an entire parsed rule file against scope, accumulating
// a diagnostic per failing statement rather than aborting the file
// (spec §4.3's error model, mirroring Parse's own recover-and-continue
// shape). file labels diagnostics.
func Eval(list *StatementList, scope *Scope, file string) *diag.Diagnostics {
	var d diag.Diagnostics
	evalStatementList(scope, list, file, &d)
	return &d
}

func toDiagPos(file string, p Pos) diag.Pos {
	return diag.Pos{File: file, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func evalStatementList(scope *Scope, list *StatementList, file string, d *diag.Diagnostics) {
	if list == nil {
		return
	}
	for _, stmt := range list.Statements {
		evalStatement(scope, stmt, file, d)
	}
}

func evalStatement(scope *Scope, stmt Statement, file string, d *diag.Diagnostics) {
	switch s := stmt.(type) {
	case *Let:
		if err := applyAssignmentList(scope, scope, s.Assignments); err != nil {
			d.Add(toDiagPos(file, s.Pos), "%v", err)
		}
	case *With:
		child := scope.Child()
		if err := applyAssignmentList(scope, child, s.Assignments); err != nil {
			d.Add(toDiagPos(file, s.Pos), "%v", err)
			return
		}
		evalStatementList(child, s.Body, file, d)
	case *Contour:
		if err := evalContour(scope, s); err != nil {
			d.Add(toDiagPos(file, s.Pos), "%v", err)
		}
	case *Symbol:
		if err := evalSymbol(scope, s); err != nil {
			d.Add(toDiagPos(file, s.Pos), "%v", err)
		}
	case *Label:
		if err := evalLabel(scope, s); err != nil {
			d.Add(toDiagPos(file, s.Pos), "%v", err)
		}
	default:
		d.Add(toDiagPos(file, stmt.stmtPos()), "internal error: unhandled statement %T", stmt)
	}
}

// applyAssignmentList evaluates each assignment's value against origin
// (the scope the with/let statement appears in) and applies it to dst,
// recognising the four render-parameter names spec §4.3 lists (detail,
// layer, link, style) and otherwise binding a plain variable.
func applyAssignmentList(origin, dst *Scope, al *AssignmentList) error {
	if al == nil {
		return nil
	}
	for _, a := range al.Assignments {
		if err := applyAssignment(origin, dst, a); err != nil {
			return fmt.Errorf("%s: %w", a.Name, err)
		}
	}
	return nil
}

func applyAssignment(origin, dst *Scope, a Assignment) error {
	// "style" takes a bare style-sheet name, e.g. `style=electric`; the
	// identifier names a style rather than being looked up as a
	// variable, the same way a Contour/Symbol/Label rule's leading
	// identifier names a procedure rather than a value.
	if a.Name == "style" {
		ident, ok := a.Value.(*VariableExpr)
		if !ok {
			return fmt.Errorf("expected a bare style name")
		}
		dst.styleName = ident.Ident
		return nil
	}

	val, err := evalExpr(origin, a.Value)
	if err != nil {
		return err
	}
	switch a.Name {
	case "detail":
		lo, hi, err := asDetailRange(val)
		if err != nil {
			return err
		}
		dst.detailLo, dst.detailHi = lo, hi
	case "layer":
		n, err := asNumber(val)
		if err != nil {
			return err
		}
		dst.layer = int(n)
	case "link":
		t, err := asText(val)
		if err != nil {
			return err
		}
		dst.link = t
	default:
		dst.Bind(a.Name, val)
	}
	return nil
}

func asDetailRange(v Value) (lo, hi int, err error) {
	switch val := v.(type) {
	case Range:
		return int(val.Lo), int(val.Hi), nil
	case Number:
		return int(val), int(val), nil
	default:
		return 0, 0, fmt.Errorf("expected a number or range, got %s", valueTypeName(v))
	}
}

// evalExpr evaluates e in scope to a runtime Value.
func evalExpr(scope *Scope, e Expression) (Value, error) {
	switch expr := e.(type) {
	case *NumberExpr:
		return Number(expr.Value), nil
	case *RangeExpr:
		return Range{Lo: expr.Lo, Hi: expr.Hi}, nil
	case *TextExpr:
		return Text(expr.Value), nil
	case *DistanceExpr:
		return evalDistanceExpr(expr), nil
	case *VariableExpr:
		v, ok := scope.Lookup(expr.Ident)
		if !ok {
			return nil, fmt.Errorf("undefined variable %q", expr.Ident)
		}
		return v, nil
	case *FunctionExpr:
		return evalFunctionCall(scope, expr)
	default:
		return nil, fmt.Errorf("internal error: unhandled expression %T", e)
	}
}

func evalDistanceExpr(d *DistanceExpr) Distance {
	var dist Distance
	for _, term := range d.Terms {
		v := term.Sign * term.Value
		if term.Unit == "" {
			dist.World += v
		} else {
			dist.Map = append(dist.Map, MapTerm{Unit: term.Unit, Value: v})
		}
	}
	return dist
}

// geometryDistance converts a Distance appearing in a geometry-building
// position (a Segment/Position offset, a Location's node offset) into a
// plain storage-space float, since these are resolved once at rule-eval
// time, long before any style.Style (and its zoom-dependent unit table)
// exists to resolve a print/canvas unit against.
func geometryDistance(d Distance) (float64, error) {
	total := d.World
	for _, m := range d.Map {
		if m.Unit != "m" {
			return 0, fmt.Errorf("unit %q cannot be used in a path offset (only plain numbers and metres apply to geometry)", m.Unit)
		}
		total += m.Value * storageUnitsPerMeter
	}
	return total, nil
}

func resolveDistanceExprGeometry(d *DistanceExpr) (float64, error) {
	return geometryDistance(evalDistanceExpr(d))
}

// callArgs is a procedure/function call's evaluated arguments: resolved
// positional and named expression values, plus the consuming set of
// bare classifier tokens built-in procedures Take() from.
type callArgs struct {
	Positional []Value
	Named      map[string]Value
	Symbols    *symbolset.Set
}

func evalCallArgs(scope *Scope, al *ArgumentList) (*callArgs, error) {
	c := &callArgs{Named: map[string]Value{}}
	var names []string
	if al != nil {
		for _, a := range al.Arguments {
			switch {
			case a.Symbols != nil:
				names = append(names, a.Symbols...)
			case a.Name != "":
				v, err := evalExpr(scope, a.Value)
				if err != nil {
					return nil, err
				}
				c.Named[a.Name] = v
			default:
				v, err := evalExpr(scope, a.Value)
				if err != nil {
					return nil, err
				}
				c.Positional = append(c.Positional, v)
			}
		}
	}
	set := symbolset.New(names...)
	c.Symbols = &set
	return c, nil
}

func evalFunctionCall(scope *Scope, fn *FunctionExpr) (Value, error) {
	f, ok := valueFunctions[fn.Ident]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", fn.Ident)
	}
	args, err := evalCallArgs(scope, fn.Args)
	if err != nil {
		return nil, err
	}
	return f(scope, args)
}

// resolvePathRef evaluates e, which must name an ImportPathRef.
func resolvePathRef(scope *Scope, e Expression) (*pathmodel.BasePath, error) {
	v, err := evalExpr(scope, e)
	if err != nil {
		return nil, err
	}
	return asPathRef(v)
}

// resolveLocation turns a parsed Location into a pathmodel.Location
// against path, resolving its optional signed offset term.
func resolveLocation(path *pathmodel.BasePath, loc Location) (pathmodel.Location, error) {
	base, err := pathmodel.NamedLocation(path, loc.Node, 0)
	if err != nil {
		return pathmodel.Location{}, err
	}
	if loc.Offset != nil {
		off, err := resolveDistanceExprGeometry(loc.Offset)
		if err != nil {
			return pathmodel.Location{}, err
		}
		base.Distance = loc.Sign * off
	}
	return base, nil
}

// resolveOffset turns a parsed Offset into a signed sideways shift:
// positive for "<<" (left), negative for ">>" (right).
func resolveOffset(off *Offset) (float64, error) {
	v, err := resolveDistanceExprGeometry(&off.Value)
	if err != nil {
		return 0, err
	}
	if !off.Left {
		v = -v
	}
	return v, nil
}

// resolveSegment resolves a parsed Segment into a pathmodel.Subpath,
// defaulting its Start/End to the referenced path's first/last node
// when the DSL omits the "[from, to]" slice.
func resolveSegment(scope *Scope, seg Segment) (pathmodel.Subpath, error) {
	path, err := resolvePathRef(scope, seg.Path)
	if err != nil {
		return pathmodel.Subpath{}, err
	}

	start := pathmodel.NodeLocation(0)
	if seg.Start != nil {
		start, err = resolveLocation(path, *seg.Start)
		if err != nil {
			return pathmodel.Subpath{}, err
		}
	}
	end := pathmodel.NodeLocation(path.NodeCount() - 1)
	if seg.End != nil {
		end, err = resolveLocation(path, *seg.End)
		if err != nil {
			return pathmodel.Subpath{}, err
		}
	}
	offset := 0.0
	if seg.Offset != nil {
		offset, err = resolveOffset(seg.Offset)
		if err != nil {
			return pathmodel.Subpath{}, err
		}
	}
	return pathmodel.Subpath{Path: path, Start: start, End: end, Offset: offset}, nil
}

// resolvePath builds a Trace from a parsed Path: each ".."-joined
// segment continues as its own Subpath section, while each "--"-joined
// segment is bridged by a straight Edge section between the previous
// segment's end and the next segment's start (spec §4.1's path grammar;
// no DSL syntax exists for a join's own tension, so every TracePart uses
// the same default tension of 1 that BasePath nodes themselves default
// to when unspecified).
func resolvePath(scope *Scope, path Path) (pathmodel.Trace, error) {
	first, err := resolveSegment(scope, path.First)
	if err != nil {
		return pathmodel.Trace{}, err
	}
	parts := []pathmodel.TracePart{{PostTension: 1, PreTension: 1, Section: first}}
	prev := first

	for _, join := range path.Joins {
		seg, err := resolveSegment(scope, join.Segment)
		if err != nil {
			return pathmodel.Trace{}, err
		}
		if join.DashDash {
			from := pathmodel.Position{Path: prev.Path, At: prev.End, Sideways: prev.Offset}
			to := pathmodel.Position{Path: seg.Path, At: seg.Start, Sideways: seg.Offset}
			parts = append(parts, pathmodel.TracePart{
				PostTension: 1, PreTension: 1,
				Section: pathmodel.Edge{From: from, To: to},
			})
		}
		parts = append(parts, pathmodel.TracePart{PostTension: 1, PreTension: 1, Section: seg})
		prev = seg
	}
	return pathmodel.NewTrace(parts)
}

// resolvePosition builds a pathmodel.Position from a parsed Position.
func resolvePosition(scope *Scope, posAST Position) (pathmodel.Position, error) {
	path, err := resolvePathRef(scope, posAST.Path)
	if err != nil {
		return pathmodel.Position{}, err
	}
	at, err := resolveLocation(path, posAST.At)
	if err != nil {
		return pathmodel.Position{}, err
	}
	sideways := 0.0
	if posAST.Offset != nil {
		sideways, err = resolveOffset(posAST.Offset)
		if err != nil {
			return pathmodel.Position{}, err
		}
	}
	rotation := 0.0
	if posAST.Rotation != nil {
		rotation = posAST.Rotation.Degrees * math.Pi / 180
	}
	return pathmodel.Position{Path: path, At: at, Sideways: sideways, Rotation: rotation}, nil
}

// evalContour evaluates a `contour [with ...] rule(...) path ;`
// statement: resolve the with-overrides, dispatch the rule expression
// to a contour-building procedure, resolve the path to a Trace, run the
// procedure, and push the resulting feature.
func evalContour(scope *Scope, c *Contour) error {
	child := scope
	if c.With != nil {
		child = scope.Child()
		if err := applyAssignmentList(scope, child, c.With); err != nil {
			return err
		}
	}
	fn, ok := c.Rule.(*FunctionExpr)
	if !ok {
		return fmt.Errorf("a contour's rule must be a procedure call")
	}
	proc, ok := contourProcedures[fn.Ident]
	if !ok {
		return fmt.Errorf("unknown contour procedure %q", fn.Ident)
	}
	args, err := evalCallArgs(child, fn.Args)
	if err != nil {
		return err
	}
	trace, err := resolvePath(child, c.Path)
	if err != nil {
		return err
	}
	f, err := proc(child, args, trace)
	if err != nil {
		return err
	}
	if rem := args.Symbols.Remaining(); len(rem) > 0 {
		return fmt.Errorf("%s: unused symbols %v", fn.Ident, rem)
	}
	lo, hi := child.DetailRange()
	pushFeature(child, fn.Ident, f, lo, hi)
	return nil
}

// evalSymbol evaluates a `symbol [with ...] rule(...) position ;`
// statement, the point-shaped sibling of evalContour.
func evalSymbol(scope *Scope, s *Symbol) error {
	child := scope
	if s.With != nil {
		child = scope.Child()
		if err := applyAssignmentList(scope, child, s.With); err != nil {
			return err
		}
	}
	fn, ok := s.Rule.(*FunctionExpr)
	if !ok {
		return fmt.Errorf("a symbol's rule must be a procedure call")
	}
	proc, ok := pointProcedures[fn.Ident]
	if !ok {
		return fmt.Errorf("unknown symbol procedure %q", fn.Ident)
	}
	args, err := evalCallArgs(child, fn.Args)
	if err != nil {
		return err
	}
	pos, err := resolvePosition(child, s.Position)
	if err != nil {
		return err
	}
	f, err := proc(child, args, pos)
	if err != nil {
		return err
	}
	if rem := args.Symbols.Remaining(); len(rem) > 0 {
		return fmt.Errorf("%s: unused symbols %v", fn.Ident, rem)
	}
	lo, hi := child.DetailRange()
	pushFeature(child, fn.Ident, f, lo, hi)
	return nil
}

// evalLabel evaluates a `label [with ...] position rule ;` statement,
// where rule is a value expression producing a Layout (the hbox/vbox/
// span family of built-in functions, spec §4.4's "label statements
// carry a layout tree built by composing box functions") -- distinct
// from Contour/Symbol, whose rule names a feature-constructing
// procedure instead of a value function.
func evalLabel(scope *Scope, l *Label) error {
	child := scope
	if l.With != nil {
		child = scope.Child()
		if err := applyAssignmentList(scope, child, l.With); err != nil {
			return err
		}
	}
	val, err := evalExpr(child, l.Rule)
	if err != nil {
		return err
	}
	layout, ok := val.(Layout)
	if !ok {
		return fmt.Errorf("a label's rule must produce a layout, got %s", valueTypeName(val))
	}
	pos, err := resolvePosition(child, l.Position)
	if err != nil {
		return err
	}
	f := feature.Label{
		Position: pos,
		OnPath:   true,
		Class:    feature.FromScope(child),
		Spans:    layoutSpans(layout),
	}
	lo, hi := child.DetailRange()
	pushFeature(child, "label", f, lo, hi)
	return nil
}

// layoutSpans flattens a Layout value into the Span slice feature.Label
// draws, translating each LayoutSpan's named size to a feature.FontSize.
func layoutSpans(l Layout) []feature.Span {
	out := make([]feature.Span, len(l.Spans))
	for i, s := range l.Spans {
		out[i] = feature.Span{Text: s.Text, Size: fontSizeFromName(s.Size)}
	}
	return out
}

func fontSizeFromName(name string) feature.FontSize {
	switch name {
	case "xsmall":
		return feature.FontXSmall
	case "small":
		return feature.FontSmall
	case "large":
		return feature.FontLarge
	case "xlarge":
		return feature.FontXLarge
	case "badge":
		return feature.FontBadge
	default:
		return feature.FontMedium
	}
}

// builtinTarget routes a builtin procedure's constructed feature to the
// store builder it belongs in, mirroring mod.rs's dispatch of
// TrackContour/AreaContour/... into Store's four disjoint sets (spec
// §3.5): borders go to Borders, timetable-badge labels to TTLabels,
// ordinary labels/guides/line-annotation builtins to LineLabels, and
// everything else (track, markers, dots, areas, platforms) to Railway.
func builtinTarget(name string) func(*featurestore.StoreBuilder) *featurestore.Builder {
	switch name {
	case "border":
		return func(sb *featurestore.StoreBuilder) *featurestore.Builder { return &sb.Borders }
	case "tt_badge", "tt_label":
		return func(sb *featurestore.StoreBuilder) *featurestore.Builder { return &sb.TTLabels }
	case "label", "slabel", "badge", "line_badge", "line_box", "line_label", "guide":
		return func(sb *featurestore.StoreBuilder) *featurestore.Builder { return &sb.LineLabels }
	default:
		return func(sb *featurestore.StoreBuilder) *featurestore.Builder { return &sb.Railway }
	}
}

func pushFeature(scope *Scope, name string, f feature.Feature, detailLo, detailHi int) {
	b := builtinTarget(name)(scope.Store())
	b.Push(f, scope.Layer(), detailLo, detailHi)
}
