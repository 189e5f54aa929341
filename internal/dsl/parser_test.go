package dsl

import "testing"

func mustParse(t *testing.T, src string) *StatementList {
	t.Helper()
	list, d := Parse("test.map", src)
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", d.Report())
	}
	return list
}

func TestParseContourWithTrack(t *testing.T) {
	list := mustParse(t, `
contour with detail=2->3 track(:single:electric) main[a, b];
`)
	if len(list.Statements) != 1 {
		t.Fatalf("len(Statements) = %d, want 1", len(list.Statements))
	}
	c, ok := list.Statements[0].(*Contour)
	if !ok {
		t.Fatalf("statement is %T, want *Contour", list.Statements[0])
	}
	if c.With == nil || len(c.With.Assignments) != 1 || c.With.Assignments[0].Name != "detail" {
		t.Fatalf("With = %+v", c.With)
	}
	if _, ok := c.With.Assignments[0].Value.(*RangeExpr); !ok {
		t.Fatalf("detail value is %T, want *RangeExpr", c.With.Assignments[0].Value)
	}
	fn, ok := c.Rule.(*FunctionExpr)
	if !ok || fn.Ident != "track" {
		t.Fatalf("Rule = %+v, want track(...)", c.Rule)
	}
	if fn.Args == nil || len(fn.Args.Arguments) != 1 {
		t.Fatalf("Args = %+v", fn.Args)
	}
	arg := fn.Args.Arguments[0]
	if len(arg.Symbols) != 2 || arg.Symbols[0] != "single" || arg.Symbols[1] != "electric" {
		t.Fatalf("Symbols = %v, want [single electric]", arg.Symbols)
	}
	if c.Path.First.Path.(*VariableExpr).Ident != "main" {
		t.Fatalf("path ident = %+v", c.Path.First.Path)
	}
	if c.Path.First.Start == nil || c.Path.First.Start.Node != "a" {
		t.Fatalf("Start = %+v", c.Path.First.Start)
	}
	if c.Path.First.End == nil || c.Path.First.End.Node != "b" {
		t.Fatalf("End = %+v", c.Path.First.End)
	}
}

func TestParseSymbolAndPositionOffset(t *testing.T) {
	list := mustParse(t, `
symbol statdot(:station) main[center]<<5m@45;
`)
	s, ok := list.Statements[0].(*Symbol)
	if !ok {
		t.Fatalf("statement is %T, want *Symbol", list.Statements[0])
	}
	if s.Position.Offset == nil || !s.Position.Offset.Left {
		t.Fatalf("Offset = %+v, want a left (<<) offset", s.Position.Offset)
	}
	if len(s.Position.Offset.Value.Terms) != 1 || s.Position.Offset.Value.Terms[0].Unit != "m" {
		t.Fatalf("Offset terms = %+v", s.Position.Offset.Value.Terms)
	}
	if s.Position.Rotation == nil || s.Position.Rotation.Degrees != 45 {
		t.Fatalf("Rotation = %+v", s.Position.Rotation)
	}
}

func TestParseWithBlockAndLet(t *testing.T) {
	list := mustParse(t, `
with layer=1 {
  let style=electric;
  contour track() main;
}
`)
	w, ok := list.Statements[0].(*With)
	if !ok {
		t.Fatalf("statement is %T, want *With", list.Statements[0])
	}
	if len(w.Assignments.Assignments) != 1 || w.Assignments.Assignments[0].Name != "layer" {
		t.Fatalf("Assignments = %+v", w.Assignments)
	}
	if len(w.Body.Statements) != 2 {
		t.Fatalf("len(Body.Statements) = %d, want 2", len(w.Body.Statements))
	}
	let, ok := w.Body.Statements[0].(*Let)
	if !ok {
		t.Fatalf("first body statement is %T, want *Let", w.Body.Statements[0])
	}
	if let.Assignments.Assignments[0].Name != "style" {
		t.Fatalf("Let assignment = %+v", let.Assignments.Assignments[0])
	}
}

func TestParseLabelWithBoxFunction(t *testing.T) {
	list := mustParse(t, `
label main[a] hbox("Berlin");
`)
	l, ok := list.Statements[0].(*Label)
	if !ok {
		t.Fatalf("statement is %T, want *Label", list.Statements[0])
	}
	fn, ok := l.Rule.(*FunctionExpr)
	if !ok || fn.Ident != "hbox" {
		t.Fatalf("Rule = %+v", l.Rule)
	}
	if len(fn.Args.Arguments) != 1 {
		t.Fatalf("Args = %+v", fn.Args)
	}
	text, ok := fn.Args.Arguments[0].Value.(*TextExpr)
	if !ok || text.Value != "Berlin" {
		t.Fatalf("arg value = %+v", fn.Args.Arguments[0].Value)
	}
}

func TestParseRecoversFromBadStatement(t *testing.T) {
	list, d := Parse("test.map", `
let x = 1;
wibble wobble garbage;
let y = 2;
`)
	if !d.HasErrors() {
		t.Fatal("expected a diagnostic for the garbage statement")
	}
	if len(list.Statements) != 2 {
		t.Fatalf("len(Statements) = %d, want 2 (recovered around the bad one)", len(list.Statements))
	}
	if list.Statements[0].(*Let).Assignments.Assignments[0].Name != "x" {
		t.Fatal("expected first recovered statement to bind x")
	}
	if list.Statements[1].(*Let).Assignments.Assignments[0].Name != "y" {
		t.Fatal("expected second recovered statement to bind y")
	}
}

func TestParseDistanceSum(t *testing.T) {
	list := mustParse(t, `
let x = 1mm + 2dt - 1bp;
`)
	d := list.Statements[0].(*Let).Assignments.Assignments[0].Value.(*DistanceExpr)
	if len(d.Terms) != 3 {
		t.Fatalf("len(Terms) = %d, want 3", len(d.Terms))
	}
	if d.Terms[2].Sign != -1 || d.Terms[2].Unit != "bp" {
		t.Fatalf("third term = %+v", d.Terms[2])
	}
}
