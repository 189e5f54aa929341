package dsl

import "testing"

func TestResolveMarkerSymbolCanonical(t *testing.T) {
	list, d := Parse("test.map", `
symbol marker(:de.bf:right) main[a];
`)
	if d.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", d.Report())
	}
	scope, store := testRootScope(t)
	ed := Eval(list, scope, "test.map")
	if ed.HasErrors() {
		t.Fatalf("unexpected eval diagnostics: %s", ed.Report())
	}
	s := store.Finalize()
	if s.Railway.Len() != 1 {
		t.Fatalf("Railway.Len() = %d, want 1", s.Railway.Len())
	}
}

func TestResolveMarkerSymbolAlias(t *testing.T) {
	list, d := Parse("test.map", `
symbol marker(:bf:top) main[a];
`)
	if d.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", d.Report())
	}
	scope, store := testRootScope(t)
	ed := Eval(list, scope, "test.map")
	if ed.HasErrors() {
		t.Fatalf("unexpected eval diagnostics: %s", ed.Report())
	}
	s := store.Finalize()
	if s.Railway.Len() != 1 {
		t.Fatalf("Railway.Len() = %d, want 1", s.Railway.Len())
	}
}

func TestResolveMarkerSymbolMissingIsError(t *testing.T) {
	list, d := Parse("test.map", `
symbol marker(:right) main[a];
`)
	if d.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", d.Report())
	}
	scope, _ := testRootScope(t)
	ed := Eval(list, scope, "test.map")
	if !ed.HasErrors() {
		t.Fatal("expected an error for a marker call missing a known marker symbol")
	}
}
