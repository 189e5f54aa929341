package dsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/railwayhistory/railmap/internal/featurestore"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathimport"
)

// testPaths loads a single two-node path named "main" into a fresh
// pathimport.Set, the same textual format internal/pathimport.LoadDir
// parses.
func testPaths(t *testing.T) *pathimport.Set {
	t.Helper()
	dir := t.TempDir()
	src := "path main\nnode name=a 0 0\nnode name=b 1 1\nend\n"
	if err := os.WriteFile(filepath.Join(dir, "main.paths"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	set, d, err := pathimport.LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", d.Report())
	}
	return set
}

// testRootScope builds a root scope with "main" bound to the loaded
// test path, ready for Eval.
func testRootScope(t *testing.T) (*Scope, *featurestore.StoreBuilder) {
	t.Helper()
	paths := testPaths(t)
	store := &featurestore.StoreBuilder{}
	scope := NewRootScope(paths, store, 1435)
	bp, ok := paths.Lookup("main")
	if !ok {
		t.Fatal("expected main path to be loaded")
	}
	scope.Bind("main", PathRef{Path: bp})
	return scope, store
}

func evalSource(t *testing.T, src string) (*Scope, *featurestore.StoreBuilder) {
	t.Helper()
	list, d := Parse("test.map", src)
	if d.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", d.Report())
	}
	scope, store := testRootScope(t)
	ed := Eval(list, scope, "test.map")
	if ed.HasErrors() {
		t.Fatalf("unexpected eval diagnostics: %s", ed.Report())
	}
	return scope, store
}

func TestEvalContourTrackPushesRailwayFeature(t *testing.T) {
	_, store := evalSource(t, `
contour track(:single:cat) main;
`)
	s := store.Finalize()
	if s.Railway.Len() != 1 {
		t.Fatalf("Railway.Len() = %d, want 1", s.Railway.Len())
	}
}

func TestEvalSymbolStatdotPushesRailwayFeature(t *testing.T) {
	_, store := evalSource(t, `
symbol statdot(:station) main[a];
`)
	s := store.Finalize()
	if s.Railway.Len() != 1 {
		t.Fatalf("Railway.Len() = %d, want 1", s.Railway.Len())
	}
}

func TestEvalSymbolLineLabelPushesLineLabel(t *testing.T) {
	_, store := evalSource(t, `
symbol line_label("RE1") main[a];
`)
	s := store.Finalize()
	if s.LineLabels.Len() != 1 {
		t.Fatalf("LineLabels.Len() = %d, want 1", s.LineLabels.Len())
	}
	if s.Railway.Len() != 0 {
		t.Fatalf("Railway.Len() = %d, want 0", s.Railway.Len())
	}
}

func TestEvalContourBorderPushesBorder(t *testing.T) {
	_, store := evalSource(t, `
contour border() main;
`)
	s := store.Finalize()
	if s.Borders.Len() != 1 {
		t.Fatalf("Borders.Len() = %d, want 1", s.Borders.Len())
	}
}

func TestEvalLabelWithHboxPushesLineLabel(t *testing.T) {
	_, store := evalSource(t, `
label main[a] hbox("Berlin");
`)
	s := store.Finalize()
	if s.LineLabels.Len() != 1 {
		t.Fatalf("LineLabels.Len() = %d, want 1", s.LineLabels.Len())
	}
}

func TestEvalWithBlockSetsDetailRange(t *testing.T) {
	list, d := Parse("test.map", `
with detail=2->4 {
  contour track() main;
}
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
	world := geo.Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	if hits := s.Railway.Locate(3, world); len(hits) != 1 {
		t.Fatalf("detail 3: Locate returned %d hits, want 1", len(hits))
	}
	if hits := s.Railway.Locate(5, world); len(hits) != 0 {
		t.Fatalf("detail 5: Locate returned %d hits, want 0", len(hits))
	}
}

func TestEvalUnusedSymbolIsError(t *testing.T) {
	list, d := Parse("test.map", `
contour track(:bogus) main;
`)
	if d.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", d.Report())
	}
	scope, _ := testRootScope(t)
	ed := Eval(list, scope, "test.map")
	if !ed.HasErrors() {
		t.Fatal("expected an error for an unused symbol")
	}
}

func TestEvalUndefinedVariableIsError(t *testing.T) {
	list, d := Parse("test.map", `
contour track() nosuchpath;
`)
	if d.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", d.Report())
	}
	scope, _ := testRootScope(t)
	ed := Eval(list, scope, "test.map")
	if !ed.HasErrors() {
		t.Fatal("expected an error for an undefined path variable")
	}
}

func TestEvalGeometryOffsetInMetres(t *testing.T) {
	_, store := evalSource(t, `
symbol statdot() main[a]<<5m;
`)
	s := store.Finalize()
	if s.Railway.Len() != 1 {
		t.Fatalf("Railway.Len() = %d, want 1", s.Railway.Len())
	}
}

func TestEvalGeometryOffsetRejectsCanvasUnit(t *testing.T) {
	list, d := Parse("test.map", `
symbol statdot() main[a]<<5bp;
`)
	if d.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %s", d.Report())
	}
	scope, _ := testRootScope(t)
	ed := Eval(list, scope, "test.map")
	if !ed.HasErrors() {
		t.Fatal("expected an error: bp has no fixed real-world size in a geometry position")
	}
}

func TestEvalLetBindsVariable(t *testing.T) {
	list, d := Parse("test.map", `
let x = 3;
contour with detail=x track() main;
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
