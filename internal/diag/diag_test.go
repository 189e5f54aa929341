package diag

import "testing"

func TestDiagnosticsAccumulate(t *testing.T) {
	var d Diagnostics
	d.Add(Pos{File: "a.map", Line: 1, Column: 3}, "unknown identifier %q", "foo")
	d.Warn(Pos{File: "a.map", Line: 2, Column: 1}, "unused token")

	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if !d.HasErrors() {
		t.Fatalf("expected HasErrors() == true")
	}
	if err := d.Err(); err == nil {
		t.Fatalf("expected combined error, got nil")
	}
}

func TestNilDiagnosticsIsSilent(t *testing.T) {
	var d *Diagnostics
	d.Add(Pos{}, "should not panic")
	if d.Len() != 0 || d.HasErrors() {
		t.Fatalf("nil Diagnostics should report empty/no errors")
	}
}

func TestItemsSortedByPosition(t *testing.T) {
	var d Diagnostics
	d.Add(Pos{File: "b.map", Offset: 5}, "second")
	d.Add(Pos{File: "a.map", Offset: 10}, "first file")
	d.Add(Pos{File: "a.map", Offset: 1}, "first")

	items := d.Items()
	if len(items) != 3 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].Message != "first" || items[1].Message != "first file" {
		t.Fatalf("unexpected order: %+v", items)
	}
}
