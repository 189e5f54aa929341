package pathimport

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadDirParsesNodes(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"main.paths": `
# a trunk line with one named station node
path trunk
  node name=a 6.0 50.0
  node name=station 6.2 50.3 pre=0.8 post=1.2
  node 6.5 50.6
end
`,
	})

	set, d, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", d.Report())
	}
	if set.Len() != 1 {
		t.Fatalf("Len = %d, want 1", set.Len())
	}

	bp, ok := set.Lookup("trunk")
	if !ok {
		t.Fatal("expected path \"trunk\" to be loaded")
	}
	if bp.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", bp.NodeCount())
	}
	idx, ok := bp.NodeIndex("station")
	if !ok || idx != 1 {
		t.Fatalf("NodeIndex(station) = %d, %v, want 1, true", idx, ok)
	}
	if got := bp.Node(1).PreTension; got != 0.8 {
		t.Errorf("PreTension = %v, want 0.8", got)
	}
}

func TestLoadDirReportsBadNodes(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"bad.paths": `
path broken
  node name=a 6.0
end
`,
	})

	set, d, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if !d.HasErrors() {
		t.Fatal("expected a diagnostic for the malformed node")
	}
	if set.Len() != 0 {
		t.Fatalf("Len = %d, want 0 since the only path failed to build", set.Len())
	}
}

func TestLoadDirIgnoresNonPathFiles(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"readme.txt": "not a path file\n",
	})

	set, d, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", d.Report())
	}
	if set.Len() != 0 {
		t.Fatalf("Len = %d, want 0", set.Len())
	}
}
