package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "railmap.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
theme = "railwayhistory"

[regions.de]
paths_dir = "paths/de"
rules_dir = "rules/de"
detailed_flag = true
`)

	cfg, d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", d.Report())
	}
	region := cfg.Regions["de"]
	if region.BaseGauge != DefaultBaseGauge {
		t.Errorf("BaseGauge = %d, want default %d", region.BaseGauge, DefaultBaseGauge)
	}
	if cfg.Server.Listen != "127.0.0.1:8080" {
		t.Errorf("Listen default not applied: %q", cfg.Server.Listen)
	}
}

func TestLoadReportsMissingFields(t *testing.T) {
	path := writeConfig(t, `
[regions.x]
rules_dir = "rules/x"
`)
	_, d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !d.HasErrors() {
		t.Fatal("expected diagnostics for missing theme/paths_dir")
	}
}
