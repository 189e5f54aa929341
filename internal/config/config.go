// Package config loads the server's TOML configuration file (spec §6.1):
// a theme identifier plus one region block per area of the map, naming
// the directories base paths and rule files are loaded from.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/railwayhistory/railmap/internal/diag"
)

// DefaultBaseGauge is the gauge, in millimetres, assumed for a region
// that doesn't declare base_gauge explicitly (standard gauge).
const DefaultBaseGauge = 1435

// Region names one area of the map: where its base paths and rule files
// live on disk, whether it renders at full detail, and its track gauge
// baseline for §3.3's GaugeGroup classification.
type Region struct {
	PathsDir  string `toml:"paths_dir"`
	RulesDir  string `toml:"rules_dir"`
	Detailed  bool   `toml:"detailed_flag"`
	BaseGauge int    `toml:"base_gauge"`
}

// Server configures the HTTP shell (out of the rendering core's scope,
// but still a real ambient component every deployment needs).
type Server struct {
	Listen     string `toml:"listen"`
	CacheTiles int    `toml:"cache_tiles"`
}

// Config is the parsed top-level configuration file.
type Config struct {
	Theme   string            `toml:"theme"`
	Regions map[string]Region `toml:"regions"`
	Server  Server            `toml:"server"`
}

// Load reads and parses path as TOML, applies defaults, and validates it.
// A non-empty Diagnostics is returned alongside any hard parse error so
// callers can print a consolidated report per §7's load-error policy.
func Load(path string) (*Config, *diag.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	d := applyDefaultsAndValidate(&cfg)
	return &cfg, d, nil
}

func applyDefaultsAndValidate(cfg *Config) *diag.Diagnostics {
	var d diag.Diagnostics

	if cfg.Theme == "" {
		d.Add(diag.Pos{}, "theme: must be set")
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = "127.0.0.1:8080"
	}
	if cfg.Server.CacheTiles <= 0 {
		cfg.Server.CacheTiles = 1024
	}
	if len(cfg.Regions) == 0 {
		d.Add(diag.Pos{}, "regions: at least one region must be configured")
	}

	for name, region := range cfg.Regions {
		if region.PathsDir == "" {
			d.Add(diag.Pos{}, "regions.%s: paths_dir must be set", name)
		}
		if region.RulesDir == "" {
			d.Add(diag.Pos{}, "regions.%s: rules_dir must be set", name)
		}
		if region.BaseGauge <= 0 {
			region.BaseGauge = DefaultBaseGauge
			cfg.Regions[name] = region
		}
	}

	return &d
}
