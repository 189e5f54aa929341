// Command railmap-import validates a region's raw import data: that
// its paths_dir and rules_dir (spec §6.1/§6.2) load and parse cleanly,
// without evaluating the rule DSL (that deeper semantic check is
// railmap-lint's job). It is meant to run against freshly checked-out
// or freshly converted data before a full lint/serve pass, so a
// malformed path file or unparsable rule file is caught at the cheaper,
// faster stage.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/railwayhistory/railmap/internal/config"
	"github.com/railwayhistory/railmap/internal/diag"
	"github.com/railwayhistory/railmap/internal/dsl"
	"github.com/railwayhistory/railmap/internal/log"
	"github.com/railwayhistory/railmap/internal/pathimport"
	"github.com/railwayhistory/railmap/internal/ruleimport"
)

var (
	configPath = flag.String("config", "railmap.toml", "Path to the server's TOML configuration file")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()
	log.SetConsole(*verbose)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "railmap-import: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, d, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var report diag.Diagnostics
	report.Extend(d)

	for name, region := range cfg.Regions {
		rd, err := importRegion(name, region)
		if err != nil {
			return fmt.Errorf("region %s: %w", name, err)
		}
		report.Extend(rd)
	}

	if report.Len() == 0 {
		fmt.Println("ok: import data loads and parses cleanly")
		return nil
	}

	fmt.Println(report.Report())
	if report.HasErrors() {
		return fmt.Errorf("%d diagnostic(s), errors present", report.Len())
	}
	return nil
}

// importRegion loads a region's base paths, then parses (but does not
// evaluate) every rule file it discovers, reporting a summary and
// returning the accumulated diagnostics.
func importRegion(name string, region config.Region) (*diag.Diagnostics, error) {
	var report diag.Diagnostics

	paths, pd, err := pathimport.LoadDir(region.PathsDir)
	if err != nil {
		return nil, fmt.Errorf("loading paths from %s: %w", region.PathsDir, err)
	}
	report.Extend(pd)

	rules, rd, err := ruleimport.LoadDir(region.RulesDir)
	if err != nil {
		return nil, fmt.Errorf("loading rules from %s: %w", region.RulesDir, err)
	}
	report.Extend(rd)

	parsed := 0
	for _, rf := range rules.Rules {
		for _, init := range rf.Inits {
			_, pd := dsl.Parse(init.Path, string(init.Source))
			report.Extend(pd)
		}
		_, pd := dsl.Parse(rf.Path, string(rf.Source))
		report.Extend(pd)
		parsed++
	}

	fmt.Printf("region %s: %d path(s), %d rule file(s) parsed, base gauge %dmm\n",
		name, paths.Len(), parsed, region.BaseGauge)

	return &report, nil
}
