// Command railmap-lint parses and evaluates every rule file named by a
// region's configuration without starting a server, printing the
// consolidated diagnostics report (spec §7) and exiting non-zero if it
// contains any errors. It shares its loading logic with railmapd but
// never builds or serves a tile.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/railwayhistory/railmap/internal/config"
	"github.com/railwayhistory/railmap/internal/diag"
	"github.com/railwayhistory/railmap/internal/dsl"
	"github.com/railwayhistory/railmap/internal/featurestore"
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
		fmt.Fprintf(os.Stderr, "railmap-lint: %v\n", err)
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

	store := &featurestore.StoreBuilder{}
	for name, region := range cfg.Regions {
		if *verbose {
			fmt.Printf("linting region %s (paths=%s rules=%s)\n", name, region.PathsDir, region.RulesDir)
		}
		rd, err := lintRegion(region, store)
		if err != nil {
			return fmt.Errorf("region %s: %w", name, err)
		}
		report.Extend(rd)
	}

	if report.Len() == 0 {
		fmt.Println("ok: no diagnostics")
		return nil
	}

	fmt.Println(report.Report())
	if report.HasErrors() {
		return fmt.Errorf("%d diagnostic(s), errors present", report.Len())
	}
	return nil
}

// lintRegion is loadRegion's read-only sibling: it runs every rule
// file through the parser and evaluator for diagnostics only, without
// the init-chain scope cache railmapd keeps warm across a long-lived
// process (a one-shot CLI run has no repeated use to amortize).
func lintRegion(region config.Region, store *featurestore.StoreBuilder) (*diag.Diagnostics, error) {
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

	root := dsl.NewRootScope(paths, store, region.BaseGauge)
	for _, name := range paths.Names() {
		p, _ := paths.Lookup(name)
		root.Bind(name, dsl.PathRef{Path: p})
	}

	for _, rf := range rules.Rules {
		scope := root
		for _, init := range rf.Inits {
			child := scope.Child()
			list, pd := dsl.Parse(init.Path, string(init.Source))
			report.Extend(pd)
			ed := dsl.Eval(list, child, init.Path)
			report.Extend(ed)
			scope = child
		}
		fileScope := scope.Child()
		list, pd := dsl.Parse(rf.Path, string(rf.Source))
		report.Extend(pd)
		ed := dsl.Eval(list, fileScope, rf.Path)
		report.Extend(ed)
	}

	return &report, nil
}
