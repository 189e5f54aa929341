// Command railmapd serves the tile endpoint described in spec §6.3: it
// loads a region configuration, every region's base paths and rule
// files, evaluates the rule DSL into a shared feature store, and then
// answers HTTP requests for that store.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/railwayhistory/railmap/internal/config"
	"github.com/railwayhistory/railmap/internal/diag"
	"github.com/railwayhistory/railmap/internal/dsl"
	"github.com/railwayhistory/railmap/internal/featurestore"
	"github.com/railwayhistory/railmap/internal/log"
	"github.com/railwayhistory/railmap/internal/pathimport"
	"github.com/railwayhistory/railmap/internal/ruleimport"
	"github.com/railwayhistory/railmap/internal/server"
)

var (
	configPath = flag.String("config", "railmap.toml", "Path to the server's TOML configuration file")
	bestEffort = flag.Bool("best-effort", false, "Start even if the load report contains errors")
)

func main() {
	flag.Parse()

	if err := log.SetProduction(); err != nil {
		fmt.Fprintf(os.Stderr, "railmapd: setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(); err != nil {
		log.Logger().Fatal("startup failed", log.Error(err))
	}
}

func run() error {
	cfg, d, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if d.HasErrors() && !*bestEffort {
		return fmt.Errorf("config has errors:\n%s", d.Report())
	}

	store := &featurestore.StoreBuilder{}
	var report diag.Diagnostics
	report.Extend(d)

	for name, region := range cfg.Regions {
		rd, err := loadRegion(name, region, store)
		if err != nil {
			return fmt.Errorf("region %s: %w", name, err)
		}
		report.Extend(rd)
	}

	if report.HasErrors() && !*bestEffort {
		return fmt.Errorf("load report has errors (%d diagnostics):\n%s", report.Len(), report.Report())
	}
	if report.Len() > 0 {
		log.Logger().Warn("load report is non-empty", log.Int("diagnostics", report.Len()))
	}

	srv := server.New(store.Finalize(), cfg.Server.CacheTiles)
	log.Logger().Info("listening", log.String("addr", cfg.Server.Listen), log.String("theme", cfg.Theme))
	return http.ListenAndServe(cfg.Server.Listen, srv.Handler())
}

// loadRegion loads one region's base paths and rule tree, evaluates
// every rule file into store, and returns the accumulated diagnostics.
// Matching §7's "I/O error during load ... aborts startup", a failure
// to walk either directory is returned as a hard error; a malformed
// individual file is instead folded into the returned report.
func loadRegion(name string, region config.Region, store *featurestore.StoreBuilder) (*diag.Diagnostics, error) {
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

	log.Logger().Info("loaded region",
		log.String("name", name),
		log.Int("paths", paths.Len()),
		log.Int("rule_files", len(rules.Rules)))

	root := rootScope(paths, store, region.BaseGauge)

	// Cache each init.map chain's evaluated scope by its ordered path
	// list, so sibling rule files sharing a directory don't re-parse
	// and re-evaluate the same init.map repeatedly.
	scopeCache := map[string]*dsl.Scope{}

	for _, rf := range rules.Rules {
		scope := scopeForChain(root, rf.Inits, scopeCache, &report)
		fileScope := scope.Child()
		list, pd := dsl.Parse(rf.Path, string(rf.Source))
		report.Extend(pd)
		ed := dsl.Eval(list, fileScope, rf.Path)
		report.Extend(ed)
	}

	return &report, nil
}

// scopeForChain returns the evaluated scope for the end of an init.map
// chain, building and caching each prefix's scope in order so a
// deeper init.map's bindings shadow a shallower one's (spec §6.1).
func scopeForChain(
	root *dsl.Scope,
	inits []ruleimport.File,
	cache map[string]*dsl.Scope,
	report *diag.Diagnostics,
) *dsl.Scope {
	key := ""
	scope := root
	for _, init := range inits {
		key = filepath.Join(key, init.Path)
		if cached, ok := cache[key]; ok {
			scope = cached
			continue
		}
		child := scope.Child()
		list, pd := dsl.Parse(init.Path, string(init.Source))
		report.Extend(pd)
		ed := dsl.Eval(list, child, init.Path)
		report.Extend(ed)
		cache[key] = child
		scope = child
	}
	return scope
}

// rootScope builds a fresh root scope with every loaded path bound as
// a variable, so a bare path name (e.g. `main[a, b]`) resolves the
// same way any other `let`-bound identifier does (spec §4.1).
func rootScope(paths *pathimport.Set, store *featurestore.StoreBuilder, baseGauge int) *dsl.Scope {
	scope := dsl.NewRootScope(paths, store, baseGauge)
	for _, name := range paths.Names() {
		p, _ := paths.Lookup(name)
		scope.Bind(name, dsl.PathRef{Path: p})
	}
	return scope
}
