package dsl

import (
	"github.com/railwayhistory/railmap/internal/feature"
	"github.com/railwayhistory/railmap/internal/featurestore"
	"github.com/railwayhistory/railmap/internal/pathimport"
)

// Scope is the evaluator's environment: a chain of variable bindings
// plus the render parameters a `with`/`let` may set and the handles
// every built-in needs to resolve paths and push features (spec §3.2:
// "mapping from identifiers to values, with a parent-scope chain; also
// carries: current detail-range, current layer, current default
// railway class, current base gauge, and a handle to the mutable
// feature store builder").
type Scope struct {
	parent *Scope
	vars   map[string]Value

	detailLo, detailHi int
	layer              int
	link               string
	styleName          string
	class              feature.Railway

	baseGauge int
	paths     *pathimport.Set
	store     *featurestore.StoreBuilder
}

// NewRootScope builds the top-level scope a region's rule tree is
// evaluated against: full detail range, layer 0, no inherited class,
// and the region's configured base gauge (spec §6.1).
func NewRootScope(paths *pathimport.Set, store *featurestore.StoreBuilder, baseGauge int) *Scope {
	return &Scope{
		vars:      map[string]Value{},
		detailLo:  0,
		detailHi:  5,
		paths:     paths,
		store:     store,
		baseGauge: baseGauge,
	}
}

// Child clones s for a nested `with` block: a fresh variable namespace
// that shadows the parent chain, carrying forward every render
// parameter and handle (spec §4.3: "With: clones the scope ... The
// block's scope is discarded on exit").
func (s *Scope) Child() *Scope {
	return &Scope{
		parent:    s,
		vars:      map[string]Value{},
		detailLo:  s.detailLo,
		detailHi:  s.detailHi,
		layer:     s.layer,
		link:      s.link,
		styleName: s.styleName,
		class:     s.class,
		baseGauge: s.baseGauge,
		paths:     s.paths,
		store:     s.store,
	}
}

// Lookup resolves name along the scope chain, starting at s.
func (s *Scope) Lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind sets name in s's own variable namespace, rebinding silently if
// already set (spec §4.3: "Names rebind silently").
func (s *Scope) Bind(name string, v Value) {
	s.vars[name] = v
}

// Railway returns the class currently active in scope, implementing
// feature.ScopeRailway.
func (s *Scope) Railway() feature.Railway { return s.class }

// BaseGauge returns the region's configured base gauge, implementing
// feature.ScopeRailway.
func (s *Scope) BaseGauge() int { return s.baseGauge }

// DetailRange returns the scope's current (lo, hi) detail range.
func (s *Scope) DetailRange() (int, int) { return s.detailLo, s.detailHi }

// Layer returns the scope's current layer integer.
func (s *Scope) Layer() int { return s.layer }

// Paths returns the loaded base-path set, used by the `path(...)`
// built-in function.
func (s *Scope) Paths() *pathimport.Set { return s.paths }

// Store returns the mutable feature store builder statements push
// constructed features into.
func (s *Scope) Store() *featurestore.StoreBuilder { return s.store }

// setClass overwrites the scope's active railway classification,
// updated once a contour/symbol's built-in procedure resolves its full
// class from inherited scope plus its own symbols.
func (s *Scope) setClass(class feature.Railway) { s.class = class }
