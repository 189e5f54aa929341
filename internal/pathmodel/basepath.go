// Package pathmodel implements the geometric path model (C1, spec §3.1):
// immutable base paths built from externally loaded nodes, named
// locations resolved against them, and the subpath/edge/trace
// composition used to build every feature's geometry.
package pathmodel

import (
	"fmt"

	"github.com/railwayhistory/railmap/internal/curve"
	"github.com/railwayhistory/railmap/internal/geo"
)

// defaultTension is used for a node's pre/post tension when the import
// format doesn't specify one (spec §6.2: "tensions default to 1").
const defaultTension = 1.0

// Node is one named point along a base path, with the Metafont tensions
// that apply when a segment enters or leaves it.
type Node struct {
	Name        string
	Point       geo.Point
	PreTension  float64
	PostTension float64
	distance    float64 // arc-length cache from the path's first node
}

// Distance returns the node's cached along-path distance from the first
// node of its path.
func (n Node) Distance() float64 { return n.distance }

// BasePath is an immutable, shared-by-reference sequence of nodes and
// the Bézier segments connecting them. It is built once by the importer
// and never mutated afterwards (spec §3.1's lifecycle).
type BasePath struct {
	name     string
	nodes    []Node
	segments []curve.Segment
}

// NewBasePath builds an immutable BasePath from nodes given in order,
// deriving tangents and arc-length caches. Nodes without an explicit
// pre/post tension get the default tension of 1.
func NewBasePath(name string, nodes []Node) (*BasePath, error) {
	if len(nodes) < 2 {
		return nil, fmt.Errorf("path %q: needs at least 2 nodes, got %d", name, len(nodes))
	}
	for i := range nodes {
		if nodes[i].PreTension == 0 {
			nodes[i].PreTension = defaultTension
		}
		if nodes[i].PostTension == 0 {
			nodes[i].PostTension = defaultTension
		}
	}

	segments := make([]curve.Segment, len(nodes)-1)
	for i := 0; i < len(nodes)-1; i++ {
		segments[i] = curve.Line(nodes[i].Point, nodes[i+1].Point)
	}
	// Re-derive each interior segment as a proper Metafont join between
	// its neighbours so tangents blend smoothly across nodes, per
	// §4.2's velocity formula; the outermost ends keep their direct
	// chord tangents since there is no "before"/"after" to blend with.
	resolved := make([]curve.Segment, len(segments))
	for i, seg := range segments {
		before := seg
		after := seg
		if i > 0 {
			before = resolved[i-1]
		}
		if i < len(segments)-1 {
			after = segments[i+1]
		}
		resolved[i] = curve.Connect(
			curve.Line(before.P0, seg.P0),
			nodes[i].PostTension,
			nodes[i+1].PreTension,
			curve.Line(seg.P3, after.P3),
		)
	}

	dist := 0.0
	nodes[0].distance = 0
	for i := 1; i < len(nodes); i++ {
		dist += resolved[i-1].ArcLength(0, 1, curve.StorageAccuracy)
		nodes[i].distance = dist
	}

	seen := map[string]int{}
	for i, n := range nodes {
		if n.Name == "" {
			continue
		}
		if _, ok := seen[n.Name]; ok {
			return nil, fmt.Errorf("path %q: duplicate node name %q", name, n.Name)
		}
		seen[n.Name] = i
	}

	return &BasePath{name: name, nodes: nodes, segments: resolved}, nil
}

// Name returns the path's identifier, as used by path("name") in the DSL.
func (p *BasePath) Name() string { return p.name }

// NodeCount returns the number of nodes on the path.
func (p *BasePath) NodeCount() int { return len(p.nodes) }

// Node returns the node at index i, clamped to the valid range.
func (p *BasePath) Node(i int) Node {
	if i < 0 {
		i = 0
	}
	if i >= len(p.nodes) {
		i = len(p.nodes) - 1
	}
	return p.nodes[i]
}

// NodeIndex finds a node by name.
func (p *BasePath) NodeIndex(name string) (int, bool) {
	for i, n := range p.nodes {
		if n.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Segment returns the Bézier segment between node i and i+1, clamping
// out-of-range indices to the path's valid segment range (spec §3.1
// invariant: "segment indices in locations are clamped to [0, nodes-1]").
func (p *BasePath) Segment(i int) curve.Segment {
	if i < 0 {
		i = 0
	}
	if i >= len(p.segments) {
		i = len(p.segments) - 1
	}
	return p.segments[i]
}

// SegmentCount returns the number of segments (always NodeCount()-1).
func (p *BasePath) SegmentCount() int { return len(p.segments) }

// TotalDistance returns the arc length of the whole path.
func (p *BasePath) TotalDistance() float64 {
	return p.nodes[len(p.nodes)-1].distance
}

// Bounds returns the union of every segment's bounding box.
func (p *BasePath) Bounds() geo.Rect {
	r := geo.EmptyRect()
	for _, seg := range p.segments {
		r = r.Union(seg.Bounds())
	}
	return r
}
