// Package featurestore holds the four disjoint, spatially indexed
// feature sets a loaded map is split into -- railway, line labels,
// timetable labels, and borders (spec §3.5) -- grounded on
// original_source/src/railway/feature/mod.rs's Store/StoreBuilder/
// FeatureSet/FeatureSetBuilder.
package featurestore

import (
	"github.com/dhconnelly/rtreego"

	"github.com/railwayhistory/railmap/internal/feature"
	"github.com/railwayhistory/railmap/internal/geo"
)

// dims is the R-tree's dimensionality: storage x, storage y, and detail
// level packed into a single 3-D envelope, per spec §3.5's "packed 3-D
// envelope [detail_lo, detail_hi] × bbox".
const dims = 3

// detailEpsilon pads a zero-height detail range so rtreego, which
// rejects degenerate rectangles, accepts single-detail entries.
const detailEpsilon = 0.5

// Entry is a feature together with the detail range it is visible at,
// its draw-order layer, and its insertion sequence number. Most
// features are visible at every detail level; DetailLo/DetailHi narrow
// that for detail-gated content (e.g. a label that only appears once a
// tile is zoomed in enough to have room for it). Layer/Seq back spec
// §4.4's "features with equal Group are ordered by layer ascending;
// ties are broken by insertion order" -- Layer is the DSL's `with
// layer=N` statement parameter (distinct from feature.GroupLayer, the
// coarser Back/Marker/Track/Label bucket Group itself sorts by first).
type Entry struct {
	Feature  feature.Feature
	DetailLo int
	DetailHi int
	Layer    int
	Seq      int
}

func (e *Entry) Bounds() rtreego.Rect {
	b := e.Feature.StorageBounds()
	lo, hi := float64(e.DetailLo)-detailEpsilon, float64(e.DetailHi)+detailEpsilon
	point := rtreego.Point{b.MinX, b.MinY, lo}
	lengths := []float64{
		nonZero(b.MaxX - b.MinX),
		nonZero(b.MaxY - b.MinY),
		hi - lo,
	}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		// A degenerate point feature with exactly zero bounds on
		// every axis still needs a valid rtreego.Rect.
		rect, _ = rtreego.NewRect(point, []float64{detailEpsilon, detailEpsilon, hi - lo})
	}
	return rect
}

func nonZero(v float64) float64 {
	if v <= 0 {
		return detailEpsilon
	}
	return v
}

// Set is a spatially indexed, append-only collection of entries,
// mirroring femtomap::feature::FeatureSet<AnyFeature>.
type Set struct {
	tree    *rtreego.Rtree
	entries []*Entry
}

// Builder accumulates entries before the set is frozen, mirroring
// femtomap::feature::FeatureSetBuilder<AnyFeature>.
type Builder struct {
	entries []*Entry
	nextSeq int
}

// Push appends f, visible across the given inclusive detail range at
// the given draw-order layer (spec §4.4's `with layer=N`).
func (b *Builder) Push(f feature.Feature, layer, detailLo, detailHi int) {
	b.entries = append(b.entries, &Entry{
		Feature:  f,
		DetailLo: detailLo,
		DetailHi: detailHi,
		Layer:    layer,
		Seq:      b.nextSeq,
	})
	b.nextSeq++
}

// PushAll appends f, visible at every detail level, at layer 0.
func (b *Builder) PushAll(f feature.Feature) {
	b.Push(f, 0, 0, 255)
}

// Finalize builds the spatially indexed Set (spec §4.6 step 1: "index
// keyed by the triple (detail_lo, detail_hi, bounding_rect)").
func (b *Builder) Finalize() *Set {
	tree := rtreego.NewTree(dims, 4, 16)
	for _, e := range b.entries {
		tree.Insert(e)
	}
	return &Set{tree: tree, entries: b.entries}
}

// Len reports how many entries the set holds.
func (s *Set) Len() int { return len(s.entries) }

// Locate returns every entry in the set whose detail range covers
// detail and whose storage bounds intersect rect (spec §3.5's
// `locate(detail_level, rect)`), each carrying the layer/insertion
// sequence a caller needs to apply §4.4's draw-order tie-break.
func (s *Set) Locate(detail int, rect geo.Rect) []*Entry {
	point := rtreego.Point{rect.MinX, rect.MinY, float64(detail)}
	lengths := []float64{
		nonZero(rect.MaxX - rect.MinX),
		nonZero(rect.MaxY - rect.MinY),
		detailEpsilon,
	}
	query, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	hits := s.tree.SearchIntersect(query)
	out := make([]*Entry, 0, len(hits))
	for _, h := range hits {
		e := h.(*Entry)
		if detail < e.DetailLo || detail > e.DetailHi {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Store is the four disjoint feature sets a loaded map splits into
// (spec §3.5), mirroring mod.rs's Store.
type Store struct {
	Railway    *Set
	LineLabels *Set
	TTLabels   *Set
	Borders    *Set
}

// StoreBuilder accumulates a Store's four sets before freezing.
type StoreBuilder struct {
	Railway    Builder
	LineLabels Builder
	TTLabels   Builder
	Borders    Builder
}

// Finalize indexes all four sets and returns the frozen Store.
func (b *StoreBuilder) Finalize() *Store {
	return &Store{
		Railway:    b.Railway.Finalize(),
		LineLabels: b.LineLabels.Finalize(),
		TTLabels:   b.TTLabels.Finalize(),
		Borders:    b.Borders.Finalize(),
	}
}
