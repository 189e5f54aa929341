package featurestore

import (
	"testing"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/feature"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/style"
)

// stubFeature is a minimal feature.Feature for exercising Builder/Set
// without pulling in a real Track/Marker/etc. variant.
type stubFeature struct {
	bounds geo.Rect
}

func (f stubFeature) StorageBounds() geo.Rect        { return f.bounds }
func (f stubFeature) Group() feature.Group           { return feature.NewGroupDefault(feature.LayerTrack) }
func (f stubFeature) Shape(style.Style) canvas.Shape { return nil }

func rect(minX, minY, maxX, maxY float64) geo.Rect {
	return geo.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func TestPushAllVisibleAtEveryDetail(t *testing.T) {
	var b Builder
	b.PushAll(stubFeature{bounds: rect(0, 0, 1, 1)})
	set := b.Finalize()

	for _, detail := range []int{0, 128, 255} {
		if hits := set.Locate(detail, rect(0, 0, 1, 1)); len(hits) != 1 {
			t.Errorf("detail %d: Locate returned %d hits, want 1", detail, len(hits))
		}
	}
}

func TestLocateExcludesOutsideDetailRange(t *testing.T) {
	var b Builder
	b.Push(stubFeature{bounds: rect(0, 0, 1, 1)}, 0, 4, 8)
	set := b.Finalize()

	if hits := set.Locate(3, rect(0, 0, 1, 1)); len(hits) != 0 {
		t.Errorf("detail 3: Locate returned %d hits, want 0 (below DetailLo)", len(hits))
	}
	if hits := set.Locate(9, rect(0, 0, 1, 1)); len(hits) != 0 {
		t.Errorf("detail 9: Locate returned %d hits, want 0 (above DetailHi)", len(hits))
	}
	if hits := set.Locate(6, rect(0, 0, 1, 1)); len(hits) != 1 {
		t.Errorf("detail 6: Locate returned %d hits, want 1", len(hits))
	}
}

func TestLocateExcludesDisjointBounds(t *testing.T) {
	var b Builder
	b.PushAll(stubFeature{bounds: rect(0, 0, 1, 1)})
	set := b.Finalize()

	if hits := set.Locate(0, rect(5, 5, 6, 6)); len(hits) != 0 {
		t.Errorf("disjoint query rect: Locate returned %d hits, want 0", len(hits))
	}
}

func TestPushAssignsLayerAndIncreasingSeq(t *testing.T) {
	var b Builder
	b.Push(stubFeature{bounds: rect(0, 0, 1, 1)}, 7, 0, 255)
	b.Push(stubFeature{bounds: rect(0, 0, 1, 1)}, 2, 0, 255)
	set := b.Finalize()

	hits := set.Locate(0, rect(0, 0, 1, 1))
	if len(hits) != 2 {
		t.Fatalf("Locate returned %d hits, want 2", len(hits))
	}

	bySeq := map[int]*Entry{}
	for _, e := range hits {
		bySeq[e.Seq] = e
	}
	if bySeq[0] == nil || bySeq[0].Layer != 7 {
		t.Errorf("entry with seq 0: layer = %v, want 7", bySeq[0])
	}
	if bySeq[1] == nil || bySeq[1].Layer != 2 {
		t.Errorf("entry with seq 1: layer = %v, want 2", bySeq[1])
	}
}

func TestStoreBuilderFinalizeIndexesAllFourSets(t *testing.T) {
	var b StoreBuilder
	b.Railway.PushAll(stubFeature{bounds: rect(0, 0, 1, 1)})
	b.Borders.PushAll(stubFeature{bounds: rect(0, 0, 1, 1)})
	b.LineLabels.PushAll(stubFeature{bounds: rect(0, 0, 1, 1)})
	b.TTLabels.PushAll(stubFeature{bounds: rect(0, 0, 1, 1)})

	store := b.Finalize()
	for name, set := range map[string]*Set{
		"Railway": store.Railway, "Borders": store.Borders,
		"LineLabels": store.LineLabels, "TTLabels": store.TTLabels,
	} {
		if set.Len() != 1 {
			t.Errorf("%s.Len() = %d, want 1", name, set.Len())
		}
	}
}
