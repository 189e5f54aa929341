package renderer

import (
	"testing"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/feature"
	"github.com/railwayhistory/railmap/internal/featurestore"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/style"
)

// stubFeature is a minimal feature.Feature whose Shape records a tag
// into a shared order slice when rendered, so tests can assert the
// sequence the renderer actually painted in.
type stubFeature struct {
	bounds geo.Rect
	group  feature.Group
	tag    string
	order  *[]string
}

func (f *stubFeature) StorageBounds() geo.Rect { return f.bounds }
func (f *stubFeature) Group() feature.Group    { return f.group }
func (f *stubFeature) Shape(st style.Style) canvas.Shape {
	return canvas.Func(func(style.Style, canvas.Canvas) {
		*f.order = append(*f.order, f.tag)
	})
}

func fullBounds() geo.Rect {
	return geo.Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
}

func TestRenderOrdersByGroupThenLayerThenInsertion(t *testing.T) {
	var order []string
	store := &featurestore.StoreBuilder{}

	// Same Group (LayerTrack/open/full) but different DSL with-layer
	// values: "high" was pushed with layer=5, "low" with layer=1, so
	// despite "high" being pushed first, "low" must paint first.
	group := feature.NewGroupDefault(feature.LayerTrack)
	store.Railway.Push(&stubFeature{bounds: fullBounds(), group: group, tag: "high", order: &order}, 5, 0, 255)
	store.Railway.Push(&stubFeature{bounds: fullBounds(), group: group, tag: "low", order: &order}, 1, 0, 255)

	// A label-layer feature must still paint after both track-layer
	// ones regardless of its own with-layer value, since Group.Less
	// (Back<Marker<Track<Label>) is compared before layer.
	labelGroup := feature.NewGroupDefault(feature.LayerLabel)
	store.LineLabels.Push(&stubFeature{bounds: fullBounds(), group: labelGroup, tag: "label", order: &order}, 0, 0, 255)

	st := style.Style{Detail: 3}
	Render(store.Finalize(), st, fullBounds(), nil)

	want := []string{"low", "high", "label"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRenderSkipsFeatureOutsideDetailRange(t *testing.T) {
	var order []string
	store := &featurestore.StoreBuilder{}
	group := feature.NewGroupDefault(feature.LayerTrack)
	store.Railway.Push(&stubFeature{bounds: fullBounds(), group: group, tag: "hidden", order: &order}, 0, 4, 5)

	st := style.Style{Detail: 3}
	Render(store.Finalize(), st, fullBounds(), nil)

	if len(order) != 0 {
		t.Fatalf("order = %v, want none (detail 3 outside [4,5])", order)
	}
}
