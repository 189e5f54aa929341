// Package renderer implements the per-tile stage pipeline (C8, spec
// §4.6): select the features visible in a tile's expanded bbox, derive
// each one's shape once, sort by draw-order group, then paint in the
// fixed eleven-stage sequence. No source file in the retrieved corpus
// shows this outer loop directly (it lives in the original's maps/
// tree, not retrieved), so the loop itself is authored straight from
// the six numbered steps spec §4.6 states; every structure it drives
// (Stage/StageSet/Group/Shape) is the corpus-grounded one from
// internal/canvas and internal/feature.
package renderer

import (
	"fmt"
	"sort"

	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/feature"
	"github.com/railwayhistory/railmap/internal/featurestore"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/log"
	"github.com/railwayhistory/railmap/internal/style"
)

// shaped pairs a feature's draw-order key with the shape it resolved
// to for this render, so sorting never has to re-derive either. layer
// and seq back spec §4.4's tie-break below Group.Less: equal-Group
// entries sort by layer ascending, then by insertion order.
type shaped struct {
	group Group
	layer int
	seq   int
	shape canvas.Shape
}

// Group is a local alias kept so this package reads as the renderer's
// own vocabulary, not a re-export of internal/feature's.
type Group = feature.Group

// Render paints every feature visible at detail that intersects the
// tile's bbox onto cv, using st for all style-dependent resolution
// (spec §4.6 steps 1-6; clipping to the tile and surface emission are
// the Canvas backend's own responsibility, invoked by the caller after
// Render returns).
func Render(store *featurestore.Store, st style.Style, bbox geo.Rect, cv canvas.Canvas) {
	width := bbox.MaxX - bbox.MinX
	expanded := expand(bbox, st.BoundsCorrection()*width)

	var shapes []shaped
	for _, set := range []*featurestore.Set{store.Railway, store.Borders, store.LineLabels, store.TTLabels} {
		for _, e := range set.Locate(st.Detail, expanded) {
			if shape, ok := safeShape(e.Feature, st); ok {
				shapes = append(shapes, shaped{group: e.Feature.Group(), layer: e.Layer, seq: e.Seq, shape: shape})
			}
		}
	}

	sort.Slice(shapes, func(i, j int) bool {
		a, b := shapes[i], shapes[j]
		if !a.group.Less(b.group) && !b.group.Less(a.group) {
			if a.layer != b.layer {
				return a.layer < b.layer
			}
			return a.seq < b.seq
		}
		return a.group.Less(b.group)
	})

	for start := 0; start < len(shapes); {
		end := start + 1
		for end < len(shapes) && !shapes[start].group.Less(shapes[end].group) {
			end++
		}
		for _, stage := range canvas.Stages {
			for _, s := range shapes[start:end] {
				if s.shape.Stages().Contains(stage) {
					safeRender(s.shape, stage, st, cv)
				}
			}
		}
		start = end
	}
}

// safeShape resolves f's shape, recovering from a panic rather than
// aborting the whole tile (spec §7: "a feature whose shape fails is
// silently skipped").
func safeShape(f feature.Feature, st style.Style) (shape canvas.Shape, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Logger().Error("feature shape panicked, skipping",
				log.String("recover", safeRecoverMsg(r)))
			ok = false
		}
	}()
	return f.Shape(st), true
}

// safeRender paints one shape for one stage, recovering from a panic so
// one misbehaving shape never aborts the remaining stages or features.
func safeRender(s canvas.Shape, stage canvas.Stage, st style.Style, cv canvas.Canvas) {
	defer func() {
		if r := recover(); r != nil {
			log.Logger().Error("shape render panicked, skipping",
				log.String("stage", stage.String()),
				log.String("recover", safeRecoverMsg(r)))
		}
	}()
	s.Render(stage, st, cv)
}

func safeRecoverMsg(r any) string {
	return fmt.Sprint(r)
}

// expand grows bbox by margin on every side (spec §4.6 step 1).
func expand(bbox geo.Rect, margin float64) geo.Rect {
	return geo.Rect{
		MinX: bbox.MinX - margin,
		MinY: bbox.MinY - margin,
		MaxX: bbox.MaxX + margin,
		MaxY: bbox.MaxY + margin,
	}
}
