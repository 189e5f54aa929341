package feature

import (
	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/style"
)

// Feature is implemented by every feature variant the store holds:
// Track, Marker, Dot, Guide, Area, Platform, Border and Label (spec
// §3.3), grounded on original_source/src/railway/feature/mod.rs's
// Feature trait.
type Feature interface {
	StorageBounds() geo.Rect
	Group() Group
	Shape(st style.Style) canvas.Shape
}

// GroupLayer is the coarse draw-order bucket a feature's Group sorts by
// first (spec §4.6 step 4: "Back < Marker < Track < Label").
type GroupLayer uint8

const (
	LayerBack GroupLayer = iota
	LayerMarker
	LayerTrack
	LayerLabel
)

// Group is a feature's full sort key within its stage group: layer,
// then status (removed/closed before open), then passenger band (spec
// §4.6 step 4, original_source/src/railway/feature/mod.rs's Group).
// Ascending Group order is draw order: lower groups paint first and so
// sit beneath later ones.
type Group struct {
	Layer  GroupLayer
	Status Status
	Pax    Pax
}

// Less reports whether g sorts strictly before other.
func (g Group) Less(other Group) bool {
	if g.Layer != other.Layer {
		return g.Layer < other.Layer
	}
	if g.Status != other.Status {
		return g.Status < other.Status
	}
	return g.Pax < other.Pax
}

// NewGroup builds a Group for the given layer from a Railway class's
// status and passenger band, mirroring Group::with_railway.
func NewGroup(layer GroupLayer, class Railway) Group {
	return Group{Layer: layer, Status: class.Status(), Pax: class.Pax()}
}

// NewGroupWithStatus builds a Group with an explicit status and the
// default (full) passenger band, mirroring Group::with_status.
func NewGroupWithStatus(layer GroupLayer, status Status) Group {
	return Group{Layer: layer, Status: status, Pax: PaxFull}
}

// NewGroupDefault builds a Group with Open status and full passenger
// band, mirroring Group::with_category -- used by Border, Guide and
// Label, whose group never depends on a status.
func NewGroupDefault(layer GroupLayer) Group {
	return Group{Layer: layer, Status: StatusOpen, Pax: PaxFull}
}

// trackKey builds the style measures tables' lookup key from a Railway
// classification (spec §4.5; internal/style doesn't import this package
// to avoid a cycle with Shape(style), so the translation lives here,
// mirroring colorKey below).
func trackKey(class Railway) style.TrackKey {
	return style.TrackKey{IsMain: class.Category().IsMain() && !class.GaugeGroup().IsNarrow()}
}

// colorKey builds the style palette's lookup key from a Railway
// classification (spec §4.5; internal/style doesn't import this package
// to avoid a cycle with Shape(style), so the translation lives here).
func colorKey(class Railway) style.ColorKey {
	key := style.ColorKey{
		Greyed:     class.Status() == StatusClosed || class.Status() == StatusSuspended || class.Status().IsProject(),
		VeryGreyed: class.Status() == StatusRemoved || class.Status() == StatusGone,
		PaxFull:    class.Pax() == PaxFull,
		PaxPartial: class.Pax() == PaxHeritage || class.Pax() == PaxSeasonal,
	}
	if cat, ok := class.ActiveCat(); ok {
		key.HasCat = true
		key.CatDC = cat.System == ElectricDC
		key.CatHighVolt = cat.VoltageGroup() == VoltageHigh
	} else if cat, ok := class.Cat(); ok && cat.Status == ElectricNone {
		key.NoCat = true
	}
	if rail, ok := class.ActiveRail(); ok {
		key.HasRail = true
		key.RailHighVolt = rail.VoltageGroup() == VoltageHigh
	}
	return key
}
