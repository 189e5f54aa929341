package canvas

import "github.com/railwayhistory/railmap/internal/style"

// Shape is a per-style drawable produced by a feature's Shape(style)
// method (spec §3.3, §4.6). The renderer calls Render once per stage in
// Stages order, for every stage the shape's Stages() set declares.
//
// Shape is a plain interface rather than the original's boxed trait
// object specifically so concrete shape types (TrackShape, LabelShape,
// ...) stay value types the renderer can hold in a slice without an
// extra indirection layer -- Go interfaces already give the dynamic
// dispatch the original used Box<dyn Shape> for.
type Shape interface {
	Render(stage Stage, style style.Style, canvas Canvas)
	Stages() StageSet
}

// Multi composes several shapes into one, rendering each in turn and
// unioning their stage sets -- the Go equivalent of the original's
// tuple Shape impl for (T0, T1), generalised to any count.
type Multi []Shape

func (m Multi) Render(stage Stage, st style.Style, canvas Canvas) {
	for _, s := range m {
		s.Render(stage, st, canvas)
	}
}

func (m Multi) Stages() StageSet {
	var set StageSet
	for _, s := range m {
		set = set.AddSet(s.Stages())
	}
	return set
}

// Func adapts a single Base-stage painter into a Shape, mirroring the
// original's BaseFnShape.
type Func func(style style.Style, canvas Canvas)

func (f Func) Render(stage Stage, st style.Style, canvas Canvas) {
	if stage == Base {
		f(st, canvas)
	}
}

func (f Func) Stages() StageSet { return Of(Base) }
