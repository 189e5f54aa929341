package pathmodel

import (
	"fmt"

	"github.com/railwayhistory/railmap/internal/curve"
	"github.com/railwayhistory/railmap/internal/geo"
)

// Section is a piece of geometry a Trace can be built from: either a
// Subpath (a run along a BasePath) or an Edge (a straight line between
// two Positions).
type Section interface {
	Segments() []curve.Segment
	Bounds() geo.Rect
}

// Segments implements Section for Edge: an edge is a single straight
// Bézier reduction of the chord between its two resolved positions.
func (e Edge) Segments() []curve.Segment {
	from, _ := e.From.Resolve()
	to, _ := e.To.Resolve()
	return []curve.Segment{curve.Line(from, to)}
}

// TracePart is one joint of a Trace: the section itself, plus the
// Metafont tensions applied at the joints immediately before and after
// it when blending with neighbouring parts (spec §3.1, grounded on
// render/path/trace.rs's `(post_tension, pre_tension, section)` triple).
type TracePart struct {
	PostTension float64
	PreTension  float64
	Section     Section
}

// Trace is an ordered sequence of parts, joined end to end, forming the
// composite path a feature's geometry is drawn along.
type Trace struct {
	Parts []TracePart
}

// NewTrace builds a Trace from parts, requiring at least one (spec
// invariant: "a trace has at least one section").
func NewTrace(parts []TracePart) (Trace, error) {
	if len(parts) == 0 {
		return Trace{}, fmt.Errorf("trace: must have at least one section")
	}
	return Trace{Parts: parts}, nil
}

// Segments resolves the whole trace to a single ordered sequence of
// Bézier segments, joining adjacent parts with curve.Connect using each
// part's tensions -- mirroring trace.rs's SegmentIter, which synthesises
// a connecting segment at each part boundary rather than concatenating
// parts' segments directly.
func (t Trace) Segments() []curve.Segment {
	var out []curve.Segment
	for i, part := range t.Parts {
		segs := part.Section.Segments()
		if len(segs) == 0 {
			continue
		}
		if len(out) == 0 {
			out = append(out, segs...)
			continue
		}
		prevTension := t.Parts[i-1].PostTension
		joint := curve.Connect(out[len(out)-1], prevTension, part.PreTension, segs[0])
		out[len(out)-1] = joint
		out = append(out, segs[1:]...)
	}
	return out
}

// Bounds returns the union bounding box of every part's section -- used
// directly as storage_bounds() for features built from a single trace
// (spec §3.1, §5's Feature.storage_bounds()).
func (t Trace) Bounds() geo.Rect {
	r := geo.EmptyRect()
	for _, part := range t.Parts {
		r = r.Union(part.Section.Bounds())
	}
	return r
}

// ArcLength returns the total arc length of the resolved trace at the
// given accuracy, summing each segment's own length.
func (t Trace) ArcLength(accuracy float64) float64 {
	total := 0.0
	for _, seg := range t.Segments() {
		total += seg.ArcLength(0, 1, accuracy)
	}
	return total
}

// Partition divides the trace's resolved segments into n equal-arclength
// pieces, returning the n+1 cut points (start and end included) as
// storage-space points in order -- grounded on trace.rs's PartitionIter, used by the
// renderer to lay out evenly spaced dashes and markings (spec §4.6's
// "divide the outline arc-length by the nominal segment length, round to
// the nearest integer N, and redistribute evenly").
func (t Trace) Partition(n int, accuracy float64) []geo.Point {
	if n <= 0 {
		return nil
	}
	segs := t.Segments()
	total := 0.0
	for _, seg := range segs {
		total += seg.ArcLength(0, 1, accuracy)
	}
	if total == 0 {
		return nil
	}

	points := make([]geo.Point, 0, n+1)
	step := total / float64(n)
	var segIdx int
	var segStart float64 // arc length consumed before the current segment
	var accLen float64

	next := func(target float64) geo.Point {
		for segIdx < len(segs) {
			segLen := segs[segIdx].ArcLength(0, 1, accuracy)
			if accLen+segLen >= target || segIdx == len(segs)-1 {
				within := target - accLen
				t := segs[segIdx].ArcTime(within, accuracy)
				return segs[segIdx].Point(t)
			}
			accLen += segLen
			segStart = accLen
			segIdx++
		}
		_ = segStart
		last := segs[len(segs)-1]
		return last.Point(1)
	}

	for i := 0; i <= n; i++ {
		points = append(points, next(step*float64(i)))
	}
	return points
}
