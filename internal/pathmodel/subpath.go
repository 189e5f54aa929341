package pathmodel

import (
	"github.com/railwayhistory/railmap/internal/curve"
	"github.com/railwayhistory/railmap/internal/geo"
)

// Subpath is a run of a BasePath between two locations, optionally
// offset sideways, and traversed in reverse when Start comes after End
// along the path (spec §3.1). A positive Offset shifts the subpath to
// the left of its direction of travel.
type Subpath struct {
	Path   *BasePath
	Start  Location
	End    Location
	Offset float64
}

// reversed reports whether the subpath runs backwards along its path.
func (s Subpath) reversed() bool {
	return s.Start.Resolve(s.Path).Segment > s.End.Resolve(s.Path).Segment ||
		(s.Start.Resolve(s.Path).Segment == s.End.Resolve(s.Path).Segment &&
			s.Start.Resolve(s.Path).T > s.End.Resolve(s.Path).T)
}

// Segments returns the ordered, offset, direction-corrected sequence of
// Bézier segments making up the subpath -- i.e. the resolved geometry a
// renderer traces directly.
func (s Subpath) Segments() []curve.Segment {
	start := s.Start.Resolve(s.Path)
	end := s.End.Resolve(s.Path)
	rev := s.reversed()
	if rev {
		start, end = end, start
	}

	var out []curve.Segment
	if start.Segment == end.Segment {
		seg := s.Path.Segment(start.Segment).Subdivide(start.T, end.T)
		out = append(out, seg)
	} else {
		out = append(out, s.Path.Segment(start.Segment).Subdivide(start.T, 1))
		for i := start.Segment + 1; i < end.Segment; i++ {
			out = append(out, s.Path.Segment(i))
		}
		out = append(out, s.Path.Segment(end.Segment).Subdivide(0, end.T))
	}

	if rev {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
		for i := range out {
			out[i] = out[i].Reverse()
		}
	}

	if s.Offset != 0 {
		for i := range out {
			out[i] = out[i].Offset(s.Offset)
		}
	}
	return out
}

// Bounds returns the union bounding box of the subpath's segments.
func (s Subpath) Bounds() geo.Rect {
	r := geo.EmptyRect()
	for _, seg := range s.Segments() {
		r = r.Union(seg.Bounds())
	}
	return r
}
