package pathmodel

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/railwayhistory/railmap/internal/geo"
)

func straightPath(t *testing.T) *BasePath {
	t.Helper()
	nodes := []Node{
		{Name: "a", Point: geo.Point{X: 0, Y: 0}},
		{Name: "b", Point: geo.Point{X: 10, Y: 0}},
		{Name: "c", Point: geo.Point{X: 20, Y: 0}},
	}
	p, err := NewBasePath("straight", nodes)
	if err != nil {
		t.Fatalf("NewBasePath: %v", err)
	}
	return p
}

func TestNewBasePathRejectsTooFewNodes(t *testing.T) {
	_, err := NewBasePath("short", []Node{{Name: "a"}})
	if err == nil {
		t.Fatal("expected error for single-node path")
	}
}

func TestNewBasePathRejectsDuplicateNames(t *testing.T) {
	nodes := []Node{
		{Name: "a", Point: geo.Point{X: 0, Y: 0}},
		{Name: "a", Point: geo.Point{X: 1, Y: 0}},
	}
	_, err := NewBasePath("dup", nodes)
	if err == nil {
		t.Fatal("expected error for duplicate node name")
	}
}

func TestLocationResolveClampsOutOfRange(t *testing.T) {
	p := straightPath(t)
	loc := Location{NodeIndex: 0, Distance: -1000}
	st := loc.Resolve(p)
	if st.Segment != 0 || st.T != 0 {
		t.Fatalf("expected clamp to start, got %+v", st)
	}
	loc = Location{NodeIndex: 0, Distance: 1000}
	st = loc.Resolve(p)
	if st.Segment != p.SegmentCount()-1 || st.T != 1 {
		t.Fatalf("expected clamp to end, got %+v", st)
	}
}

func TestLocationResolveMidpoint(t *testing.T) {
	p := straightPath(t)
	loc := Location{NodeIndex: 0, Distance: 10}
	pt := loc.Point(p)
	b, _ := p.NodeIndex("b")
	want := p.Node(b).Point
	if pt.Dist(want) > 1e-6 {
		t.Fatalf("expected to land on node b, got %+v want %+v", pt, want)
	}
}

// Property 8 (spec §8.8): a subpath's bounds must contain its resolved
// sample points.
func TestSubpathBoundsContainSamples(t *testing.T) {
	p := straightPath(t)
	rapid.Check(t, func(rt *rapid.T) {
		d0 := rapid.Float64Range(0, 20).Draw(rt, "d0")
		d1 := rapid.Float64Range(0, 20).Draw(rt, "d1")
		sub := Subpath{
			Path:  p,
			Start: Location{NodeIndex: 0, Distance: d0},
			End:   Location{NodeIndex: 0, Distance: d1},
		}
		b := sub.Bounds()
		for _, seg := range sub.Segments() {
			for i := 0; i <= 16; i++ {
				pt := seg.Point(float64(i) / 16)
				if !b.Contains(pt) {
					rt.Fatalf("bounds %+v do not contain %+v", b, pt)
				}
			}
		}
	})
}

func TestSubpathReversedTraversal(t *testing.T) {
	p := straightPath(t)
	sub := Subpath{
		Path:  p,
		Start: Location{NodeIndex: 0, Distance: 20},
		End:   Location{NodeIndex: 0, Distance: 0},
	}
	segs := sub.Segments()
	if len(segs) == 0 {
		t.Fatal("expected segments")
	}
	start := segs[0].Point(0)
	if math.Abs(start.X-20) > 1e-6 {
		t.Fatalf("expected reversed subpath to start at x=20, got %+v", start)
	}
}

func TestTraceRequiresAtLeastOneSection(t *testing.T) {
	_, err := NewTrace(nil)
	if err == nil {
		t.Fatal("expected error for empty trace")
	}
}

func TestTraceSegmentsJoinParts(t *testing.T) {
	p := straightPath(t)
	sub1 := Subpath{Path: p, Start: Location{NodeIndex: 0}, End: Location{NodeIndex: 0, Distance: 10}}
	sub2 := Subpath{Path: p, Start: Location{NodeIndex: 0, Distance: 10}, End: Location{NodeIndex: 0, Distance: 20}}
	tr, err := NewTrace([]TracePart{
		{PostTension: 1, PreTension: 1, Section: sub1},
		{PostTension: 1, PreTension: 1, Section: sub2},
	})
	if err != nil {
		t.Fatalf("NewTrace: %v", err)
	}
	segs := tr.Segments()
	if len(segs) != 2 {
		t.Fatalf("expected 2 joined segments, got %d", len(segs))
	}
	if segs[0].P3.Dist(segs[1].P0) > 1e-9 {
		t.Fatalf("joined segments don't meet: %+v vs %+v", segs[0].P3, segs[1].P0)
	}
}

func TestTraceArcLengthMatchesPathLength(t *testing.T) {
	p := straightPath(t)
	sub := Subpath{Path: p, Start: Location{NodeIndex: 0}, End: Location{NodeIndex: 0, Distance: 20}}
	tr, _ := NewTrace([]TracePart{{PostTension: 1, PreTension: 1, Section: sub}})
	got := tr.ArcLength(1e-9)
	if math.Abs(got-20) > 1e-6 {
		t.Fatalf("arc length = %v, want 20", got)
	}
}

func TestTracePartitionEndpoints(t *testing.T) {
	p := straightPath(t)
	sub := Subpath{Path: p, Start: Location{NodeIndex: 0}, End: Location{NodeIndex: 0, Distance: 20}}
	tr, _ := NewTrace([]TracePart{{PostTension: 1, PreTension: 1, Section: sub}})
	pts := tr.Partition(4, 1e-9)
	if len(pts) != 5 {
		t.Fatalf("expected 5 partition points, got %d", len(pts))
	}
	if pts[0].Dist(geo.Point{X: 0, Y: 0}) > 1e-6 {
		t.Fatalf("first partition point = %+v, want origin", pts[0])
	}
	if pts[len(pts)-1].Dist(geo.Point{X: 20, Y: 0}) > 1e-6 {
		t.Fatalf("last partition point = %+v, want (20,0)", pts[len(pts)-1])
	}
}

func TestEdgeBoundsContainsEndpoints(t *testing.T) {
	p := straightPath(t)
	e := Edge{
		From: Position{Path: p, At: Location{NodeIndex: 0}},
		To:   Position{Path: p, At: Location{NodeIndex: 0, Distance: 20}},
	}
	b := e.Bounds()
	from, _ := e.From.Resolve()
	to, _ := e.To.Resolve()
	if !b.Contains(from) || !b.Contains(to) {
		t.Fatalf("edge bounds %+v do not contain endpoints %+v, %+v", b, from, to)
	}
}

func TestPositionSidewaysOffset(t *testing.T) {
	p := straightPath(t)
	pos := Position{Path: p, At: Location{NodeIndex: 0, Distance: 10}, Sideways: 5}
	pt, _ := pos.Resolve()
	// The path runs along +X; geo.Vector.Perp()'s "left of travel"
	// convention rotates by +90 degrees, landing on +Y here.
	if math.Abs(pt.X-10) > 1e-6 || math.Abs(pt.Y-5) > 1e-6 {
		t.Fatalf("sideways offset = %+v, want (10,5)", pt)
	}
}
