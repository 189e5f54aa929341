package geo

import "testing"

func TestProjectUnprojectRoundTrip(t *testing.T) {
	cases := []LatLon{
		{Lon: 10.0, Lat: 50.0},
		{Lon: -179.9, Lat: -85.0},
		{Lon: 0, Lat: 0},
		{Lon: 179.9, Lat: 84.9},
	}
	for _, ll := range cases {
		p := Project(ll)
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Fatalf("Project(%v) = %v out of unit square", ll, p)
		}
		back := Unproject(p)
		if diff := back.Lon - ll.Lon; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("lon round-trip: got %v, want %v", back.Lon, ll.Lon)
		}
		if diff := back.Lat - ll.Lat; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("lat round-trip: got %v, want %v", back.Lat, ll.Lat)
		}
	}
}

func TestRectUnion(t *testing.T) {
	r := EmptyRect()
	r = r.UnionPoint(Point{X: 1, Y: 2})
	r = r.UnionPoint(Point{X: -1, Y: 5})
	if r.MinX != -1 || r.MaxX != 1 || r.MinY != 2 || r.MaxY != 5 {
		t.Fatalf("unexpected rect: %+v", r)
	}
	if !r.Contains(Point{X: 0, Y: 3}) {
		t.Errorf("expected rect to contain (0,3)")
	}
	if r.Contains(Point{X: 10, Y: 3}) {
		t.Errorf("rect should not contain (10,3)")
	}
}

func TestVectorPerp(t *testing.T) {
	v := Vector{Dx: 1, Dy: 0}
	p := v.Perp()
	if p.Dx != 0 || p.Dy != 1 {
		t.Fatalf("perp of (1,0) = %+v, want (0,1)", p)
	}
}
