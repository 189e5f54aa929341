package tileid

import "testing"

func TestParsePathValid(t *testing.T) {
	id, err := ParsePath("/3/4/2.png")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if id.Zoom != 3 || id.X != 4 || id.Y != 2 || id.Format != FormatPNG {
		t.Fatalf("unexpected id: %+v", id)
	}
}

// E6: a request for a zoom beyond MaxZoom must fail to parse (server
// maps this to 404).
func TestParsePathRejectsExcessiveZoom(t *testing.T) {
	_, err := ParsePath("/21/0/0.png")
	if err == nil {
		t.Fatal("expected error for zoom > 20")
	}
}

func TestParsePathRejectsOutOfRangeCoordinate(t *testing.T) {
	_, err := ParsePath("/2/4/0.png")
	if err == nil {
		t.Fatal("expected error: x=4 is out of range for zoom 2 (max 3)")
	}
}

func TestParsePathRejectsUnknownFormat(t *testing.T) {
	_, err := ParsePath("/3/4/2.jpg")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParsePathRejectsTrailingSegments(t *testing.T) {
	_, err := ParsePath("/3/4/2.png/extra")
	if err == nil {
		t.Fatal("expected error for trailing path segment")
	}
}

func TestContentType(t *testing.T) {
	if FormatPNG.ContentType() != "image/png" {
		t.Errorf("png content type = %q", FormatPNG.ContentType())
	}
	if FormatSVG.ContentType() != "image/svg+xml" {
		t.Errorf("svg content type = %q", FormatSVG.ContentType())
	}
}

func TestStringRoundTrip(t *testing.T) {
	id, _ := ParsePath("/3/4/2.png")
	if id.String() != "3/4/2.png" {
		t.Errorf("String() = %q", id.String())
	}
}

func TestBoundsMatchesLonLatRange(t *testing.T) {
	id, _ := ParsePath("/3/4/2.png")
	b := id.Bounds()
	lon := id.LonRange()
	if b.MinX*360-180 < lon[0]-1e-9 || b.MinX*360-180 > lon[0]+1e-9 {
		t.Errorf("bounds MinX doesn't correspond to west longitude")
	}
}
