// Package tileformat ties a tileid.ID's format to the matching
// internal/canvas backend and the renderer, producing the final tile
// bytes a server handler writes to the response body (C9's remaining
// glue beyond internal/tileid itself).
package tileformat

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/railwayhistory/railmap/internal/canvas/pngcanvas"
	"github.com/railwayhistory/railmap/internal/canvas/svgcanvas"
	"github.com/railwayhistory/railmap/internal/featurestore"
	"github.com/railwayhistory/railmap/internal/renderer"
	"github.com/railwayhistory/railmap/internal/style"
	"github.com/railwayhistory/railmap/internal/tileid"
)

// Render builds the Style for id, runs the stage pipeline over store,
// and encodes the result in id.Format, returning the raw tile bytes
// (spec §4.6 step 6: "Clip to tile size, emit through the format's
// surface").
func Render(store *featurestore.Store, id tileid.ID) ([]byte, error) {
	size := id.Format.Size()
	st := style.New(id, size)
	bbox := id.Bounds()

	switch id.Format {
	case tileid.FormatPNG:
		cv := pngcanvas.New(tileid.PixelSize)
		renderer.Render(store, st, bbox, cv)
		var buf bytes.Buffer
		if err := png.Encode(&buf, cv.Image()); err != nil {
			return nil, fmt.Errorf("tileformat: encoding png: %w", err)
		}
		return buf.Bytes(), nil

	case tileid.FormatSVG:
		var buf bytes.Buffer
		cv := svgcanvas.New(&buf, size)
		renderer.Render(store, st, bbox, cv)
		cv.Close()
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("tileformat: unsupported format %v", id.Format)
	}
}
