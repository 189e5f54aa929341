// Package pathimport loads the base path files a region's paths_dir
// holds (spec §6.2): "each file yields a mapping from string → path. A
// path is a sequence of named nodes with coordinates in degrees; nodes
// may carry a named location and an along-path distance; tensions
// default to 1."
//
// The spec explicitly abstracts the on-disk encoding ("a compact
// binary-or-textual format"); the original's own encoding is a Rust
// binary format not present in the retrieved source. This package
// therefore defines and parses its own small textual stand-in, using
// the same line-oriented, diagnostics-accumulating style
// internal/config's TOML loader and internal/diag use elsewhere in
// this module (spec §7: "accumulated, never thrown").
package pathimport

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/railwayhistory/railmap/internal/diag"
	"github.com/railwayhistory/railmap/internal/geo"
	"github.com/railwayhistory/railmap/internal/pathmodel"
)

// Set is the loaded collection of named base paths from one region's
// paths_dir, keyed by path name across every file in the directory.
type Set struct {
	paths map[string]*pathmodel.BasePath
}

// Lookup resolves a path("name") reference (spec §4.1's built-in
// function table).
func (s *Set) Lookup(name string) (*pathmodel.BasePath, bool) {
	p, ok := s.paths[name]
	return p, ok
}

// Len reports how many named paths were loaded.
func (s *Set) Len() int { return len(s.paths) }

// Names returns every loaded path's name, so a caller can bind each one
// into a DSL root scope before evaluating rule files (spec §4.1: a bare
// identifier naming a path is a variable reference, resolved the same
// way as any other `let`-bound name).
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.paths))
	for name := range s.paths {
		names = append(names, name)
	}
	return names
}

// LoadDir walks dir for *.paths files and parses each into Set,
// accumulating diagnostics across every file rather than aborting on
// the first bad one (spec §7).
func LoadDir(dir string) (*Set, *diag.Diagnostics, error) {
	var d diag.Diagnostics
	set := &Set{paths: make(map[string]*pathmodel.BasePath)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("pathimport: reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".paths") {
			continue
		}
		file := filepath.Join(dir, entry.Name())
		if err := loadFile(file, set, &d); err != nil {
			return nil, nil, fmt.Errorf("pathimport: %s: %w", file, err)
		}
	}

	return set, &d, nil
}

func loadFile(file string, set *Set, d *diag.Diagnostics) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var (
		name  string
		nodes []pathmodel.Node
		line  int
	)

	flush := func() {
		if name == "" {
			return
		}
		bp, err := pathmodel.NewBasePath(name, nodes)
		if err != nil {
			d.Add(diag.Pos{File: file, Line: line}, "%v", err)
		} else {
			set.paths[name] = bp
		}
		name, nodes = "", nil
	}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		switch fields[0] {
		case "path":
			flush()
			if len(fields) != 2 {
				d.Add(diag.Pos{File: file, Line: line}, "path: expected exactly one name")
				continue
			}
			name = fields[1]

		case "end":
			flush()

		case "node":
			node, err := parseNode(fields[1:])
			if err != nil {
				d.Add(diag.Pos{File: file, Line: line}, "node: %v", err)
				continue
			}
			nodes = append(nodes, node)

		default:
			d.Add(diag.Pos{File: file, Line: line}, "unexpected token %q", fields[0])
		}
	}
	flush()

	return scanner.Err()
}

// parseNode parses "[name=<label>] <lon> <lat> [pre=<t>] [post=<t>]".
func parseNode(fields []string) (pathmodel.Node, error) {
	var node pathmodel.Node
	var coords []float64

	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "name="):
			node.Name = strings.TrimPrefix(f, "name=")
		case strings.HasPrefix(f, "pre="):
			v, err := strconv.ParseFloat(strings.TrimPrefix(f, "pre="), 64)
			if err != nil {
				return node, fmt.Errorf("bad pre tension %q: %w", f, err)
			}
			node.PreTension = v
		case strings.HasPrefix(f, "post="):
			v, err := strconv.ParseFloat(strings.TrimPrefix(f, "post="), 64)
			if err != nil {
				return node, fmt.Errorf("bad post tension %q: %w", f, err)
			}
			node.PostTension = v
		default:
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return node, fmt.Errorf("bad coordinate %q: %w", f, err)
			}
			coords = append(coords, v)
		}
	}

	if len(coords) != 2 {
		return node, fmt.Errorf("expected 2 coordinates (lon, lat), got %d", len(coords))
	}
	node.Point = geo.Project(geo.LatLon{Lon: coords[0], Lat: coords[1]})
	return node, nil
}
