// Package ruleimport discovers a region's rule files on disk (spec
// §6.1): "rule files (*.map) from another [directory]. The special
// file init.map in a rules directory defines variables visible to
// every file in that directory and below." It does not itself parse
// or evaluate the DSL those files contain (that is internal/dsl's
// job) -- it only walks the tree, reads each file's raw source, and
// works out which init.map files govern which rule file, in the
// outermost-to-innermost order internal/dsl's Scope chain needs to
// apply them.
package ruleimport

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/railwayhistory/railmap/internal/diag"
)

// initFileName is the reserved file name whose variables apply to
// every rule file in its directory and below (spec §6.1).
const initFileName = "init.map"

// File is one loaded rule file's raw source.
type File struct {
	// Path is the file's location relative to the rules directory
	// root, using forward slashes regardless of OS.
	Path   string
	Source []byte
}

// RuleFile is a non-init rule file together with the chain of init.map
// files that govern it, ordered from the rules directory root down to
// its own directory -- the order internal/dsl's Scope chain should
// apply them in, so a deeper init.map's variables shadow a shallower
// one's.
type RuleFile struct {
	File
	Inits []File
}

// Tree is the full result of walking one region's rules_dir.
type Tree struct {
	Rules []RuleFile
}

// LoadDir walks dir for *.map files, recursively, and returns the rule
// tree with each file's governing init.map chain resolved. I/O errors
// reading an individual file are accumulated as diagnostics rather
// than aborting the whole walk; only a failure to walk the directory
// itself is a hard error.
func LoadDir(dir string) (*Tree, *diag.Diagnostics, error) {
	var d diag.Diagnostics

	inits := map[string]File{} // directory (rel to dir) -> its init.map, if any
	var ruleDirs []string      // directories containing at least one non-init rule file
	ruleFilesByDir := map[string][]string{}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(path) != ".map" {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		relDir := filepath.ToSlash(filepath.Dir(rel))

		if entry.Name() == initFileName {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				d.Add(diag.Pos{File: rel}, "reading init file: %v", readErr)
				return nil
			}
			inits[relDir] = File{Path: rel, Source: data}
			return nil
		}

		if _, ok := ruleFilesByDir[relDir]; !ok {
			ruleDirs = append(ruleDirs, relDir)
		}
		ruleFilesByDir[relDir] = append(ruleFilesByDir[relDir], rel)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("ruleimport: walking %s: %w", dir, err)
	}

	sort.Strings(ruleDirs)
	tree := &Tree{}
	for _, relDir := range ruleDirs {
		paths := ruleFilesByDir[relDir]
		sort.Strings(paths)
		for _, rel := range paths {
			data, readErr := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
			if readErr != nil {
				d.Add(diag.Pos{File: rel}, "reading rule file: %v", readErr)
				continue
			}
			tree.Rules = append(tree.Rules, RuleFile{
				File:  File{Path: rel, Source: data},
				Inits: initChain(inits, relDir),
			})
		}
	}

	return tree, &d, nil
}

// initChain returns the init.map files governing relDir, ordered from
// the rules directory root down to relDir itself.
func initChain(inits map[string]File, relDir string) []File {
	var dirs []string
	for d := relDir; ; d = filepath.ToSlash(filepath.Dir(d)) {
		dirs = append(dirs, d)
		if d == "." {
			break
		}
	}

	var chain []File
	for i := len(dirs) - 1; i >= 0; i-- {
		if f, ok := inits[dirs[i]]; ok {
			chain = append(chain, f)
		}
	}
	return chain
}
