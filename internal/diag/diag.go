// Package diag implements the accumulated-diagnostics error model shared
// by the DSL parser, the evaluator and the path importer (spec §7):
// parse/eval/path-resolution errors never abort the surrounding pass,
// they are collected with a source position and reported together.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Pos is a source position within a single file: byte offset plus the
// 1-based line/column a human would use to find it in an editor.
type Pos struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Severity distinguishes a hard failure from an advisory note.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one accumulated error or warning anchored at a position.
type Diagnostic struct {
	Pos      Pos
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Diagnostics collects diagnostics across an entire parse/eval pass. A
// nil *Diagnostics is valid and silently discards everything, so callers
// that don't care about diagnostics can pass one without a nil check.
type Diagnostics struct {
	items []Diagnostic
}

// Add appends an error-severity diagnostic.
func (d *Diagnostics) Add(pos Pos, format string, args ...interface{}) {
	if d == nil {
		return
	}
	d.items = append(d.items, Diagnostic{
		Pos:      pos,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warn appends a warning-severity diagnostic.
func (d *Diagnostics) Warn(pos Pos, format string, args ...interface{}) {
	if d == nil {
		return
	}
	d.items = append(d.items, Diagnostic{
		Pos:      pos,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Len returns the number of accumulated diagnostics (errors and warnings).
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	if d == nil {
		return false
	}
	for _, item := range d.items {
		if item.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Items returns the accumulated diagnostics, sorted by file then position,
// for deterministic reporting.
func (d *Diagnostics) Items() []Diagnostic {
	if d == nil {
		return nil
	}
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos.File != out[j].Pos.File {
			return out[i].Pos.File < out[j].Pos.File
		}
		return out[i].Pos.Offset < out[j].Pos.Offset
	})
	return out
}

// Extend appends every diagnostic from other onto d.
func (d *Diagnostics) Extend(other *Diagnostics) {
	if d == nil || other == nil {
		return
	}
	d.items = append(d.items, other.items...)
}

// Err combines every error-severity diagnostic into a single error using
// go.uber.org/multierr, or returns nil if there are none. Warnings are
// never surfaced in the combined error; callers that want them call
// Items directly.
func (d *Diagnostics) Err() error {
	if d == nil {
		return nil
	}
	var combined error
	for _, item := range d.items {
		if item.Severity != SeverityError {
			continue
		}
		combined = multierr.Append(combined, fmt.Errorf("%s", item.String()))
	}
	return combined
}

// Report renders every diagnostic as a multi-line human-readable report,
// one line per diagnostic, sorted for determinism.
func (d *Diagnostics) Report() string {
	var b strings.Builder
	for _, item := range d.Items() {
		b.WriteString(item.String())
		b.WriteByte('\n')
	}
	return b.String()
}
