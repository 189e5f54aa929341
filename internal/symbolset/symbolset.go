// Package symbolset implements the DSL's SymbolSet value (spec §3.4/§4):
// an ordered set of short flag-like tokens, such as ":double:tight:closed",
// that built-in procedures consume one at a time. Any token left
// unconsumed after a procedure call is a hard evaluation error.
package symbolset

import "sort"

// Set is an ordered, consuming set of symbol names.
type Set struct {
	names []string
	taken map[string]bool
}

// New builds a Set from the given names, sorted and deduplicated, as
// they appear written in the DSL (e.g. `:double:tight`).
func New(names ...string) Set {
	uniq := make(map[string]struct{}, len(names))
	for _, n := range names {
		uniq[n] = struct{}{}
	}
	out := make([]string, 0, len(uniq))
	for n := range uniq {
		out = append(out, n)
	}
	sort.Strings(out)
	return Set{names: out, taken: make(map[string]bool, len(out))}
}

// Take consumes the named symbol if present and not already taken,
// reporting whether it was found. A symbol can only be taken once.
func (s *Set) Take(name string) bool {
	for _, n := range s.names {
		if n == name && !s.taken[n] {
			s.taken[n] = true
			return true
		}
	}
	return false
}

// Has reports whether name is present, regardless of whether it has
// already been taken.
func (s Set) Has(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Remaining returns the symbols that have not yet been taken, in sorted
// order -- used to report the "unused tokens after evaluation" error
// spec §4.1 requires for built-in procedure calls.
func (s Set) Remaining() []string {
	var out []string
	for _, n := range s.names {
		if !s.taken[n] {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the total number of symbols in the set, taken or not.
func (s Set) Len() int { return len(s.names) }

// String renders the set in its DSL literal form, e.g. ":double:tight".
func (s Set) String() string {
	out := ""
	for _, n := range s.names {
		out += ":" + n
	}
	return out
}
