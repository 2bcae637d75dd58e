package rewrite

import (
	"slices"
	"strings"
)

// State is the program knowledge carried forward across lines: which
// variables hold the SID base address and which helper variables have been
// referenced. State is an immutable value; every With method returns a new
// State and leaves the receiver untouched.
type State struct {
	bases   []baseVar
	helpers []string
}

type baseVar struct {
	name string
	addr int
}

// KnownBase returns the address assigned to the named base variable.
// Names are compared case-insensitively.
func (s State) KnownBase(name string) (int, bool) {
	name = strings.ToUpper(name)
	for _, b := range s.bases {
		if b.name == name {
			return b.addr, true
		}
	}
	return 0, false
}

// WithBase records that name holds addr.
func (s State) WithBase(name string, addr int) State {
	name = strings.ToUpper(name)
	bases := slices.Clone(s.bases)
	if i := slices.IndexFunc(bases, func(b baseVar) bool { return b.name == name }); i >= 0 {
		bases[i].addr = addr
	} else {
		bases = append(bases, baseVar{name: name, addr: addr})
	}
	s.bases = bases
	return s
}

// BaseVars returns the recorded base variable names in the order they were
// first assigned.
func (s State) BaseVars() []string {
	names := make([]string, len(s.bases))
	for i, b := range s.bases {
		names[i] = b.name
	}
	return names
}

// WithHelper registers a referenced helper variable.
func (s State) WithHelper(name string) State {
	if slices.Contains(s.helpers, name) {
		return s
	}
	s.helpers = append(slices.Clip(s.helpers), name)
	return s
}

// Helpers returns the referenced helper variables in first-use order.
func (s State) Helpers() []string {
	return slices.Clone(s.helpers)
}
