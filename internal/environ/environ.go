// SPDX-License-Identifier: MPL-2.0

// Package environ provides an immutable snapshot of process environment
// variables. Transforms operate on snapshots and return new ones; the
// ambient process environment is never mutated, only the spawned child
// sees the transformed result.
package environ

import (
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Snapshot is an immutable set of environment variables. The zero value
// is an empty snapshot and is safe to use. All mutating-looking methods
// return a new Snapshot and leave the receiver untouched.
type Snapshot struct {
	vars map[string]string
}

// New creates an empty Snapshot.
func New() Snapshot {
	return Snapshot{vars: map[string]string{}}
}

// Host captures the current process environment.
func Host() Snapshot {
	return FromSlice(os.Environ())
}

// FromSlice builds a Snapshot from "KEY=VALUE" entries. Malformed entries
// without a separator are dropped; absence of a key is equivalent to the
// empty value for all consumers, so nothing is lost.
func FromSlice(entries []string) Snapshot {
	vars := make(map[string]string, len(entries))
	for _, entry := range entries {
		idx := findSeparator(entry)
		if idx == -1 {
			continue
		}
		vars[entry[:idx]] = entry[idx+1:]
	}
	return Snapshot{vars: vars}
}

// FromMap builds a Snapshot from a map, copying it.
func FromMap(vars map[string]string) Snapshot {
	out := make(map[string]string, len(vars))
	maps.Copy(out, vars)
	return Snapshot{vars: out}
}

// Get returns the value for name, or "" when unset. Missing keys are
// treated as empty, not as errors.
func (s Snapshot) Get(name string) string {
	return s.vars[name]
}

// Lookup returns the value for name and whether it is set.
func (s Snapshot) Lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Len returns the number of variables in the snapshot.
func (s Snapshot) Len() int {
	return len(s.vars)
}

// With returns a new Snapshot with name set to value.
func (s Snapshot) With(name, value string) Snapshot {
	out := s.clone(1)
	out.vars[name] = value
	return out
}

// Without returns a new Snapshot with name removed.
func (s Snapshot) Without(name string) Snapshot {
	out := s.clone(0)
	delete(out.vars, name)
	return out
}

// Merge returns a new Snapshot with vars overlaid on the receiver.
// Later values win, matching dotenv-style precedence.
func (s Snapshot) Merge(vars map[string]string) Snapshot {
	out := s.clone(len(vars))
	maps.Copy(out.vars, vars)
	return out
}

// Map returns a copy of the snapshot as a plain map.
func (s Snapshot) Map() map[string]string {
	out := make(map[string]string, len(s.vars))
	maps.Copy(out, s.vars)
	return out
}

// Slice returns the snapshot as sorted "KEY=VALUE" entries, suitable for
// exec.Cmd.Env. Sorting keeps trace output and tests deterministic.
func (s Snapshot) Slice() []string {
	keys := maps.Keys(s.vars)
	slices.Sort(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+s.vars[k])
	}
	return out
}

// Names returns the sorted variable names in the snapshot.
func (s Snapshot) Names() []string {
	keys := maps.Keys(s.vars)
	slices.Sort(keys)
	return keys
}

func (s Snapshot) clone(extra int) Snapshot {
	out := make(map[string]string, len(s.vars)+extra)
	maps.Copy(out, s.vars)
	return Snapshot{vars: out}
}

// findSeparator returns the index of the '=' separator in an environment
// variable entry, or -1 when the entry is malformed.
func findSeparator(entry string) int {
	for i := 0; i < len(entry); i++ {
		if entry[i] == '=' {
			return i
		}
	}
	return -1
}
