// SPDX-License-Identifier: MPL-2.0

package environ

import (
	"reflect"
	"testing"
)

func TestFromSlice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []string
		want    map[string]string
	}{
		{
			name:    "plain entries",
			entries: []string{"A=1", "B=2"},
			want:    map[string]string{"A": "1", "B": "2"},
		},
		{
			name:    "value containing separator",
			entries: []string{"PATH=/a:/b", "EQ=x=y"},
			want:    map[string]string{"PATH": "/a:/b", "EQ": "x=y"},
		},
		{
			name:    "empty value kept",
			entries: []string{"EMPTY="},
			want:    map[string]string{"EMPTY": ""},
		},
		{
			name:    "malformed entry dropped",
			entries: []string{"NOSEP", "A=1"},
			want:    map[string]string{"A": "1"},
		},
		{
			name:    "later entry wins",
			entries: []string{"A=1", "A=2"},
			want:    map[string]string{"A": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FromSlice(tt.entries).Map()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromSlice(%v).Map() = %v, want %v", tt.entries, got, tt.want)
			}
		})
	}
}

func TestSnapshotImmutability(t *testing.T) {
	t.Parallel()

	base := FromMap(map[string]string{"A": "1", "B": "2"})

	withC := base.With("C", "3")
	if _, ok := base.Lookup("C"); ok {
		t.Error("With() modified the receiver")
	}
	if got := withC.Get("C"); got != "3" {
		t.Errorf("With() result missing value, got %q", got)
	}

	withoutA := base.Without("A")
	if got := base.Get("A"); got != "1" {
		t.Error("Without() modified the receiver")
	}
	if _, ok := withoutA.Lookup("A"); ok {
		t.Error("Without() result still has the key")
	}

	merged := base.Merge(map[string]string{"B": "overridden", "D": "4"})
	if got := base.Get("B"); got != "2" {
		t.Error("Merge() modified the receiver")
	}
	if got := merged.Get("B"); got != "overridden" {
		t.Errorf("Merge() did not overlay, got B=%q", got)
	}
	if got := merged.Get("D"); got != "4" {
		t.Errorf("Merge() did not add, got D=%q", got)
	}
}

func TestSnapshotZeroValue(t *testing.T) {
	t.Parallel()

	var s Snapshot

	if got := s.Get("MISSING"); got != "" {
		t.Errorf("zero Snapshot Get() = %q, want empty", got)
	}
	if s.Len() != 0 {
		t.Errorf("zero Snapshot Len() = %d, want 0", s.Len())
	}

	withA := s.With("A", "1")
	if got := withA.Get("A"); got != "1" {
		t.Errorf("With() on zero Snapshot, got A=%q", got)
	}
}

func TestSnapshotSliceSorted(t *testing.T) {
	t.Parallel()

	s := FromMap(map[string]string{"Z": "last", "A": "first", "M": "middle"})

	want := []string{"A=first", "M=middle", "Z=last"}
	if got := s.Slice(); !reflect.DeepEqual(got, want) {
		t.Errorf("Slice() = %v, want %v", got, want)
	}

	wantNames := []string{"A", "M", "Z"}
	if got := s.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("Names() = %v, want %v", got, wantNames)
	}
}

func TestSnapshotMapIsCopy(t *testing.T) {
	t.Parallel()

	s := FromMap(map[string]string{"A": "1"})
	m := s.Map()
	m["A"] = "mutated"

	if got := s.Get("A"); got != "1" {
		t.Errorf("mutating Map() result changed the snapshot, got A=%q", got)
	}
}
