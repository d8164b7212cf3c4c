package cardforge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandedSetZeroValue(t *testing.T) {
	var s ExpandedSet
	if s.Contains(1) {
		t.Error("zero set contains 1")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if got := s.Toggle(1); !got.Contains(1) {
		t.Error("Toggle on zero set did not add id")
	}
}

func TestExpandedSetToggleReturnsCopy(t *testing.T) {
	s := NewExpandedSet(1, 3)
	next := s.Toggle(3).Toggle(2)

	if diff := cmp.Diff([]int{1, 3}, s.IDs()); diff != "" {
		t.Errorf("original changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, next.IDs()); diff != "" {
		t.Errorf("toggled set mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandedSetPrune(t *testing.T) {
	s := NewExpandedSet(1, 2, 5)
	got := s.Prune(List{{ID: 1}, {ID: 2}})
	if diff := cmp.Diff([]int{1, 2}, got.IDs()); diff != "" {
		t.Errorf("Prune() mismatch (-want +got):\n%s", diff)
	}
}
