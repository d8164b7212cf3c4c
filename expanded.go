package cardforge

import "sort"

// ExpandedSet records which components are expanded in the editor.
//
// The zero value is an empty set. Toggle and Prune return new sets; a set
// handed to a renderer is never changed behind its back.
type ExpandedSet struct {
	ids map[int]struct{}
}

// NewExpandedSet builds a set from ids.
func NewExpandedSet(ids ...int) ExpandedSet {
	s := ExpandedSet{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is expanded.
func (s ExpandedSet) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of expanded ids.
func (s ExpandedSet) Len() int {
	return len(s.ids)
}

// Toggle returns a copy of s with id flipped.
func (s ExpandedSet) Toggle(id int) ExpandedSet {
	out := NewExpandedSet(s.IDs()...)
	if out.Contains(id) {
		delete(out.ids, id)
	} else {
		out.ids[id] = struct{}{}
	}
	return out
}

// Prune returns a copy of s without ids that are absent from list.
func (s ExpandedSet) Prune(list List) ExpandedSet {
	out := NewExpandedSet()
	for _, c := range list {
		if s.Contains(c.ID) {
			out.ids[c.ID] = struct{}{}
		}
	}
	return out
}

// IDs returns the expanded ids in ascending order.
func (s ExpandedSet) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
