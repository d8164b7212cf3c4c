package cardforge

// Renumber reassigns ids 1..N in list order and remaps every prerequisite
// through the same mapping. Prerequisites naming an id that is not in the
// list are dropped.
//
// Renumber never fails. When an old id occurs more than once, references to
// it resolve to its first occurrence. On a list that is already contiguous
// and free of dangling references the result equals the input.
func Renumber(list List) List {
	mapping := make(map[int]int, len(list))
	for i, c := range list {
		if _, seen := mapping[c.ID]; !seen {
			mapping[c.ID] = i + 1
		}
	}

	out := make(List, len(list))
	for i, c := range list {
		prereqs := make([]int, 0, len(c.Prerequisites))
		for _, p := range c.Prerequisites {
			if id, ok := mapping[p]; ok {
				prereqs = append(prereqs, id)
			}
		}
		out[i] = Component{
			ID:            i + 1,
			Text:          c.Text,
			Prerequisites: prereqs,
		}
	}
	return out
}
