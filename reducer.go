package cardforge

// Action is an edit applied to a component list by Reduce.
type Action interface {
	isAction()
}

// AddAction appends a placeholder component.
type AddAction struct{}

// EditTextAction replaces the text of component ID.
type EditTextAction struct {
	ID   int
	Text string
}

// DeleteAction removes component ID and renumbers the rest.
type DeleteAction struct {
	ID int
}

// SetPrerequisitesAction replaces the prerequisites of component ID.
type SetPrerequisitesAction struct {
	ID            int
	Prerequisites []int
}

func (AddAction) isAction()              {}
func (EditTextAction) isAction()         {}
func (DeleteAction) isAction()           {}
func (SetPrerequisitesAction) isAction() {}

// Reduce applies action to list and returns the resulting list.
//
// A nil or unrecognised action renumbers the list, so a caller holding an
// inconsistent list always gets back one that satisfies the id invariants.
func Reduce(list List, action Action) List {
	switch a := action.(type) {
	case AddAction:
		return AddComponent(list)
	case EditTextAction:
		return EditText(list, a.ID, a.Text)
	case DeleteAction:
		return DeleteComponent(list, a.ID)
	case SetPrerequisitesAction:
		return SetPrerequisites(list, a.ID, a.Prerequisites)
	default:
		return Renumber(list)
	}
}

// EditText replaces the text of the component with the given id. Other
// components are untouched. An unknown id returns an unchanged copy.
func EditText(list List, id int, text string) List {
	out := list.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Text = text
			break
		}
	}
	return out
}

// DeleteComponent removes the component with the given id, drops every
// reference to it and renumbers the survivors. An unknown id reduces to
// Renumber(list).
func DeleteComponent(list List, id int) List {
	kept := make(List, 0, len(list))
	removed := false
	for _, c := range list {
		if !removed && c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}

	for i, c := range kept {
		prereqs := make([]int, 0, len(c.Prerequisites))
		for _, p := range c.Prerequisites {
			if p != id {
				prereqs = append(prereqs, p)
			}
		}
		kept[i].Prerequisites = prereqs
	}
	return Renumber(kept)
}

// AddComponent appends a component with id N+1, PlaceholderText and no
// prerequisites.
func AddComponent(list List) List {
	out := make(List, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, Component{
		ID:            len(list) + 1,
		Text:          PlaceholderText,
		Prerequisites: []int{},
	})
	return Renumber(out)
}

// SetPrerequisites replaces the prerequisites of the component with the given
// id. Ids that are not in the list are dropped; order, duplicates and
// self-references are kept as given. An unknown id returns an unchanged copy.
func SetPrerequisites(list List, id int, prereqs []int) List {
	present := make(map[int]bool, len(list))
	for _, c := range list {
		present[c.ID] = true
	}

	out := list.Clone()
	for i := range out {
		if out[i].ID != id {
			continue
		}
		filtered := make([]int, 0, len(prereqs))
		for _, p := range prereqs {
			if present[p] {
				filtered = append(filtered, p)
			}
		}
		out[i].Prerequisites = filtered
		break
	}
	return out
}
