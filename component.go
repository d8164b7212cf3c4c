package cardforge

// PlaceholderText is the text given to a freshly added component.
const PlaceholderText = "New component"

// Component is one ordered step of a card's scenario.
//
// ID is the 1-based position in the owning List. Prerequisites names other
// components of the same list by their current id.
type Component struct {
	ID            int    `json:"id" msgpack:"id"`
	Text          string `json:"text" msgpack:"text"`
	Prerequisites []int  `json:"prerequisites" msgpack:"prerequisites"`
}

// Clone returns a copy that shares no memory with c.
func (c Component) Clone() Component {
	out := c
	out.Prerequisites = append([]int{}, c.Prerequisites...)
	return out
}

// HasPrerequisite reports whether c lists id as a prerequisite.
func (c Component) HasPrerequisite(id int) bool {
	for _, p := range c.Prerequisites {
		if p == id {
			return true
		}
	}
	return false
}

// List is the ordered component collection of a single card.
type List []Component

// Clone deep-copies the list.
func (l List) Clone() List {
	out := make(List, len(l))
	for i, c := range l {
		out[i] = c.Clone()
	}
	return out
}

// IDs returns the component ids in list order.
func (l List) IDs() []int {
	ids := make([]int, len(l))
	for i, c := range l {
		ids[i] = c.ID
	}
	return ids
}

// Find returns the first component with the given id.
func (l List) Find(id int) (Component, bool) {
	for _, c := range l {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return Component{}, false
}

// Card is the editor state that owns a component list.
type Card struct {
	ID           string `json:"id" msgpack:"id"`
	Components   List   `json:"components" msgpack:"components"`
	WordsToAvoid string `json:"wordsToAvoid" msgpack:"avoid"`
	Idea         string `json:"cardIdea" msgpack:"idea"`
}

// Clone deep-copies the card.
func (c Card) Clone() Card {
	out := c
	out.Components = c.Components.Clone()
	return out
}

// Apply reduces the card's components with action and returns the new card.
func (c Card) Apply(action Action) Card {
	out := c
	out.Components = Reduce(c.Components, action)
	return out
}

// ContentText returns the template the card's fingerprint is computed over.
func (c Card) ContentText() string {
	return ContentText(ComponentsText(c.Components), c.WordsToAvoid, c.Idea)
}

// Fingerprint returns the content fingerprint of the card.
func (c Card) Fingerprint() string {
	return Fingerprint(ComponentsText(c.Components), c.WordsToAvoid, c.Idea)
}
