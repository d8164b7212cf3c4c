// Package cardforge holds the editing core of a scenario card: an ordered
// list of components (steps) that may name each other as prerequisites,
// and the content fingerprint used to agree on a card's text across
// independently running processes.
//
// # Component Lists
//
// A card owns a List of Components. Component ids are positions: after any
// add or delete the ids form the contiguous range 1..N in list order, and
// no prerequisite names an id outside that range.
//
// Every operation takes the current list and returns a new one. Inputs are
// never mutated, so a caller can keep the previous list around (undo,
// concurrent readers) without copying it first:
//
//	list = cardforge.AddComponent(list)
//	list = cardforge.EditText(list, 1, "Open the door")
//	list = cardforge.DeleteComponent(list, 1)
//
// The same operations are available as a reducer for callers that model
// edits as values:
//
//	list = cardforge.Reduce(list, cardforge.DeleteAction{ID: 2})
//
// Unknown ids are no-ops, never errors. Deletion renumbers the survivors and
// drops every prerequisite that pointed at the removed component.
//
// # Fingerprints
//
// Fingerprint returns 8 lowercase hex characters (djb2 over UTF-16 code
// units of a fixed template). It is an agreement key, not a security
// primitive:
//
//	key := cardforge.Fingerprint(cardforge.ComponentsText(list), avoid, idea)
//
// Any other implementation (browser, edge function) that hashes the same
// code-unit sequence produces the same key. The vectors in
// testdata/fingerprint_vectors.json pin the expected output.
package cardforge
