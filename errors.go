package cardforge

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by Check.
var (
	ErrNotContiguous        = errors.New("cardforge: component ids are not contiguous")
	ErrDanglingPrerequisite = errors.New("cardforge: prerequisite names a missing component")
)

// IsIntegrityError reports whether err comes from Check.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrNotContiguous) || errors.Is(err, ErrDanglingPrerequisite)
}

// Check verifies that ids run 1..N in list order and that every
// prerequisite names a component of the list. It returns the first
// violation found, or nil.
//
// Check does not look for cycles or self-references.
func Check(list List) error {
	for i, c := range list {
		if c.ID != i+1 {
			return fmt.Errorf("%w: position %d has id %d", ErrNotContiguous, i+1, c.ID)
		}
	}
	for _, c := range list {
		for _, p := range c.Prerequisites {
			if p < 1 || p > len(list) {
				return fmt.Errorf("%w: component %d requires %d", ErrDanglingPrerequisite, c.ID, p)
			}
		}
	}
	return nil
}
