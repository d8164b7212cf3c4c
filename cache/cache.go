// Package cache stores generated card results keyed by content fingerprint.
//
// A fingerprint changes whenever the components, the words to avoid or the
// card idea change, so an entry never needs invalidation: edited cards simply
// produce a different key.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pthm/cardforge"
)

var (
	// ErrNotFound is returned by Get when no entry exists for the key.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrInvalidKey is returned when a key is not an 8-char fingerprint.
	ErrInvalidKey = errors.New("cache: invalid key")
)

// Entry is a cached generation result.
type Entry struct {
	Text      string
	CreatedAt time.Time
}

// Store is implemented by MemoryStore, PostgresStore and CachedStore.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, entry Entry) error
}

func checkKey(key string) error {
	if !cardforge.ValidFingerprint(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
