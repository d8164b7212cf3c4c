package cache

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// CachedStore puts a MemoryStore in front of a slower origin Store.
// Origin hits are copied into memory; writes go to both.
type CachedStore struct {
	memory *MemoryStore
	origin Store
	logger *zap.Logger
}

// NewCachedStore layers memory over origin. A nil logger is replaced with a
// no-op logger.
func NewCachedStore(memory *MemoryStore, origin Store, logger *zap.Logger) *CachedStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{memory: memory, origin: origin, logger: logger}
}

func (s *CachedStore) Get(ctx context.Context, key string) (Entry, error) {
	entry, err := s.memory.Get(ctx, key)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Entry{}, err
	}

	entry, err = s.origin.Get(ctx, key)
	if err != nil {
		return Entry{}, err
	}
	if err := s.memory.Put(ctx, key, entry); err != nil {
		s.logger.Warn("cache fill failed", zap.String("key", key), zap.Error(err))
	}
	return entry, nil
}

// Put writes the origin first and fills memory only when that succeeds.
func (s *CachedStore) Put(ctx context.Context, key string, entry Entry) error {
	if err := s.origin.Put(ctx, key, entry); err != nil {
		return err
	}
	return s.memory.Put(ctx, key, entry)
}
