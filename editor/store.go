package editor

import (
	"sort"
	"sync"

	"github.com/pthm/cardforge"
)

// CardStore holds the authoritative card state. Update replaces a card with
// the value returned by fn; the store never mutates a card in place.
type CardStore interface {
	Get(id string) (cardforge.Card, bool)
	Put(card cardforge.Card)
	Update(id string, fn func(cardforge.Card) cardforge.Card) (cardforge.Card, bool)
}

// MemoryStore is an in-process CardStore. Concurrent updates to the same
// card are serialized; the last writer wins.
type MemoryStore struct {
	mu    sync.RWMutex
	cards map[string]cardforge.Card
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cards: make(map[string]cardforge.Card)}
}

// Get returns a copy of the card.
func (s *MemoryStore) Get(id string) (cardforge.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[id]
	if !ok {
		return cardforge.Card{}, false
	}
	return card.Clone(), true
}

// Put stores a copy of card, replacing any card with the same id.
func (s *MemoryStore) Put(card cardforge.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.ID] = card.Clone()
}

// Update applies fn to the stored card and stores the result. It returns
// false when the card does not exist. The card id cannot be changed by fn.
func (s *MemoryStore) Update(id string, fn func(cardforge.Card) cardforge.Card) (cardforge.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return cardforge.Card{}, false
	}
	next := fn(card.Clone())
	next.ID = id
	s.cards[id] = next.Clone()
	return next, true
}

// IDs returns the stored card ids in ascending order.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.cards))
	for id := range s.cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
