// Package generation turns a card into generated text, reusing earlier
// results for identical content through a fingerprint-keyed cache.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pthm/cardforge"
	"github.com/pthm/cardforge/cache"
)

var (
	// ErrGenerationDisabled is returned when no remote client is configured.
	ErrGenerationDisabled = errors.New("generation: no client configured")

	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("generation: empty response")

	// ErrEmptyCard is returned for a card with nothing to generate from.
	ErrEmptyCard = errors.New("generation: card has no content")
)

// Instructions precede the card content in every prompt.
const Instructions = `You write playable scenario cards.
Turn the components below into a short card text. Keep the components in
order and respect each "(after ...)" dependency. Never use any of the words
to avoid. Reply with the card text only.

`

// Client sends a prompt to a text model.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Output is the result of Service.Generate.
type Output struct {
	Fingerprint string
	Text        string
	Cached      bool
}

// Service generates card text through Client, caching by fingerprint.
type Service struct {
	client Client
	store  cache.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a service. client may be nil, in which case only cached
// results are served. store may be nil to disable caching.
func NewService(client Client, store cache.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, store: store, logger: logger, now: time.Now}
}

// Enabled reports whether a remote client is configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Prompt returns the full prompt for card.
func Prompt(card cardforge.Card) string {
	return Instructions + card.ContentText()
}

// Generate returns text for card. A cached result for the same fingerprint
// is returned without calling the client.
func (s *Service) Generate(ctx context.Context, card cardforge.Card) (Output, error) {
	if len(card.Components) == 0 && strings.TrimSpace(card.Idea) == "" {
		return Output{}, ErrEmptyCard
	}

	fp := card.Fingerprint()
	log := s.logger.With(zap.String("card", card.ID), zap.String("fingerprint", fp))

	if s.store != nil {
		entry, err := s.store.Get(ctx, fp)
		switch {
		case err == nil:
			log.Debug("generation cache hit")
			return Output{Fingerprint: fp, Text: entry.Text, Cached: true}, nil
		case errors.Is(err, cache.ErrNotFound):
			log.Debug("generation cache miss")
		default:
			log.Warn("generation cache lookup failed", zap.Error(err))
		}
	}

	if s.client == nil {
		return Output{}, ErrGenerationDisabled
	}

	start := s.now()
	text, err := s.client.Generate(ctx, Prompt(card))
	if err != nil {
		return Output{}, fmt.Errorf("generation: card %s: %w", card.ID, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Output{}, ErrEmptyResponse
	}
	log.Info("card generated", zap.Duration("took", s.now().Sub(start)), zap.Int("chars", len(text)))

	if s.store != nil {
		if err := s.store.Put(ctx, fp, cache.Entry{Text: text, CreatedAt: s.now().UTC()}); err != nil {
			log.Warn("generation cache store failed", zap.Error(err))
		}
	}
	return Output{Fingerprint: fp, Text: text}, nil
}
