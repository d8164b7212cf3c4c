package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/cardforge"
	"github.com/pthm/cardforge/cache"
)

type fakeClient struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeClient) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func testCard() cardforge.Card {
	return cardforge.Card{
		ID: "c1",
		Components: cardforge.List{
			{ID: 1, Text: "a", Prerequisites: []int{}},
			{ID: 2, Text: "b", Prerequisites: []int{1}},
			{ID: 3, Text: "c", Prerequisites: []int{1, 2}},
		},
	}
}

func newStore(t *testing.T) *cache.MemoryStore {
	t.Helper()
	s, err := cache.NewMemoryStore(8)
	require.NoError(t, err)
	return s
}

func TestGenerateCallsClientAndCaches(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{text: "  A card.\n"}
	store := newStore(t)
	svc := NewService(client, store, nil)

	out, err := svc.Generate(ctx, testCard())
	require.NoError(t, err)
	assert.Equal(t, Output{Fingerprint: "32f1cf31", Text: "A card."}, out)

	require.Len(t, client.prompts, 1)
	assert.True(t, strings.HasPrefix(client.prompts[0], Instructions))
	assert.Contains(t, client.prompts[0], "Components:\n1. a\n2. b (after 1)\n3. c (after 1, 2)")

	entry, err := store.Get(ctx, "32f1cf31")
	require.NoError(t, err)
	assert.Equal(t, "A card.", entry.Text)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestGenerateServesCachedResult(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{text: "fresh"}
	store := newStore(t)
	require.NoError(t, store.Put(ctx, "32f1cf31", cache.Entry{Text: "cached"}))
	svc := NewService(client, store, nil)

	out, err := svc.Generate(ctx, testCard())
	require.NoError(t, err)
	assert.True(t, out.Cached)
	assert.Equal(t, "cached", out.Text)
	assert.Empty(t, client.prompts)
}

func TestGenerateEditedCardMissesCache(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{text: "x"}
	svc := NewService(client, newStore(t), nil)

	_, err := svc.Generate(ctx, testCard())
	require.NoError(t, err)

	edited := testCard().Apply(cardforge.EditTextAction{ID: 1, Text: "changed"})
	out, err := svc.Generate(ctx, edited)
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Len(t, client.prompts, 2)
}

func TestGenerateWithoutClient(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewService(nil, store, nil)
	assert.False(t, svc.Enabled())

	_, err := svc.Generate(ctx, testCard())
	assert.ErrorIs(t, err, ErrGenerationDisabled)

	require.NoError(t, store.Put(ctx, "32f1cf31", cache.Entry{Text: "cached"}))
	out, err := svc.Generate(ctx, testCard())
	require.NoError(t, err)
	assert.Equal(t, "cached", out.Text)
}

func TestGenerateClientError(t *testing.T) {
	boom := errors.New("quota exceeded")
	svc := NewService(&fakeClient{err: boom}, nil, nil)

	_, err := svc.Generate(context.Background(), testCard())
	assert.ErrorIs(t, err, boom)
}

func TestGenerateEmptyResponse(t *testing.T) {
	svc := NewService(&fakeClient{text: "   "}, newStore(t), nil)
	_, err := svc.Generate(context.Background(), testCard())
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateEmptyCard(t *testing.T) {
	client := &fakeClient{text: "x"}
	svc := NewService(client, nil, nil)

	_, err := svc.Generate(context.Background(), cardforge.Card{ID: "empty"})
	assert.ErrorIs(t, err, ErrEmptyCard)
	assert.Empty(t, client.prompts)
}

func TestPrompt(t *testing.T) {
	card := cardforge.Card{WordsToAvoid: "cat", Idea: "haunted"}
	assert.Equal(t, Instructions+cardforge.ContentText("", "cat", "haunted"), Prompt(card))
}
