// Package editor is the card editing component: the component list with
// add, edit, delete and prerequisite actions, the words-to-avoid and idea
// fields, and generation of the card text.
package editor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/pthm/cardforge"
	"github.com/pthm/cardforge/generation"
	"github.com/pthm/cardforge/web"
)

// ChangedEvent is triggered after every change to a card's content. Its data
// carries the card id and the new fingerprint.
const ChangedEvent = "card:changed"

// Props identify the card being edited and which components are expanded.
type Props struct {
	CardID   string `msgpack:"c"`
	Expanded []int  `msgpack:"x,omitempty"`

	// Hydrated
	Card        cardforge.Card        `msgpack:"-"`
	Open        cardforge.ExpandedSet `msgpack:"-"`
	CanGenerate bool                  `msgpack:"-"`
	Output      *generation.Output    `msgpack:"-"`
}

// Editor edits one card at a time.
type Editor struct {
	*web.Component[Props]
	store     CardStore
	generator *generation.Service
}

// New creates the editor. generator may be nil, which hides generation.
func New(store CardStore, generator *generation.Service) *Editor {
	c := &Editor{
		Component: web.New[Props]("editor"),
		store:     store,
		generator: generator,
	}
	c.SetParent(c)
	c.Action("add", c.handleAdd)
	c.Action("edit", c.handleEdit)
	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
	c.Action("prereqs", c.handlePrerequisites)
	c.Action("toggle", c.handleToggle)
	c.Action("details", c.handleDetails)
	c.Action("generate", c.handleGenerate)
	return c
}

// Hydrate loads the card. A stored card whose ids are not 1..N or that has
// dangling prerequisites is repaired with Renumber and written back.
func (c *Editor) Hydrate(ctx context.Context, props *Props) error {
	card, ok := c.store.Get(props.CardID)
	if !ok {
		return fmt.Errorf("card %q: %w", props.CardID, web.ErrNotFound)
	}

	if err := cardforge.Check(card.Components); err != nil {
		c.Logger().Warn("repairing stored card",
			zap.String("card", card.ID),
			zap.Error(err))
		card, ok = c.store.Update(card.ID, func(stored cardforge.Card) cardforge.Card {
			return stored.Apply(nil)
		})
		if !ok {
			return fmt.Errorf("card %q: %w", props.CardID, web.ErrNotFound)
		}
	}

	props.Card = card
	props.Open = cardforge.NewExpandedSet(props.Expanded...).Prune(card.Components)
	props.Expanded = props.Open.IDs()
	props.CanGenerate = c.generator != nil && c.generator.Enabled()
	return nil
}

// Render draws the editor.
func (c *Editor) Render(ctx context.Context, props Props) templ.Component {
	return editorView(c, props)
}

// View hydrates props for cardID and returns the editor markup, for
// embedding in a full page.
func (c *Editor) View(ctx context.Context, cardID string) (templ.Component, error) {
	props := Props{CardID: cardID}
	if err := c.Hydrate(ctx, &props); err != nil {
		return nil, err
	}
	return c.Render(ctx, props), nil
}

// apply runs action against the stored card and re-renders with the result.
func (c *Editor) apply(props Props, action cardforge.Action) web.Result[Props] {
	return c.update(props, func(card cardforge.Card) cardforge.Card {
		return card.Apply(action)
	})
}

func (c *Editor) update(props Props, fn func(cardforge.Card) cardforge.Card) web.Result[Props] {
	card, ok := c.store.Update(props.CardID, fn)
	if !ok {
		return web.Err(props, fmt.Errorf("card %q: %w", props.CardID, web.ErrNotFound))
	}
	props.Card = card
	props.Open = props.Open.Prune(card.Components)
	props.Expanded = props.Open.IDs()
	props.Output = nil

	fp := card.Fingerprint()
	return web.OK(props).Trigger(ChangedEvent, map[string]any{
		"card":        card.ID,
		"fingerprint": fp,
	})
}

func (c *Editor) handleAdd(ctx context.Context, props Props, r *http.Request) web.Result[Props] {
	return c.apply(props, cardforge.AddAction{})
}

func (c *Editor) handleEdit(ctx context.Context, props Props, r *http.Request) web.Result[Props] {
	id, err := formID(r)
	if err != nil {
		return web.Err(props, err)
	}
	return c.apply(props, cardforge.EditTextAction{ID: id, Text: r.FormValue("text")})
}

func (c *Editor) handleDelete(ctx context.Context, props Props, r *http.Request) web.Result[Props] {
	id, err := formID(r)
	if err != nil {
		return web.Err(props, err)
	}
	// Ids after the deleted one shift down by one; keep the same components
	// expanded.
	if _, ok := props.Card.Components.Find(id); ok {
		props.Open = shiftExpanded(props.Open, id)
	}
	return c.apply(props, cardforge.DeleteAction{ID: id})
}

func (c *Editor) handlePrerequisites(ctx context.Context, props Props, r *http.Request) web.Result[Props] {
	id, err := formID(r)
	if err != nil {
		return web.Err(props, err)
	}
	if err := r.ParseForm(); err != nil {
		return web.Err(props, fmt.Errorf("%w: %v", web.ErrInvalidFormat, err))
	}

	var prereqs []int
	for _, raw := range r.Form["prerequisites"] {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return web.Err(props, fmt.Errorf("%w: prerequisite %q", web.ErrInvalidFormat, raw))
		}
		prereqs = append(prereqs, n)
	}
	return c.apply(props, cardforge.SetPrerequisitesAction{ID: id, Prerequisites: prereqs})
}

// handleToggle only changes props; the card is untouched.
func (c *Editor) handleToggle(ctx context.Context, props Props, r *http.Request) web.Result[Props] {
	id, err := formID(r)
	if err != nil {
		return web.Err(props, err)
	}
	if _, ok := props.Card.Components.Find(id); !ok {
		return web.OK(props)
	}
	props.Open = props.Open.Toggle(id)
	props.Expanded = props.Open.IDs()
	return web.OK(props)
}

func (c *Editor) handleDetails(ctx context.Context, props Props, r *http.Request) web.Result[Props] {
	words, idea := r.FormValue("words"), r.FormValue("idea")
	return c.update(props, func(card cardforge.Card) cardforge.Card {
		card.WordsToAvoid = words
		card.Idea = idea
		return card
	})
}

func (c *Editor) handleGenerate(ctx context.Context, props Props, r *http.Request) web.Result[Props] {
	if c.generator == nil {
		return web.OK(props).Flash(web.FlashWarning, "Generation is not configured")
	}

	out, err := c.generator.Generate(ctx, props.Card)
	switch {
	case errors.Is(err, generation.ErrGenerationDisabled):
		return web.OK(props).Flash(web.FlashWarning, "Generation is not configured")
	case errors.Is(err, generation.ErrEmptyCard):
		return web.OK(props).Flash(web.FlashWarning, "Add a component or an idea first")
	case err != nil:
		c.Logger().Error("generation failed", zap.String("card", props.CardID), zap.Error(err))
		return web.OK(props).Flash(web.FlashError, "Generation failed")
	}

	props.Output = &out
	result := web.OK(props)
	if out.Cached {
		result = result.Flash(web.FlashInfo, "Reused the result for unchanged content")
	} else {
		result = result.Flash(web.FlashSuccess, "Card generated")
	}
	return result
}

func formID(r *http.Request) (int, error) {
	raw := r.FormValue("id")
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: component id %q", web.ErrInvalidFormat, raw)
	}
	return id, nil
}

// shiftExpanded renumbers expanded ids for the deletion of id.
func shiftExpanded(open cardforge.ExpandedSet, id int) cardforge.ExpandedSet {
	var ids []int
	for _, e := range open.IDs() {
		switch {
		case e < id:
			ids = append(ids, e)
		case e > id:
			ids = append(ids, e-1)
		}
	}
	return cardforge.NewExpandedSet(ids...)
}
