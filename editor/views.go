package editor

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/cardforge"
	"github.com/pthm/cardforge/web"
)

// htmlWriter accumulates the first write error so views read top to bottom.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attrs(a templ.Attributes) {
	if h.err == nil {
		h.err = templ.RenderAttributes(h.ctx, h.w, a)
	}
}

// target is the element every editor action swaps.
func target(cardID string) string {
	return "#" + editorID(cardID)
}

func editorID(cardID string) string {
	return "card-editor-" + cardID
}

func editorView(c *Editor, props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		card := props.Card
		fp := card.Fingerprint()
		call := func(action string) *web.Action {
			return c.Call(action, props).Target(target(card.ID))
		}

		h.raw(`<section class="card-editor"`)
		h.attrs(templ.Attributes{"id": editorID(card.ID), "data-fingerprint": fp})
		h.raw(`><header><h2>Components</h2><code class="fingerprint">`)
		h.text(fp)
		h.raw(`</code></header><ol class="components">`)

		for _, comp := range card.Components {
			componentRow(h, call, card.Components, comp, props.Open.Contains(comp.ID))
		}

		h.raw(`</ol><button type="button" class="add"`)
		h.attrs(call("add").Attrs())
		h.raw(`>Add component</button>`)

		h.raw(`<form class="details"`)
		h.attrs(call("details").Trigger("change").Attrs())
		h.raw(`><label>Words to avoid<textarea name="words">`)
		h.text(card.WordsToAvoid)
		h.raw(`</textarea></label><label>Card idea<textarea name="idea">`)
		h.text(card.Idea)
		h.raw(`</textarea></label></form>`)

		if props.CanGenerate {
			h.raw(`<button type="button" class="generate"`)
			h.attrs(call("generate").Attrs())
			h.raw(`>Generate</button>`)
		}
		if props.Output != nil {
			h.raw(`<article class="card-result"`)
			h.attrs(templ.Attributes{"data-fingerprint": props.Output.Fingerprint, "data-cached": props.Output.Cached})
			h.raw(`>`)
			h.text(props.Output.Text)
			h.raw(`</article>`)
		}
		h.raw(`</section>`)
		return h.err
	})
}

func componentRow(h *htmlWriter, call func(string) *web.Action, list cardforge.List, comp cardforge.Component, open bool) {
	id := strconv.Itoa(comp.ID)
	vals := map[string]any{"id": comp.ID}

	h.raw(`<li class="component"`)
	h.attrs(templ.Attributes{"id": "component-" + id, "data-expanded": open})
	h.raw(`><button type="button" class="toggle"`)
	h.attrs(call("toggle").Vals(vals).Attrs())
	if open {
		h.raw(`>&#9662;</button>`)
	} else {
		h.raw(`>&#9656;</button>`)
	}

	h.raw(`<span class="component-id">`)
	h.text(id)
	h.raw(`.</span><input type="text" name="text"`)
	h.attrs(templ.Attributes{"value": comp.Text, "aria-label": "Component " + id})
	h.attrs(call("edit").Vals(vals).Trigger("change").Attrs())
	h.raw(`><button type="button" class="delete"`)
	h.attrs(call("delete").Vals(vals).Confirm("Delete component " + id + "?").Attrs())
	h.raw(`>Delete</button>`)

	if open {
		prerequisitePicker(h, call, list, comp)
	} else if len(comp.Prerequisites) > 0 {
		h.raw(`<span class="after">after `)
		h.text(joinIDs(comp.Prerequisites))
		h.raw(`</span>`)
	}
	h.raw(`</li>`)
}

// prerequisitePicker lists every other component as a checkbox.
func prerequisitePicker(h *htmlWriter, call func(string) *web.Action, list cardforge.List, comp cardforge.Component) {
	h.raw(`<fieldset class="prerequisites"`)
	h.attrs(call("prereqs").
		Vals(map[string]any{"id": comp.ID}).
		Trigger("change").
		Include("this").
		Attrs())
	h.raw(`><legend>After</legend>`)

	for _, other := range list {
		if other.ID == comp.ID {
			continue
		}
		oid := strconv.Itoa(other.ID)
		h.raw(`<label><input type="checkbox" name="prerequisites"`)
		h.attrs(templ.Attributes{"value": oid, "checked": comp.HasPrerequisite(other.ID)})
		h.raw(`> `)
		h.text(oid + ". " + other.Text)
		h.raw(`</label>`)
	}
	h.raw(`</fieldset>`)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// Page wraps body in a minimal HTML document that loads htmx and hosts the
// toast container.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><script src="https://unpkg.com/htmx.org@2.0.4"></script></head><body>`)
		if h.err == nil {
			h.err = body.Render(ctx, w)
		}
		if h.err == nil {
			h.err = web.ToastContainer().Render(ctx, w)
		}
		h.raw(`</body></html>`)
		return h.err
	})
}
