// Package web is a small component system for server-rendered htmx pages.
//
// A component embeds *Component[P], where P is a props struct that is small
// enough to travel in a URL. Props only reference server state by id;
// Hydrate loads the rest on every request.
//
//	type Editor struct {
//	    *web.Component[Props]
//	    store CardStore
//	}
//
// Components implement Lifecycle[P]:
//   - Hydrate(ctx, *P) runs before every handler
//   - Render(ctx, P) produces the HTML returned after every action
//
// # Actions
//
// Actions are named handlers mounted under the component's prefix:
//
//	c.Action("edit", c.handleEdit)
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
//
// Templates build the htmx attributes with Call:
//
//	c.Call("delete", props).Vals(map[string]any{"id": 2}).Confirm("Delete?").Attrs()
//
// # Props tokens
//
// Props are packed with msgpack and either signed (HMAC, readable) or, after
// Sensitive(), sealed with AES-GCM. See package lib/encoding.
//
// # Registration
//
//	reg := web.NewRegistry(secret, web.WithLogger(logger))
//	reg.Add(editor)
//	mux.Handle("/_c/", reg.Handler())
//
// The registry hands components the encoder, its logger and a shared error
// handler. Mutating requests without HX-Request: true are rejected, which is
// the CSRF protection for the whole component tree.
package web
