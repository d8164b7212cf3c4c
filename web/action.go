package web

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// ActionBuilder adjusts an action after registration.
//
//	c.Action("edit", c.handleEdit)                             // POST
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST method.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// Action collects the htmx attributes for one request. Build it with
// Component.Call and finish with Attrs:
//
//	<button { c.Call("delete", props).Vals(map[string]any{"id": 2}).Confirm("Delete?").Attrs()... }>
type Action struct {
	path    string
	method  string
	token   string
	vals    map[string]any
	target  string
	swap    SwapMode
	trigger string
	confirm string
	include string
}

// NewAction creates an action for path with the given method and props
// token. The swap defaults to SwapOuter.
func NewAction(path, method, token string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{path: path, method: method, token: token, swap: SwapOuter}
}

// URL returns the request URL. For GET the props token is in the query.
func (a *Action) URL() string {
	if a.method == http.MethodGet && a.token != "" {
		return a.path + "?" + PropsParam + "=" + a.token
	}
	return a.path
}

// Method returns the HTTP method.
func (a *Action) Method() string {
	return a.method
}

// Vals adds request parameters sent alongside the props.
func (a *Action) Vals(vals map[string]any) *Action {
	if a.vals == nil {
		a.vals = make(map[string]any, len(vals))
	}
	for k, v := range vals {
		a.vals[k] = v
	}
	return a
}

// Target sets hx-target.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// Trigger sets hx-trigger, e.g. "change" or "keyup changed delay:500ms".
func (a *Action) Trigger(trigger string) *Action {
	a.trigger = trigger
	return a
}

// Confirm sets hx-confirm.
func (a *Action) Confirm(message string) *Action {
	a.confirm = message
	return a
}

// Include sets hx-include, used to send form fields from elsewhere.
func (a *Action) Include(selector string) *Action {
	a.include = selector
	return a
}

// Attrs renders the action as templ attributes.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{}

	switch a.method {
	case http.MethodPost:
		attrs["hx-post"] = a.path
	case http.MethodPut:
		attrs["hx-put"] = a.path
	case http.MethodPatch:
		attrs["hx-patch"] = a.path
	case http.MethodDelete:
		attrs["hx-delete"] = a.path
	default:
		attrs["hx-get"] = a.URL()
	}

	vals := make(map[string]any, len(a.vals)+1)
	for k, v := range a.vals {
		vals[k] = v
	}
	if a.method != http.MethodGet && a.token != "" {
		vals[PropsParam] = a.token
	}
	if len(vals) > 0 {
		data, _ := json.Marshal(vals)
		attrs["hx-vals"] = string(data)
	}

	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	if a.swap != "" {
		attrs["hx-swap"] = string(a.swap)
	}
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	if a.confirm != "" {
		attrs["hx-confirm"] = a.confirm
	}
	if a.include != "" {
		attrs["hx-include"] = a.include
	}
	return attrs
}
