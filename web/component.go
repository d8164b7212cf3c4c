package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/pthm/cardforge/lib/encoding"
)

// PropsParam is the request parameter that carries encoded props.
const PropsParam = "p"

// Handler is an action handler. It receives hydrated props and returns a
// Result describing what to render.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// Component is embedded by application components. P is the props type; it
// must round-trip through msgpack.
//
//	type Editor struct {
//	    *web.Component[Props]
//	    store CardStore
//	}
//
//	func NewEditor(store CardStore) *Editor {
//	    c := &Editor{Component: web.New[Props]("editor"), store: store}
//	    c.SetParent(c)
//	    c.Action("delete", c.handleDelete).Method(http.MethodDelete)
//	    return c
//	}
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	encoder   *encoding.Encoder
	parent    Lifecycle[P]
	onError   ErrorHandler
	logger    *zap.Logger
}

// New creates a component. The URL prefix is derived from name and the
// caller's source location, so two instances with the same name still get
// distinct routes.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
		logger:  zap.NewNop(),
	}
}

// Sensitive switches props from signed to sealed tokens.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Prefix returns the URL prefix all actions are mounted under.
func (c *Component[P]) Prefix() string {
	return c.prefix
}

// IsSensitive reports whether props are sealed.
func (c *Component[P]) IsSensitive() bool {
	return c.sensitive
}

// Action registers a handler under name. The method defaults to POST.
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// SetEncoder is called by the registry.
func (c *Component[P]) SetEncoder(enc *encoding.Encoder) {
	c.encoder = enc
}

// Encoder returns the props encoder.
func (c *Component[P]) Encoder() *encoding.Encoder {
	return c.encoder
}

// SetParent binds the concrete component whose Hydrate and Render are
// called by ServeHTTP.
func (c *Component[P]) SetParent(parent Lifecycle[P]) {
	c.parent = parent
}

// SetOnError is called by the registry to centralise error responses.
func (c *Component[P]) SetOnError(fn ErrorHandler) {
	c.onError = fn
}

// OnError returns the error handler set by the registry, if any.
func (c *Component[P]) OnError() ErrorHandler {
	return c.onError
}

// SetLogger is called by the registry.
func (c *Component[P]) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger.With(zap.String("component", c.name))
}

// Logger returns the component's logger; never nil.
func (c *Component[P]) Logger() *zap.Logger {
	return c.logger
}

// Encode returns the props token, or "" when no encoder is set.
func (c *Component[P]) Encode(props P) (string, error) {
	if c.encoder == nil {
		return "", nil
	}
	token, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return "", fmt.Errorf("web: encode %s props: %w", c.name, err)
	}
	return token, nil
}

// URL returns the path of action ("" for the default render).
func (c *Component[P]) URL(action string) string {
	return c.prefix + "/" + action
}

// Call builds the htmx attributes that invoke action with props. Encoding
// failures degrade to a request without props, which hydrates as zero props.
func (c *Component[P]) Call(action string, props P) *Action {
	method := http.MethodGet
	if def, ok := c.actions[action]; ok {
		method = def.method
	}
	token, _ := c.Encode(props)
	return NewAction(c.URL(action), method, token)
}

// Refresh builds the htmx attributes that re-render the component.
func (c *Component[P]) Refresh(props P) *Action {
	return c.Call("", props)
}

// ServeHTTP decodes props, hydrates them, routes to the action handler and
// renders the result.
func (c *Component[P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c.parent == nil {
		c.fail(w, r, fmt.Errorf("web: component %q has no parent bound", c.name))
		return
	}

	var props P
	if token := r.FormValue(PropsParam); token != "" {
		if c.encoder == nil {
			c.fail(w, r, ErrInvalidFormat)
			return
		}
		if err := c.encoder.Decode(token, c.sensitive, &props); err != nil {
			c.fail(w, r, wrapEncodingError(err))
			return
		}
	}

	if err := c.parent.Hydrate(r.Context(), &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %w", ErrHydrationFailed, err))
		return
	}

	action := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if action == "" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.render(w, r, props, nil)
		return
	}

	def, ok := c.actions[action]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.Method != def.method {
		w.Header().Set("Allow", def.method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.handleResult(w, r, def.handler(r.Context(), props, r))
}

func (c *Component[P]) handleResult(w http.ResponseWriter, r *http.Request, result Result[P]) {
	if err := result.GetErr(); err != nil {
		c.fail(w, r, err)
		return
	}

	// Headers must be set before WriteHeader.
	for k, v := range result.GetHeaders() {
		w.Header().Set(k, v)
	}
	if trigger := BuildTriggerHeader(result.GetTrigger(), result.GetTriggerData()); trigger != "" {
		w.Header().Set("HX-Trigger", trigger)
	}
	if result.ShouldSkip() {
		if status := result.GetStatus(); status != 0 {
			w.WriteHeader(status)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status := result.GetStatus(); status != 0 {
		w.WriteHeader(status)
	}
	c.render(w, r, result.GetProps(), result.GetFlashes())
}

func (c *Component[P]) render(w http.ResponseWriter, r *http.Request, props P, flashes []Flash) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := c.parent.Render(r.Context(), props)
	if len(flashes) > 0 {
		view = templ.Join(view, FlashesOOB(flashes))
	}
	// Headers may already be written; log only.
	if err := view.Render(r.Context(), w); err != nil {
		c.logger.Warn("render failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	DefaultErrorHandler(w, r, err)
}

// componentHash derives 8 hex chars from name and the caller's file:line.
func componentHash(name string, skip int) string {
	input := name
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}
