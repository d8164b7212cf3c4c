package web

import (
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/pthm/cardforge/lib/encoding"
)

// Registry owns the props encoder and routes requests to mounted components.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *encoding.Encoder
	components map[string]Mountable
	logger     *zap.Logger

	// OnError writes the response for every failed component request.
	// Replace it to customise error pages.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger handed to components and used for errors.
func WithLogger(logger *zap.Logger) Option {
	return func(reg *Registry) {
		if logger != nil {
			reg.logger = logger
		}
	}
}

// NewRegistry creates a registry whose props tokens are keyed by key.
func NewRegistry(key []byte, opts ...Option) *Registry {
	enc, err := encoding.NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("web: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]Mountable),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(reg)
	}

	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		code := StatusCode(err)
		if code >= http.StatusInternalServerError {
			reg.logger.Error("component request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err))
		} else {
			reg.logger.Debug("component request rejected",
				zap.String("path", r.URL.Path),
				zap.Int("status", code),
				zap.Error(err))
		}
		http.Error(w, http.StatusText(code), code)
	}
	return reg
}

// Encoder returns the registry's props encoder.
func (reg *Registry) Encoder() *encoding.Encoder {
	return reg.encoder
}

// Logger returns the registry's logger.
func (reg *Registry) Logger() *zap.Logger {
	return reg.logger
}

// Add mounts components. It panics on a prefix collision, so wiring
// mistakes surface at startup rather than on the first request.
func (reg *Registry) Add(components ...Mountable) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.Prefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("web: prefix collision for %q", prefix))
		}

		comp.SetEncoder(reg.encoder)
		comp.SetLogger(reg.logger)
		// Late-bound so OnError can be replaced after Add.
		comp.SetOnError(func(w http.ResponseWriter, r *http.Request, err error) {
			reg.OnError(w, r, err)
		})

		reg.components[prefix] = comp
		reg.mux.Handle(prefix+"/", comp)
		reg.mux.Handle(prefix, comp)
		reg.logger.Debug("component mounted",
			zap.String("component", comp.Name()),
			zap.String("prefix", prefix))
	}
}

// Components returns the number of mounted components.
func (reg *Registry) Components() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.components)
}

// Handler returns the handler for component routes. Mount it at "/_c/".
//
// Mutating methods must carry HX-Request: true. Browsers do not send that
// header on cross-origin form posts, so it doubles as CSRF protection.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}
		reg.mux.ServeHTTP(w, r)
	})
}
