package web

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/pthm/cardforge/lib/encoding"
)

// Hydrater loads everything the props only reference by id. It runs once
// per request, before any handler, so handlers always see complete props.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer produces the component's HTML from hydrated props. It runs for
// GET requests and after every successful action.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Lifecycle is implemented by every concrete component.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// Mountable is what the registry needs from a component. *Component[P]
// provides all of it to the types that embed it.
type Mountable interface {
	http.Handler
	Name() string
	Prefix() string
	SetEncoder(*encoding.Encoder)
	SetOnError(ErrorHandler)
	SetLogger(*zap.Logger)
}
