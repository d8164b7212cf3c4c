package web

// Result is returned from action handlers to control rendering.
//
// Handlers never write to the ResponseWriter for the normal case. The
// component applies headers from the Result and then renders the props it
// carries:
//
//	// Re-render with updated props
//	return web.OK(props)
//
//	// Re-render and notify listeners
//	return web.OK(props).Trigger("card:changed", map[string]any{"fingerprint": fp})
//
//	// Hand the error to the registry's OnError
//	return web.Err(props, err)
type Result[P any] struct {
	props       P
	err         error
	flashes     []Flash
	trigger     string
	triggerData map[string]any
	headers     map[string]string
	status      int
	skip        bool
}

// OK creates a success result that renders props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err creates an error result. Props are kept so an error handler could
// render a fallback view.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip creates a result for handlers that wrote their own response.
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Flash appends a toast notification, rendered as an out-of-band swap into
// #toasts.
//
//	return web.OK(props).Flash(web.FlashSuccess, "Saved")
func (r Result[P]) Flash(level, message string) Result[P] {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger emits event through the HX-Trigger header. With data the header
// is a JSON object and listeners receive data as evt.detail.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// Header sets a response header.
func (r Result[P]) Header(key, value string) Result[P] {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

// Status sets the HTTP status code. Zero means 200.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

// GetProps returns the props to render.
func (r Result[P]) GetProps() P {
	return r.props
}

// GetErr returns the error, if any.
func (r Result[P]) GetErr() error {
	return r.err
}

// GetFlashes returns the flash messages.
func (r Result[P]) GetFlashes() []Flash {
	return r.flashes
}

// GetTrigger returns the event name.
func (r Result[P]) GetTrigger() string {
	return r.trigger
}

// GetTriggerData returns the event data.
func (r Result[P]) GetTriggerData() map[string]any {
	return r.triggerData
}

// GetHeaders returns the custom response headers.
func (r Result[P]) GetHeaders() map[string]string {
	return r.headers
}

// GetStatus returns the status code (0 when unset).
func (r Result[P]) GetStatus() int {
	return r.status
}

// ShouldSkip reports whether the handler wrote its own response.
func (r Result[P]) ShouldSkip() bool {
	return r.skip
}
