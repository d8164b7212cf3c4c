package web

// SwapMode is an hx-swap value.
//
// See https://htmx.org/attributes/hx-swap/.
type SwapMode string

const (
	// SwapOuter replaces the target element itself. This is the default.
	SwapOuter SwapMode = "outerHTML"

	// SwapBeforeEnd appends to the target's children.
	SwapBeforeEnd SwapMode = "beforeend"
)
