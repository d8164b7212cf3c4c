package web

import (
	"encoding/json"
	"net/http"
)

// IsHTMX reports whether the request was sent by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// BuildTriggerHeader formats an HX-Trigger value. Without data it is the bare
// event name; with data it is {"event": data}.
//
//	BuildTriggerHeader("card:changed", nil)                                  // card:changed
//	BuildTriggerHeader("card:changed", map[string]any{"fingerprint": "..."}) // {"card:changed":{"fingerprint":"..."}}
func BuildTriggerHeader(trigger string, data map[string]any) string {
	if trigger == "" {
		return ""
	}
	if data == nil {
		return trigger
	}
	encoded, err := json.Marshal(map[string]any{trigger: data})
	if err != nil {
		return trigger
	}
	return string(encoded)
}
