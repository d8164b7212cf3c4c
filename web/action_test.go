package web

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestNewAction(t *testing.T) {
	a := NewAction("/test/url", http.MethodPost, "tok")

	if a.URL() != "/test/url" {
		t.Errorf("URL() = %q, want %q", a.URL(), "/test/url")
	}

	attrs := a.Attrs()
	if attrs["hx-post"] != "/test/url" {
		t.Errorf("hx-post = %v, want %q", attrs["hx-post"], "/test/url")
	}
	if attrs["hx-swap"] != "outerHTML" {
		t.Errorf("hx-swap = %v, want %q", attrs["hx-swap"], "outerHTML")
	}
}

func TestActionMethods(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		wantAttr string
	}{
		{"GET", http.MethodGet, "hx-get"},
		{"POST", http.MethodPost, "hx-post"},
		{"PUT", http.MethodPut, "hx-put"},
		{"PATCH", http.MethodPatch, "hx-patch"},
		{"DELETE", http.MethodDelete, "hx-delete"},
		{"empty defaults to GET", "", "hx-get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := NewAction("/url", tt.method, "").Attrs()
			if _, ok := attrs[tt.wantAttr]; !ok {
				t.Errorf("attribute %q not found in %v", tt.wantAttr, attrs)
			}
		})
	}
}

func TestActionGetCarriesPropsInQuery(t *testing.T) {
	a := NewAction("/_c/x/", http.MethodGet, "abc")
	if got := a.URL(); got != "/_c/x/?p=abc" {
		t.Errorf("URL() = %q", got)
	}
	attrs := a.Attrs()
	if attrs["hx-get"] != "/_c/x/?p=abc" {
		t.Errorf("hx-get = %v", attrs["hx-get"])
	}
	if _, ok := attrs["hx-vals"]; ok {
		t.Errorf("GET action should not set hx-vals, got %v", attrs["hx-vals"])
	}
}

func TestActionPostCarriesPropsInVals(t *testing.T) {
	attrs := NewAction("/_c/x/delete", http.MethodDelete, "abc").
		Vals(map[string]any{"id": 2}).
		Attrs()

	raw, ok := attrs["hx-vals"].(string)
	if !ok {
		t.Fatalf("hx-vals missing: %v", attrs)
	}
	var vals map[string]any
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		t.Fatalf("hx-vals is not JSON: %v", err)
	}
	if vals[PropsParam] != "abc" {
		t.Errorf("vals[p] = %v, want abc", vals[PropsParam])
	}
	if vals["id"] != float64(2) {
		t.Errorf("vals[id] = %v, want 2", vals["id"])
	}
}

func TestActionModifiers(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Action) *Action
		attr  string
		want  string
	}{
		{"target", func(a *Action) *Action { return a.Target("#card") }, "hx-target", "#card"},
		{"trigger", func(a *Action) *Action { return a.Trigger("change") }, "hx-trigger", "change"},
		{"confirm", func(a *Action) *Action { return a.Confirm("Sure?") }, "hx-confirm", "Sure?"},
		{"include", func(a *Action) *Action { return a.Include("#form") }, "hx-include", "#form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := tt.setup(NewAction("/url", http.MethodPost, "")).Attrs()
			if attrs[tt.attr] != tt.want {
				t.Errorf("%s = %v, want %q", tt.attr, attrs[tt.attr], tt.want)
			}
		})
	}
}

func TestActionValsMerge(t *testing.T) {
	a := NewAction("/url", http.MethodPost, "").
		Vals(map[string]any{"a": 1}).
		Vals(map[string]any{"b": 2})

	var vals map[string]any
	if err := json.Unmarshal([]byte(a.Attrs()["hx-vals"].(string)), &vals); err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 {
		t.Errorf("vals = %v, want a and b", vals)
	}
	if _, ok := vals[PropsParam]; ok {
		t.Error("empty token should not be sent")
	}
}

func TestActionBuilderMethod(t *testing.T) {
	method := http.MethodPost
	(&ActionBuilder{method: &method}).Method(http.MethodDelete)
	if method != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", method)
	}
}
