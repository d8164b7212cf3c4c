package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTMX(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"htmx", "true", true},
		{"missing", "", false},
		{"other value", "false", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("HX-Request", tt.header)
			}
			if got := IsHTMX(r); got != tt.want {
				t.Errorf("IsHTMX() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildTriggerHeader(t *testing.T) {
	if got := BuildTriggerHeader("", map[string]any{"a": 1}); got != "" {
		t.Errorf("empty trigger = %q, want empty", got)
	}
	if got := BuildTriggerHeader("card:changed", nil); got != "card:changed" {
		t.Errorf("no data = %q", got)
	}

	got := BuildTriggerHeader("card:changed", map[string]any{"fingerprint": "79c15d11"})
	var decoded map[string]map[string]string
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("header %q is not JSON: %v", got, err)
	}
	if decoded["card:changed"]["fingerprint"] != "79c15d11" {
		t.Errorf("decoded = %v", decoded)
	}
}
