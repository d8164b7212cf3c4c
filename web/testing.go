package web

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult is the captured output of a component under test.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	TriggerData     map[string]map[string]any
	Flashes         []Flash
}

// TestRender hydrates props and renders comp without any HTTP mechanics.
//
//	result, err := web.TestRender(editor, editor.Props{CardID: "c1"})
func TestRender[P any](comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction sends an htmx request to handler and captures the response.
// Form data is encoded the way htmx sends it, see Execute.
//
//	result := web.TestAction(editor, http.MethodPost, editor.URL("edit"), map[string]string{
//	    web.PropsParam: token,
//	    "id":           "2",
//	    "text":         "Open the door",
//	})
func TestAction(handler http.Handler, method, target string, formData map[string]string) *TestResult {
	return NewTestRequest(method, target).WithFormValues(formData).Execute(handler)
}

// TestGet sends a GET request.
func TestGet(handler http.Handler, target string, query map[string]string) *TestResult {
	return TestAction(handler, http.MethodGet, target, query)
}

// TestPost sends a POST request.
func TestPost(handler http.Handler, target string, formData map[string]string) *TestResult {
	return TestAction(handler, http.MethodPost, target, formData)
}

// HTMLContains reports whether the body contains substr.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll reports whether the body contains every substring.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent reports whether event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// EventData returns the data sent with event, or nil.
func (r *TestResult) EventData(event string) map[string]any {
	return r.TriggerData[event]
}

// HasFlash reports whether a flash with level and message was rendered.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

// IsOK reports a 200 response.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus reports whether the status code is code.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// GetHeader returns a response header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// TestRequestBuilder builds a request for Execute.
//
//	result := web.NewTestRequest(http.MethodPost, url).
//	    WithFormData("text", "x").
//	    WithoutHTMX().
//	    Execute(reg.Handler())
type TestRequestBuilder struct {
	method   string
	target   string
	formData url.Values
	headers  map[string]string
	htmx     bool
	ctx      context.Context
}

// NewTestRequest starts a request builder. Requests carry HX-Request: true
// unless WithoutHTMX is called.
func NewTestRequest(method, target string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		target:   target,
		formData: url.Values{},
		headers:  make(map[string]string),
		htmx:     true,
		ctx:      context.Background(),
	}
}

// WithFormData sets one form field.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData.Set(key, value)
	return b
}

// WithFormValues sets several form fields.
func (b *TestRequestBuilder) WithFormValues(data map[string]string) *TestRequestBuilder {
	for k, v := range data {
		b.formData.Set(k, v)
	}
	return b
}

// WithFormList sets a repeated form field, e.g. checkbox values.
func (b *TestRequestBuilder) WithFormList(key string, values ...string) *TestRequestBuilder {
	b.formData[key] = values
	return b
}

// WithHeader sets a request header.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithoutHTMX omits the HX-Request header.
func (b *TestRequestBuilder) WithoutHTMX() *TestRequestBuilder {
	b.htmx = false
	return b
}

// WithContext sets the request context.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute serves the request with handler and captures the response.
// Form data travels in the query for GET, HEAD and DELETE, as htmx sends it,
// and in a urlencoded body otherwise.
func (b *TestRequestBuilder) Execute(handler http.Handler) *TestResult {
	target := b.target
	inQuery := b.method == http.MethodGet || b.method == http.MethodHead || b.method == http.MethodDelete
	body := strings.NewReader("")
	if inQuery {
		if len(b.formData) > 0 {
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + b.formData.Encode()
		}
	} else {
		body = strings.NewReader(b.formData.Encode())
	}

	req := httptest.NewRequest(b.method, target, body).WithContext(b.ctx)
	if !inQuery {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.htmx {
		req.Header.Set("HX-Request", "true")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	result := &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
		Flashes:    parseFlashesFromHTML(rec.Body.String()),
	}
	result.TriggeredEvents, result.TriggerData = parseTriggerHeader(rec.Header().Get("HX-Trigger"))
	return result
}

// parseTriggerHeader splits an HX-Trigger value into event names and, for the
// JSON form, the data of each event.
func parseTriggerHeader(trigger string) ([]string, map[string]map[string]any) {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil, nil
	}

	if strings.HasPrefix(trigger, "{") {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &raw); err != nil {
			return nil, nil
		}
		events := make([]string, 0, len(raw))
		data := make(map[string]map[string]any, len(raw))
		for name, value := range raw {
			events = append(events, name)
			var detail map[string]any
			if json.Unmarshal(value, &detail) == nil {
				data[name] = detail
			}
		}
		return events, data
	}

	var events []string
	for _, p := range strings.Split(trigger, ",") {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events, nil
}

// parseFlashesFromHTML extracts toasts written by RenderFlashesOOB.
func parseFlashesFromHTML(body string) []Flash {
	const prefix = `<div class="toast toast-`

	var flashes []Flash
	idx := 0
	for {
		start := strings.Index(body[idx:], prefix)
		if start == -1 {
			break
		}
		start += idx + len(prefix)

		levelEnd := strings.Index(body[start:], `"`)
		tagEnd := strings.Index(body[start:], ">")
		if levelEnd == -1 || tagEnd == -1 {
			break
		}
		contentStart := start + tagEnd + 1
		contentEnd := strings.Index(body[contentStart:], "</div>")
		if contentEnd == -1 {
			break
		}

		flashes = append(flashes, Flash{
			Level:   body[start : start+levelEnd],
			Message: html.UnescapeString(body[contentStart : contentStart+contentEnd]),
		})
		idx = contentStart + contentEnd
	}
	return flashes
}
