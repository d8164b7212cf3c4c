package web

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderFlashesOOBEmpty(t *testing.T) {
	if got := RenderFlashesOOB(nil); got != "" {
		t.Errorf("RenderFlashesOOB(nil) = %q, want empty", got)
	}
	if got := RenderFlashesOOB([]Flash{}); got != "" {
		t.Errorf("RenderFlashesOOB([]) = %q, want empty", got)
	}
}

func TestRenderFlashesOOB(t *testing.T) {
	got := RenderFlashesOOB([]Flash{
		{Level: FlashSuccess, Message: "Saved"},
		{Level: FlashInfo, Message: "Cached"},
	})

	want := `<div id="toasts" hx-swap-oob="beforeend">` +
		`<div class="toast toast-success" data-auto-dismiss="3000">Saved</div>` +
		`<div class="toast toast-info" data-auto-dismiss="3000">Cached</div>` +
		`</div>`
	if got != want {
		t.Errorf("RenderFlashesOOB() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderFlashesOOBEscaping(t *testing.T) {
	got := RenderFlashesOOB([]Flash{{Level: `x"y`, Message: "<script>alert(1)</script>"}})
	if strings.Contains(got, "<script>") {
		t.Errorf("message not escaped: %s", got)
	}
	if strings.Contains(got, `toast-x"y`) {
		t.Errorf("level not escaped: %s", got)
	}
}

func TestFlashesOOBComponent(t *testing.T) {
	flashes := []Flash{{Level: FlashError, Message: "Generation failed"}}
	var buf bytes.Buffer
	if err := FlashesOOB(flashes).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != RenderFlashesOOB(flashes) {
		t.Errorf("FlashesOOB rendered %q", buf.String())
	}
}

func TestToastContainer(t *testing.T) {
	var buf bytes.Buffer
	if err := ToastContainer().Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `id="toasts"`) {
		t.Errorf("ToastContainer() = %q", buf.String())
	}
}
