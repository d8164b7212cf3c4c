package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pthm/cardforge/lib/encoding"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct", ErrNotFound, true},
		{"wrapped", fmt.Errorf("card c1: %w", ErrNotFound), true},
		{"other", ErrInvalidFormat, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsDecryptionError(t *testing.T) {
	if !IsDecryptionError(ErrDecryptFailed) || !IsDecryptionError(ErrSignatureInvalid) {
		t.Error("decrypt and signature errors should be decryption errors")
	}
	if IsDecryptionError(ErrInvalidFormat) {
		t.Error("ErrInvalidFormat is not a decryption error")
	}
}

func TestWrapEncodingError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"decrypt", encoding.ErrDecryptFailed, ErrDecryptFailed},
		{"signature", encoding.ErrSignatureInvalid, ErrSignatureInvalid},
		{"format", encoding.ErrInvalidFormat, ErrInvalidFormat},
		{"unknown", errors.New("boom"), ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapEncodingError(tt.in)
			if !errors.Is(got, tt.want) {
				t.Errorf("wrapEncodingError(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !errors.Is(got, tt.in) {
				t.Errorf("wrapped error lost the cause %v", tt.in)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrSignatureInvalid, http.StatusBadRequest},
		{ErrDecryptFailed, http.StatusBadRequest},
		{ErrInvalidFormat, http.StatusBadRequest},
		{fmt.Errorf("%w: db down", ErrHydrationFailed), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestHydrationNotFoundMapsTo404(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrHydrationFailed, ErrNotFound)
	if got := StatusCode(err); got != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want 404", got)
	}
}

func TestDefaultErrorHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	DefaultErrorHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil), ErrNotFound)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
