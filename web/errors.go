package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pthm/cardforge/lib/encoding"
)

// Sentinel errors for component requests.
var (
	ErrNotFound         = errors.New("web: resource not found")
	ErrDecryptFailed    = errors.New("web: props decryption failed")
	ErrSignatureInvalid = errors.New("web: props signature verification failed")
	ErrInvalidFormat    = errors.New("web: invalid props format")
	ErrHydrationFailed  = errors.New("web: hydration failed")
)

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError reports whether err came from a tampered or foreign
// props token.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsBadRequest reports whether err was caused by the client's props.
func IsBadRequest(err error) bool {
	return IsDecryptionError(err) || errors.Is(err, ErrInvalidFormat)
}

// wrapEncodingError maps encoder errors onto this package's sentinels.
func wrapEncodingError(err error) error {
	switch {
	case errors.Is(err, encoding.ErrDecryptFailed):
		return fmt.Errorf("%w: %w", ErrDecryptFailed, err)
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
}

// StatusCode maps an error to the HTTP status the registry responds with.
func StatusCode(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsBadRequest(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// DefaultErrorHandler is used by components that are not mounted on a
// Registry.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	http.Error(w, http.StatusText(code), code)
}
