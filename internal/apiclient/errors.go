package apiclient

import (
	"errors"
	"fmt"
	"strings"

	"tdo/internal/models"
)

// Sentinel errors for the normalized failure taxonomy. Every failure
// leaving this package matches exactly one of these (or ValidationError)
// via errors.Is; callers never see transport-specific error shapes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrNetwork      = errors.New("network error")
)

// ValidationError carries field-level messages from a rejected input,
// whether the rejection happened client-side or at the server.
type ValidationError struct {
	Fields models.FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Fields.Error()
}

// UnknownError wraps a server failure that fits no other category,
// preserving the raw status and body for display.
type UnknownError struct {
	Status int
	Body   string
}

func (e *UnknownError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("unexpected server error (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("unexpected server error (HTTP %d): %s", e.Status, body)
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
