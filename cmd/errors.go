package cmd

import (
	"errors"

	"tdo/internal/apiclient"
	"tdo/internal/output"
)

// renderError prints an API error in user terms and returns it so the
// command exits non-zero.
func renderError(err error) error {
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		output.Error("not logged in or session expired; run \"tdo login\"")
	case errors.Is(err, apiclient.ErrForbidden):
		output.Error("that item belongs to another user; run \"tdo list\" to refresh")
	case errors.Is(err, apiclient.ErrNotFound):
		output.Error("not found; it may have been deleted elsewhere")
	case errors.Is(err, apiclient.ErrNetwork):
		output.Error("cannot reach server: %v", err)
	default:
		if ve, ok := apiclient.IsValidation(err); ok {
			for field, msg := range ve.Fields {
				output.Error("%s: %s", field, msg)
			}
		} else {
			output.Error("%v", err)
		}
	}
	return err
}
