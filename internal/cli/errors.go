package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aidanlsb/projrename/internal/ui"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrInvalidInput         = "INVALID_INPUT"
	ErrConfigInvalid        = "CONFIG_INVALID"
	ErrPreconditionFailed   = "PRECONDITION_FAILED"
	ErrRenameFailed         = "RENAME_FAILED"
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"
	ErrAuditError           = "AUDIT_ERROR"
	ErrInternal             = "INTERNAL_ERROR"
)

// cliError is a failure to be printed to stderr in text mode.
type cliError struct {
	code       string
	message    string
	suggestion string
}

func (e *cliError) Error() string { return e.message }

// exitError requests a non-zero exit for a failure that was already reported.
type exitError struct {
	code string
}

func (e *exitError) Error() string { return fmt.Sprintf("exit: %s", e.code) }

// errorCode returns the structured code carried by err, if any.
func errorCode(err error) string {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ""
}

// reportError prints err for a human unless it was already reported.
func reportError(w io.Writer, err error) {
	var ee *exitError
	if err == nil || errors.As(err, &ee) {
		return
	}
	fmt.Fprintln(w, ui.Error(err.Error()))

	var ce *cliError
	if errors.As(err, &ce) && ce.suggestion != "" {
		fmt.Fprintln(w, ui.Hint(ce.suggestion))
	}
}

func reportToStderr(err error) {
	reportError(os.Stderr, err)
}
