package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/haikegani/QuitSmoke/internal/logger"
)

// Hinter is implemented by errors that carry a suggestion for the user.
type Hinter interface {
	Hint() string
}

// Format formats an error message with a consistent "Error: " prefix.
// If any error in the chain implements Hinter, its hint is appended on a new line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	var h Hinter
	if stderrors.As(err, &h) {
		if hint := h.Hint(); hint != "" {
			msg += "\nHint: " + hint
		}
	}
	return msg
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

type hinted struct {
	err  error
	hint string
}

func (h *hinted) Error() string { return h.err.Error() }
func (h *hinted) Unwrap() error { return h.err }
func (h *hinted) Hint() string  { return h.hint }

// WithHint attaches a user-facing suggestion to err. It returns nil for a
// nil err.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hinted{err: err, hint: hint}
}
