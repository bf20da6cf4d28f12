package core

import "github.com/pkg/errors"

// FieldError pins a validation failure to a single input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports invalid input on create/update operations. It
// carries per-field errors when they are known, otherwise just the cause.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals that the running service is unrecoverable and should be
// brought down gracefully. Checked with IsShutdown at the outermost handler.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err, at its cause, asks for a graceful shutdown.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
