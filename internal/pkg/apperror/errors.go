package apperror

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error matches exactly one of them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrDecode     = errors.New("decode error")
	ErrStorage    = errors.New("storage error")
)

// Error carries a kind, a caller-safe message and the internal cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Decode(err error) error {
	return &Error{Kind: ErrDecode, Message: "Error processing spreadsheet", Err: err}
}

func Storage(message string, err error) error {
	return &Error{Kind: ErrStorage, Message: message, Err: err}
}

// Message returns the caller-safe message of err, or "" if err is not an *Error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
