package code

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Error is a domain failure carrying an error code and an optional cause.
// The cause is for logs only and never reaches clients.
type Error struct {
	Code  int
	Cause error
}

// New returns an Error for errorCode
func New(errorCode int) *Error {
	return &Error{Code: errorCode}
}

// Wrap returns an Error for errorCode caused by err
func Wrap(errorCode int, err error) *Error {
	return &Error{Code: errorCode, Cause: err}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("code %d: %v", e.Code, e.Cause)
	}
	return fmt.Sprintf("code %d: %s", e.Code, GetLocalizedMessage(e.Code, language.English))
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status of the error code
func (e *Error) Status() int {
	return GetStatus(e.Code)
}

// Is matches another *Error by code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// As extracts an *Error from err
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or ErrUnknown
func CodeOf(err error) int {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ErrUnknown
}
