package newswatch

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and they map well to HTTP-style semantics.
// Additional codes should be added sparingly since each new code requires
// handling consideration at the boundaries of the application.
const (
	EINVALID     = "invalid"     // validation failed or permanent rejection
	ENOTFOUND    = "not_found"   // entity does not exist
	EUNAVAILABLE = "unavailable" // network failure or exhausted retries
	EINTERNAL    = "internal"    // internal error
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code and message.
//
// Any non-application error (such as a disk error) should be reported as an
// EINTERNAL error, so the message out of these errors is not reported to the
// end user.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("newswatch error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
