package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure category independently of its message.
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Settings errors
	ErrMalformedConfig ErrorCode = "MALFORMED_CONFIG"

	// Editor errors. Both are recovered by re-prompting.
	ErrInvalidSelection ErrorCode = "INVALID_SELECTION"
	ErrEmptyFieldValue  ErrorCode = "EMPTY_FIELD_VALUE"

	// Materialization errors
	ErrMissingCarriedState ErrorCode = "MISSING_CARRIED_STATE"
	ErrTemplateMissing     ErrorCode = "TEMPLATE_MISSING"

	// Rewrite errors
	ErrUnsupportedFileEncoding ErrorCode = "UNSUPPORTED_FILE_ENCODING"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"

	// Network errors
	ErrFetch ErrorCode = "FETCH"
)

// Error carries a stable Code next to the human message. Tests assert on
// the code; the message is free to change.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func build(cause error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: map[string]interface{}{}, Wrapped: cause}
}

// New returns an Error with no cause.
func New(code ErrorCode, message string) *Error { return build(nil, code, message) }

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return build(nil, code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return build(err, code, message)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return build(err, code, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	msg := "[" + string(e.Code) + "] " + e.Message
	if e.Wrapped == nil {
		return msg
	}
	return msg + ": " + e.Wrapped.Error()
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetail records key=value on e and returns e for chaining.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func find(err error) (*Error, bool) {
	var e *Error
	return e, errors.As(err, &e)
}

// IsErrorCode reports whether any *Error in err's chain has code.
func IsErrorCode(err error, code ErrorCode) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetErrorCode returns the code of the first *Error in err's chain, or
// ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of the first *Error in err's chain.
func GetErrorDetails(err error) map[string]interface{} {
	if e, ok := find(err); ok {
		return e.Details
	}
	return nil
}

// IsRecoverable reports whether err is an input error the editor handles by
// prompting again.
func IsRecoverable(err error) bool {
	switch GetErrorCode(err) {
	case ErrInvalidSelection, ErrEmptyFieldValue:
		return true
	}
	return false
}
