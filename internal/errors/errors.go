package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrIO           ErrorCode = "IO"
	ErrEncoding     ErrorCode = "ENCODING"

	// Configuration errors
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigParse  ErrorCode = "CONFIG_PARSE"
	ErrInvalidRule  ErrorCode = "INVALID_RULE"
	ErrInvalidColor ErrorCode = "INVALID_COLOR"
)

// Location points at the offending part of a line of text, such as a rule
// definition. Start and End are byte offsets into Line.
type Location struct {
	Line  string
	Start int
	End   int
}

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
	At      *Location
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. A nil err gives nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithLocation records the part of line the error is about. Offsets are
// clamped into line.
func (e *Error) WithLocation(line string, start, end int) *Error {
	start = min(max(start, 0), len(line))
	end = min(max(end, start), len(line))
	e.At = &Location{Line: line, Start: start, End: end}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetErrorCode returns the code of the first *Error in the chain, or
// ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// GetLocation returns the first location found in the chain, or nil.
func GetLocation(err error) *Location {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return nil
		}
		if e.At != nil {
			return e.At
		}
		err = e.Wrapped
	}
	return nil
}
