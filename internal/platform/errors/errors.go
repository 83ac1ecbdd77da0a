// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"

	smithy "github.com/aws/smithy-go"
)

// ErrorCode defines supported error codes used across the workflows
// Values are stable for wire compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for panics recovered at the handler boundary
	ErrorCodePanic

	// ErrorCodeValidation is for validation failures (input data)
	ErrorCodeValidation

	// ErrorCodeJSON is for JSON parsing errors in configuration
	ErrorCodeJSON

	// ErrorCodeNotFound is for missing external resources
	ErrorCodeNotFound

	// ErrorCodeProvider is for calls the cloud provider rejected or failed
	ErrorCodeProvider

	// ErrorCodeTimeout is for poll loops that exhausted their deadline
	ErrorCodeTimeout

	// ErrorCodeFatalState is for resources that reported an explicit failure state
	ErrorCodeFatalState
)

// HTTPStatusCode turns an ErrorCode into an http status code.
// Input problems map to 400, everything else maps to 500. NotFound is
// control flow for the workflows, not a caller-visible category: a missing
// resource escaping to the boundary is a provider-side failure
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrNotFound is a sentinel not found error for convenience
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// providerCode is the upstream API's native error code, when one exists
// op is an optional operation tag; orig is the wrapped cause
type Error struct {
	orig         error
	msg          string
	code         ErrorCode
	providerCode string
	op           string
}

// Wire is the JSON-serializable form returned at the handler boundary
type Wire struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// ProviderCode returns the upstream API error code, if any
func (e *Error) ProviderCode() string { return e.providerCode }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// ToWire converts an *Error to a Wire payload
func (e *Error) ToWire() Wire { return Wire{Error: e.msg, ErrorCode: e.providerCode} }

// WireFrom converts any error into a Wire payload with best-effort mapping
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Error: err.Error()}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool { return IsCode(err, ErrorCodeNotFound) }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// FromAPI normalizes a cloud SDK error into an *Error, keeping the provider's
// native code and message. Non-API errors become Unknown.
func FromAPI(orig error) error {
	if orig == nil {
		return nil
	}
	var ae smithy.APIError
	if stderrs.As(orig, &ae) {
		return &Error{
			code:         ErrorCodeProvider,
			msg:          fmt.Sprintf("AWS Error: %s", ae.ErrorMessage()),
			providerCode: ae.ErrorCode(),
			orig:         orig,
		}
	}
	return &Error{code: ErrorCodeUnknown, msg: orig.Error(), orig: orig}
}

// Sugar

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// Providerf returns a provider error without a native code
func Providerf(format string, a ...any) error { return Newf(ErrorCodeProvider, format, a...) }

// Timeoutf returns a convergence timeout error
func Timeoutf(format string, a ...any) error { return Newf(ErrorCodeTimeout, format, a...) }

// FatalStatef returns a fatal resource state error
func FatalStatef(format string, a ...any) error { return Newf(ErrorCodeFatalState, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// HTTP bundles status + wire in one shot (nice for handlers)
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}
