// Package errors provides the structured error type every layer returns.
// Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine readable cause. Values are on the wire; append only
type ErrorCode uint16

// Codes
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeUnauthorized
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeUpstream
)

// Kind is the caller facing class of an error
type Kind string

// Kinds returned to API callers
const (
	KindInvalidInput    Kind = "INVALID_INPUT"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindNotFound        Kind = "NOT_FOUND"
	KindRateLimited     Kind = "RATE_LIMITED"
	KindInternal        Kind = "INTERNAL"
)

type codeInfo struct {
	name   string
	kind   Kind
	status int
}

// codes not listed here are INTERNAL / 500
var codeTable = map[ErrorCode]codeInfo{
	ErrorCodeUnknown:         {"unknown", KindInternal, http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", KindInternal, http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", KindInternal, http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests: {"too_many_requests", KindRateLimited, http.StatusTooManyRequests},
	ErrorCodeUnauthorized:    {"unauthorized", KindUnauthenticated, http.StatusUnauthorized},
	ErrorCodeInvalidArgument: {"invalid_argument", KindInvalidInput, http.StatusBadRequest},
	ErrorCodeValidation:      {"validation", KindInvalidInput, http.StatusBadRequest},
	ErrorCodeJSON:            {"json", KindInvalidInput, http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", KindNotFound, http.StatusNotFound},
	// post ids are server generated, so a collision is our fault
	ErrorCodeDuplicateKey: {"duplicate_key", KindInternal, http.StatusInternalServerError},
	ErrorCodeDB:           {"db", KindInternal, http.StatusInternalServerError},
	ErrorCodeUpstream:     {"upstream", KindInternal, http.StatusInternalServerError},
}

func info(c ErrorCode) codeInfo {
	if i, ok := codeTable[c]; ok {
		return i
	}
	return codeInfo{fmt.Sprintf("code(%d)", uint16(c)), KindInternal, http.StatusInternalServerError}
}

// String names the code for logs
func (c ErrorCode) String() string { return info(c).name }

// KindOf maps an ErrorCode to its caller facing Kind
func KindOf(c ErrorCode) Kind { return info(c).kind }

// HTTPStatusCode maps an ErrorCode to an http status
func HTTPStatusCode(c ErrorCode) int { return info(c).status }

// ErrNotFound is returned by store helpers when a single row lookup finds nothing
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a developer facing message and optional field and op labels
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the error part of a response envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending input field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if any
func (e *Error) Op() string { return e.op }

// WireFrom converts any error into its wire form. Internal failures keep the
// cause in the message; client errors never expose it
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	e, ok := As(err)
	if !ok {
		return Wire{Code: ErrorCodeUnknown, Kind: KindInternal, Message: err.Error()}
	}
	msg := e.msg
	if e.orig != nil && KindOf(e.code) == KindInternal {
		msg = e.Error()
	}
	return Wire{Code: e.code, Kind: KindOf(e.code), Message: msg, Field: e.field}
}

// HTTP returns the status and wire form for err
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns err's code, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// KindFor returns err's Kind; "" for nil
func KindFor(err error) Kind {
	if err == nil {
		return ""
	}
	return KindOf(CodeOf(err))
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy of err labelled with field. Foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// WithOp returns a copy of err labelled with op. Foreign errors pass through
func WithOp(err error, op string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.op = op
	return &c
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with formatting
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns an *Error with code and msg around orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with formatting
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// NotFoundf returns a NOT_FOUND error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// Validationf returns an INVALID_INPUT validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// JSONErrf returns an INVALID_INPUT json error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns an INTERNAL panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf returns an UNAUTHENTICATED error
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// TooManyRequestsf returns a RATE_LIMITED error
func TooManyRequestsf(format string, a ...any) error {
	return Newf(ErrorCodeTooManyRequests, format, a...)
}
