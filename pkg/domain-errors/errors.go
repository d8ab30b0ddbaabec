// Package domainerrors defines coded errors shared across the service.
//
// Services and engines return these so transport can translate them into HTTP
// responses without inspecting error strings. Construct with New at the point
// the fault is detected, or Wrap to attach a code to an underlying cause.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	// CodeValidation marks a structurally invalid input document.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks a request the transport layer could not decode.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks a field value outside its allowed domain.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"
	// CodeUnsupportedJurisdiction marks a jurisdiction with no registered
	// rule set. Client-error class: nothing was evaluated.
	CodeUnsupportedJurisdiction Code = "unsupported_jurisdiction"
	// CodeConversionFailed marks a currency provider fault (unreachable,
	// timed out, or missing the requested symbol).
	CodeConversionFailed Code = "conversion_failed"
	// CodeEvaluationFailed marks an evaluation aborted by an internal fault.
	CodeEvaluationFailed Code = "evaluation_failed"
	// CodeInternal marks any other unexpected server-side fault.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. The zero value is not meaningful; use New or
// Wrap.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is / errors.As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HasCode reports whether err or any error in its chain carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is is a readability alias for HasCode used at call sites that branch on a
// single code.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in the chain, or CodeInternal when err
// carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the HTTP status the transport layer writes.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest, CodeInvalidInput, CodeUnsupportedJurisdiction:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConversionFailed:
		return http.StatusBadGateway
	case CodeEvaluationFailed, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
