package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies service errors so transports can map them to protocol
// status codes without inspecting error strings.
type Code string

const (
	CodeInvalidInput         Code = "invalid_input"
	CodeNotFound             Code = "not_found"
	CodeEphemerisUnavailable Code = "ephemeris_unavailable"
	CodeConvergenceFailure   Code = "convergence_failure"
	CodeInternal             Code = "internal"
)

// ServiceError carries a stable code alongside a human-readable message and
// an optional wrapped cause.
type ServiceError struct {
	Code    Code
	Message string
	Err     error
}

func (e ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e ServiceError) Unwrap() error { return e.Err }

// New builds a ServiceError without a cause.
func New(code Code, message string) ServiceError {
	return ServiceError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code Code, message string, err error) ServiceError {
	return ServiceError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from err, walking the wrap chain. Unclassified
// errors report CodeInternal.
func CodeOf(err error) Code {
	var se ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps error codes to HTTP statuses. Only the transport layer
// should call this.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeEphemerisUnavailable:
		return http.StatusServiceUnavailable
	case CodeConvergenceFailure:
		// Convergence failures still produce a usable best estimate; they are
		// surfaced in response metadata, never as an HTTP failure.
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
