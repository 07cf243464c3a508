package errors

import "fmt"

// ErrorCode represents a fairshare error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrBusy             ErrorCode = "BUSY"              // 409
	ErrInvalidImport    ErrorCode = "INVALID_IMPORT"    // 422
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED" // 502
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing exploration or story.
func NewNotFound(identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewBusy creates a 409 error for an operation that already has a request
// in flight.
func NewBusy(operation string) *Error {
	return &Error{
		Code:    ErrBusy,
		Status:  409,
		Message: fmt.Sprintf("a %s request is already in flight", operation),
		Details: map[string]any{"operation": operation},
	}
}

// NewInvalidImport creates a 422 error for an import file that failed
// validation. The existing collection is never touched when this is returned.
func NewInvalidImport(msg string) *Error {
	return &Error{
		Code:    ErrInvalidImport,
		Status:  422,
		Message: msg,
	}
}

// NewGenerationFailed creates a 502 error for a failed story generation.
// The contract exposes no structured detail about the upstream failure.
func NewGenerationFailed() *Error {
	return &Error{
		Code:    ErrGenerationFailed,
		Status:  502,
		Message: "story generation failed; please try again",
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an Error with the given code.
func Is(err error, code ErrorCode) bool {
	if fErr, ok := err.(*Error); ok {
		return fErr.Code == code
	}
	return false
}
