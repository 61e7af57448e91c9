// Package apperr defines the application error taxonomy. Services raise these
// at the point of detection; the HTTP boundary translates them in one place.
package apperr

import "net/http"

// Stable machine-readable codes carried in error responses.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeDomain       = "DOMAIN_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// Error is a domain or request error with an HTTP mapping. Fields is set only
// for field-validation failures.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string { return e.Message }

func Validation(fields map[string][]string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// Domain signals a business-rule violation with a stable code, e.g. EMAIL_EXISTS.
func Domain(message, code string) *Error {
	if code == "" {
		code = CodeDomain
	}
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message}
}

// Internal hides the cause behind a generic message. The original error is for
// logging at the boundary, never for the response body.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "An unexpected error occurred"}
}
