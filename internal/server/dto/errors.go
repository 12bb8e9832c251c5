// Package dto defines API request/response types and error handling.
//
// This package contains all types used for HTTP API communication:
//   - Request types with path/query/json struct tags for parameter binding
//   - Response types for JSON serialization
//   - Structured error types with HTTP status codes and error codes
//   - API-specific enums (Category, Language)
//
// The dto package is the API contract layer, fully self-contained with no
// dependency on the storage packages. Conversion between dto and catalog
// types is handled by the handlers package (in convert.go).
//
// Error handling follows a structured pattern:
//   - ErrorCode provides machine-readable error classification
//   - APIError wraps errors with HTTP status codes, field violations and details
//   - Constructor functions (NotFound, Validation, etc.) create common errors
package dto

import (
	"fmt"
	"maps"
	"net/http"
	"strconv"
)

// ErrorCode defines specific error types for the API.
type ErrorCode string

const (
	// ErrorCodeValidation is returned when one or more input fields fail their
	// constraints.
	ErrorCodeValidation ErrorCode = "VALIDATION"
	// ErrorCodeMalformedRequest is returned when the payload cannot be parsed
	// into the expected shape.
	ErrorCodeMalformedRequest ErrorCode = "MALFORMED_REQUEST"
	// ErrorCodeNotFound is returned when a resource or route is not found.
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrorCodeMethodNotAllowed is returned for an unsupported verb on a known
	// route.
	ErrorCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrorCodeConflict is returned when a write collides with a live resource.
	ErrorCodeConflict ErrorCode = "CONFLICT"
	// ErrorCodePayloadTooLarge is returned when the request body exceeds the
	// configured limit.
	ErrorCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	// ErrorCodeUnsupportedMediaType is returned when a body is not JSON.
	ErrorCodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	// ErrorCodeRateLimited is returned when the client exceeded its rate limit.
	ErrorCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrorCodeInternal is returned when an unexpected server error occurs.
	ErrorCodeInternal ErrorCode = "INTERNAL"
)

// InternalErrorMessage is the only message ever sent for ErrorCodeInternal.
const InternalErrorMessage = "An unexpected error occurred"

// ErrorDetails defines the structured error information in a response.
type ErrorDetails struct {
	Code    ErrorCode `json:"code" jsonschema:"description=Machine-readable error category"`
	Message string    `json:"message" jsonschema:"description=Human-readable error message"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field" jsonschema:"description=Name of the offending field or parameter"`
	Message string `json:"message" jsonschema:"description=Constraint that failed"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Status    int            `json:"status" jsonschema:"description=HTTP status code"`
	Error     ErrorDetails   `json:"error"`
	Fields    []FieldError   `json:"fields,omitempty" jsonschema:"description=Every failing field for validation errors"`
	Path      string         `json:"path,omitempty" jsonschema:"description=Request path"`
	Timestamp string         `json:"timestamp" jsonschema:"description=RFC 3339 UTC time of the error"`
	RequestID string         `json:"request_id,omitempty" jsonschema:"description=Identifier echoed in the X-Request-ID header"`
	Details   map[string]any `json:"details,omitempty"`
}

// ErrorWithStatus is an error that includes an HTTP status code and error code.
type ErrorWithStatus interface {
	Error() string
	Message() string
	StatusCode() int
	Code() ErrorCode
	Fields() []FieldError
	Details() map[string]any
}

// APIError is a concrete error type with status code and optional details.
type APIError struct {
	statusCode int
	code       ErrorCode
	message    string
	fields     []FieldError
	details    map[string]any
	wrappedErr error
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, code ErrorCode, message string) *APIError {
	return &APIError{
		statusCode: statusCode,
		code:       code,
		message:    message,
		details:    make(map[string]any),
	}
}

// WithDetails adds details to the error.
func (e *APIError) WithDetails(details map[string]any) *APIError {
	if e.details == nil {
		e.details = make(map[string]any)
	}
	maps.Copy(e.details, details)
	return e
}

// WithDetail adds a single detail to the error.
func (e *APIError) WithDetail(key string, value any) *APIError {
	if e.details == nil {
		e.details = make(map[string]any)
	}
	e.details[key] = value
	return e
}

// WithFields appends field-level violations to the error.
func (e *APIError) WithFields(fields ...FieldError) *APIError {
	e.fields = append(e.fields, fields...)
	return e
}

// Wrap wraps an underlying error.
func (e *APIError) Wrap(err error) *APIError {
	e.wrappedErr = err
	return e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrappedErr)
	}
	return e.message
}

// Message returns the client-facing message, without the wrapped cause.
func (e *APIError) Message() string {
	return e.message
}

// StatusCode returns the HTTP status code.
func (e *APIError) StatusCode() int {
	return e.statusCode
}

// Code returns the error code.
func (e *APIError) Code() ErrorCode {
	return e.code
}

// Fields returns the field-level violations, if any.
func (e *APIError) Fields() []FieldError {
	return e.fields
}

// Details returns additional error details.
func (e *APIError) Details() map[string]any {
	return e.details
}

// Unwrap returns the wrapped error if any.
func (e *APIError) Unwrap() error {
	return e.wrappedErr
}

// Predefined error constructors for common cases

// Validation creates a 400 error listing every failing field. The message is
// the first violation.
func Validation(fields ...FieldError) *APIError {
	msg := "Validation error"
	if len(fields) > 0 {
		msg = fields[0].Message
	}
	return NewAPIError(http.StatusBadRequest, ErrorCodeValidation, msg).WithFields(fields...)
}

// InvalidField creates a 400 error for a single failing field.
func InvalidField(field, message string) *APIError {
	return Validation(FieldError{Field: field, Message: message})
}

// MissingField creates a 400 error for a required property absent from the
// payload.
func MissingField(fieldName string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeMalformedRequest, "Missing required field: "+fieldName).
		WithFields(FieldError{Field: fieldName, Message: "is required"})
}

// Malformed creates a 400 error for a payload that cannot be parsed.
func Malformed(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeMalformedRequest, message)
}

// NotFound creates a 404 Not Found error.
func NotFound(resource string) *APIError {
	return NewAPIError(http.StatusNotFound, ErrorCodeNotFound, resource+" not found")
}

// Conflict creates a 409 Conflict error.
func Conflict(message string) *APIError {
	return NewAPIError(http.StatusConflict, ErrorCodeConflict, message)
}

// MethodNotAllowed creates a 405 error.
func MethodNotAllowed(method string) *APIError {
	return NewAPIError(http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "Method "+method+" is not supported on this resource")
}

// PayloadTooLarge creates a 413 error for request bodies over limit bytes.
func PayloadTooLarge(limit int64) *APIError {
	return NewAPIError(http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge,
		"Request body exceeds "+strconv.FormatInt(limit, 10)+" bytes").WithDetail("limit_bytes", limit)
}

// UnsupportedMediaType creates a 415 error.
func UnsupportedMediaType(contentType string) *APIError {
	return NewAPIError(http.StatusUnsupportedMediaType, ErrorCodeUnsupportedMediaType,
		"Content-Type "+strconv.Quote(contentType)+" is not supported, use application/json")
}

// RateLimitExceeded creates a 429 error.
func RateLimitExceeded(retryAfterSeconds int) *APIError {
	return NewAPIError(http.StatusTooManyRequests, ErrorCodeRateLimited, "Too many requests").
		WithDetail("retry_after", retryAfterSeconds)
}

// Internal returns a 500 Internal Server Error.
func Internal(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrorCodeInternal, message)
}

// InternalWithError creates a 500 error wrapping an underlying error.
func InternalWithError(message string, err error) *APIError {
	return Internal(message).Wrap(err)
}
