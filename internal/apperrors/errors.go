package apperrors

import "fmt"

// APIError is a failure with a known HTTP translation. Handlers and
// repositories return these; the app-level error handler is the only
// place they are turned into a response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// BadRequest creates a 400 error with the given message.
func BadRequest(msg string) *APIError {
	return &APIError{Status: 400, Message: msg}
}

// NotFound creates a 404 error with the given message.
func NotFound(msg string) *APIError {
	return &APIError{Status: 404, Message: msg}
}

// Internal creates a 500 error with the given message.
func Internal(msg string) *APIError {
	return &APIError{Status: 500, Message: msg}
}

// RouteNotFound creates the 404 returned for unmatched routes.
func RouteNotFound(path string) *APIError {
	return NotFound(fmt.Sprintf("Can't find %s on the server!", path))
}

// Well-known failures shared across layers. The store reports uniqueness
// violations at write time; there is no pre-check, so this is the only
// signal a duplicate email ever produces.
var (
	ErrDuplicateEmail = BadRequest("Email is in use!")
	ErrUserNotFound   = NotFound("User not found!")
	ErrInternal       = Internal("Internal server error")
)

// FieldError is a single violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every rule violated by a request body, not just
// the first one.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
}
