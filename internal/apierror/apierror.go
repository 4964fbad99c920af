// Package apierror provides the standardized error envelope for command
// responses. All errors returned to the UI go through this package to ensure
// consistency and to prevent leaking internal details (stack traces, SQL
// errors, etc.).
package apierror

// APIError is the canonical error envelope for every failed command.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
