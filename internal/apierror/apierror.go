// Package apierror defines the error envelopes written to clients.
// Handlers never serialize raw Go errors; everything funnels through
// these types so database and driver messages stay internal.
package apierror

// APIError is the body of every non-2xx response except validation
// failures.
type APIError struct {
	Detail string `json:"detail"`
}

func (e *APIError) Error() string { return e.Detail }

// New builds an APIError carrying a client-safe message.
func New(detail string) *APIError {
	return &APIError{Detail: detail}
}

// ValidationError carries one message per offending request field and is
// returned with status 422.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}
