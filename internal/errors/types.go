package errors

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string   `json:"error"`             // error code (e.g., "validation_error", "server_error")
	Message string   `json:"message"`           // user-friendly message
	Details string   `json:"details,omitempty"` // optional details (sanitized in production)
	Fields  []string `json:"fields,omitempty"`  // offending request fields for validation errors
}

type ErrorInfo struct {
	category  string
	sanitized string
}

// standard error codes
const (
	CodeNotFound           = "not_found"
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeBadRequest         = "bad_request"
	CodeTooManyRequests    = "too_many_requests"
	CodeServiceUnavailable = "service_unavailable"
)

// error categories for classification
const (
	CategoryDatabase    = "database"
	CategoryNetwork     = "network"
	CategoryUnavailable = "unavailable"
	CategoryValidation  = "validation"
	CategoryNotFound    = "not_found"
	CategoryTimeout     = "timeout"
	CategoryUnknown     = "unknown"
)
