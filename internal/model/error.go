package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeCheckoutInvalid  = "CHECKOUT_INVALID"
	ErrCodeOrderRejected    = "ORDER_REJECTED"
	ErrCodeOrderUnreachable = "ORDER_UNREACHABLE"
	ErrCodeReferenceData    = "REFERENCE_DATA_UNAVAILABLE"
	ErrCodeSessionNotFound  = "SESSION_NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCheckoutInvalid = NewDomainError(ErrCodeCheckoutInvalid, "One or more checkout fields are invalid")
	ErrSessionNotFound = NewDomainError(ErrCodeSessionNotFound, "Checkout session not found")
	ErrReferenceData   = NewDomainError(ErrCodeReferenceData, "Reference data is unavailable")
)
