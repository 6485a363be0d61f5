package shared

import "errors"

// DomainError represents a domain-level error with a stable code
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
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
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// ErrCartStoreNotInitialized is returned when the cart count is read
	// before the store was initialized or after it was torn down.
	ErrCartStoreNotInitialized = NewDomainError("CART_STORE_NOT_INITIALIZED", "Cart state store used outside its lifecycle")
	ErrViewNotFound            = NewDomainError("VIEW_NOT_FOUND", "Cart view not found or expired")
	ErrCategoryRequired        = NewDomainError("CATEGORY_REQUIRED", "No category specified")
	ErrUpstreamUnavailable     = NewDomainError("UPSTREAM_UNAVAILABLE", "Commerce service unavailable")
)
