package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
)

// Access error codes
const (
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeViewNotFound = "ERR_VIEW_NOT_FOUND"
)

// State error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeCartStoreNotInitialized means the cart count was read outside
	// the store's lifecycle
	ErrCodeCartStoreNotInitialized = "ERR_CART_STORE_NOT_INITIALIZED"
)

// Input error codes
const (
	ErrCodeBadRequest       = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput     = "ERR_INVALID_INPUT"
	ErrCodeCategoryRequired = "ERR_CATEGORY_REQUIRED"
	ErrCodeRequestTooLarge  = "ERR_REQUEST_TOO_LARGE"
)

// Upstream error codes
const (
	// ErrCodeUpstreamUnavailable is used when the commerce API failed
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,

	ErrCodeForbidden: http.StatusForbidden,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeViewNotFound: http.StatusNotFound,

	ErrCodeInvalidState:            http.StatusUnprocessableEntity,
	ErrCodeCartStoreNotInitialized: http.StatusInternalServerError,

	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeCategoryRequired: http.StatusBadRequest,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,

	ErrCodeUpstreamUnavailable: http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                  ErrCodeNotFound,
	"INVALID_INPUT":              ErrCodeInvalidInput,
	"INVALID_STATE":              ErrCodeInvalidState,
	"CART_STORE_NOT_INITIALIZED": ErrCodeCartStoreNotInitialized,
	"VIEW_NOT_FOUND":             ErrCodeViewNotFound,
	"CATEGORY_REQUIRED":          ErrCodeCategoryRequired,
	"UPSTREAM_UNAVAILABLE":       ErrCodeUpstreamUnavailable,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
