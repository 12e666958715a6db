package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry these codes directly;
// the HTTP layer only decides the status line.
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Input errors -> 400 Bad Request
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_EMAIL":    http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_SLUG":     http.StatusBadRequest,
	"INVALID_PRICE":    http.StatusBadRequest,
	"INVALID_VARIANTS": http.StatusBadRequest,
	"INVALID_USER":     http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_DISABLED":    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:        http.StatusNotFound,
	"USER_NOT_FOUND":       http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE": http.StatusUnprocessableEntity,
	"INVALID_VARIANT":     http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_ARCHIVED":    http.StatusUnprocessableEntity,
	"ALREADY_DISABLED":    http.StatusUnprocessableEntity,

	// Server errors
	ErrCodeInternal:        http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR":  http.StatusInternalServerError,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unmapped codes come from domain rule violations and map to 422.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
