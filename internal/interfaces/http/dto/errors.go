package dto

import "net/http"

// Transport-level error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain and transport error codes to HTTP status
// codes. Codes not listed here fall back to 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Auth
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,

	// Resources
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,

	// Validation -> 400 Bad Request
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_CODE":          http.StatusBadRequest,
	"INVALID_NAME":          http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_STOCK":         http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_REORDER_LEVEL": http.StatusBadRequest,
	"INVALID_STATUS":        http.StatusBadRequest,
	"INVALID_PRODUCT":       http.StatusBadRequest,
	"INVALID_PRODUCT_NAME":  http.StatusBadRequest,
	"DUPLICATE_PRODUCT":     http.StatusBadRequest,
	"INVALID_CUSTOMER":      http.StatusBadRequest,
	"INVALID_ORDER_NUMBER":  http.StatusBadRequest,
	"INVALID_EMAIL":         http.StatusBadRequest,
	"INVALID_PASSWORD":      http.StatusBadRequest,
	"INVALID_FEEDBACK":      http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 so they surface as server-side defects.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
