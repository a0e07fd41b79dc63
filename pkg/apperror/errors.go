package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers can react without parsing messages
type Kind string

const (
	KindValidation        Kind = "ValidationError"
	KindNotFound          Kind = "NotFound"
	KindInsufficientStock Kind = "InsufficientStock"
	KindVendorConflict    Kind = "VendorConflict"
	KindExceedsOriginal   Kind = "ExceedsOriginal"
	KindExceedsRequested  Kind = "ExceedsRequested"
	KindStateConflict     Kind = "StateConflict"
	KindBarcodeExhausted  Kind = "BarcodeExhausted"
	KindUnauthorized      Kind = "Unauthorized"
	KindForbidden         Kind = "Forbidden"
	KindConflict          Kind = "Conflict"
	KindRateLimited       Kind = "RateLimited"
	KindServer            Kind = "ServerError"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindServer, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a shorthand for a validation error on a single field
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewInsufficientStockError reports a movement larger than the bucket holds
func NewInsufficientStockError(product string, available, requested int) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for %s: available %d, requested %d", product, available, requested),
	}
}

// NewVendorConflictError reports a product already bound to another company
func NewVendorConflictError(product string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindVendorConflict,
		Message: fmt.Sprintf("Product %s is already purchased from another company", product),
	}
}

// NewExceedsOriginalError reports a return quantity above its historical ceiling
func NewExceedsOriginalError(product string, ceiling, requested int) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindExceedsOriginal,
		Message: fmt.Sprintf("Return quantity %d for %s exceeds original quantity %d", requested, product, ceiling),
	}
}

// NewExceedsRequestedError reports an accepted quantity above the requested one
func NewExceedsRequestedError(requested, accepted int) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindExceedsRequested,
		Message: fmt.Sprintf("Accepted quantity %d exceeds requested quantity %d", accepted, requested),
	}
}

// NewStateConflictError reports a transition outside the state machine
func NewStateConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindStateConflict,
		Message: message,
	}
}

// NewBarcodeExhaustedError reports that no free barcode was found
func NewBarcodeExhaustedError(attempts int) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindBarcodeExhausted,
		Message: fmt.Sprintf("Could not generate a unique barcode after %d attempts", attempts),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// Is reports whether err is an AppError of the given kind
func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible.
// Unknown errors become a generic server error so internals never reach the client.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer
}
