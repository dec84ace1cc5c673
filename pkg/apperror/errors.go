package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the cashier-facing surface.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNetwork     Kind = "network"
	KindUnsupported Kind = "unsupported"
	KindDevice      Kind = "device"
	KindConflict    Kind = "conflict"
	KindNotFound    Kind = "not_found"
	KindAuth        Kind = "auth"
	KindInternal    Kind = "internal"

	// KindPairingRequired asks the terminal to pair the printer and then
	// resend the same print request.
	KindPairingRequired Kind = "pairing_required"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Kind: KindValidation, Message: "Forbidden"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Invalid username or password"}
	ErrSessionExpired     = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Terminal session has ended"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, fieldErrors ...FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewForbiddenError is a validation failure the interface should have
// prevented, such as editing a locked price.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewNetworkError wraps a failed call to the store backend. The operation is
// retryable and no local state has been lost.
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindNetwork,
		Message: message,
		cause:   cause,
	}
}

// NewUnsupportedError reports a capability that is absent on this terminal.
func NewUnsupportedError(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotImplemented,
		Kind:    KindUnsupported,
		Message: message,
	}
}

// NewDeviceError reports a pairing or transfer failure. It never implies
// that the order failed to persist.
func NewDeviceError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindDevice,
		Message: message,
		cause:   cause,
	}
}

// NewPairingRequiredError reports a print attempted on a disconnected
// printer without asking to pair first.
func NewPairingRequiredError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusPreconditionRequired,
		Kind:    KindPairingRequired,
		Message: message,
		cause:   cause,
	}
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

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
