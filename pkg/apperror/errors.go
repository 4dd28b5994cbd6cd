package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category. The ledger engine reports every
// invariant violation as one of these; handlers map them to HTTP responses.
type Kind string

const (
	KindNotFound               Kind = "NOT_FOUND"
	KindInvalidState           Kind = "INVALID_STATE"
	KindInsufficientStock      Kind = "INSUFFICIENT_STOCK"
	KindOverPayment            Kind = "OVER_PAYMENT"
	KindOverReceipt            Kind = "OVER_RECEIPT"
	KindInvalidQuantity        Kind = "INVALID_QUANTITY"
	KindSequenceExhausted      Kind = "SEQUENCE_EXHAUSTED"
	KindConcurrentModification Kind = "CONCURRENT_MODIFICATION"
	KindValidation             Kind = "VALIDATION"
	KindUnauthorized           Kind = "UNAUTHORIZED"
	KindForbidden              Kind = "FORBIDDEN"
	KindConflict               Kind = "CONFLICT"
	KindInternal               Kind = "INTERNAL"
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
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Kind: KindValidation, Message: message}
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

// NewNotFoundError creates a not found error with a custom message.
// Entities outside the caller's shop report the same error as absent ones;
// callers cannot distinguish the two.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: resource + " not found"}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: message}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: message}
}

// NewInvalidStateError reports an operation against an entity whose current
// status forbids it (e.g. receiving against a cancelled purchase order).
func NewInvalidStateError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindInvalidState, Message: message}
}

// NewInsufficientStockError reports a stock decrement that would go negative.
func NewInsufficientStockError(product string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for %s", product),
	}
}

// NewOverPaymentError reports a payment exceeding the outstanding balance.
func NewOverPaymentError(amount, balance string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindOverPayment,
		Message: fmt.Sprintf("Payment amount (%s) exceeds remaining balance (%s)", amount, balance),
	}
}

// NewOverReceiptError reports a received quantity exceeding the remaining
// quantity on a purchase order line.
func NewOverReceiptError(product string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindOverReceipt,
		Message: fmt.Sprintf("Received quantity exceeds remaining quantity for %s", product),
	}
}

// NewInvalidQuantityError reports a zero or negative quantity where a positive
// one is required.
func NewInvalidQuantityError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindInvalidQuantity, Message: message}
}

// NewSequenceExhaustedError reports that document number generation kept
// colliding with existing numbers after the bounded retry budget.
func NewSequenceExhaustedError(document string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindSequenceExhausted,
		Message: fmt.Sprintf("Could not allocate a unique %s number", document),
	}
}

// NewConcurrentModificationError reports a lock or constraint conflict that
// survived the bounded retries.
func NewConcurrentModificationError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindConcurrentModification, Message: message}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
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
	return &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: err.Error()}
}
