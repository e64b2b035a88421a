package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the action,
// typically a branch-scoped user addressing another branch.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the requested mutation conflicts with the current
// state of the resource, e.g. editing a transaction that already spawned a debt.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected failure that should not be exposed in detail.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and a message
// safe to surface to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// InsufficientStockError is a validation failure carrying the available and
// requested quantities so handlers can build a useful message.
type InsufficientStockError struct {
	ItemID    string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: available %s, requested %s",
		e.ItemID, e.Available.String(), e.Requested.String())
}

// Unwrap makes InsufficientStockError match ErrValidation via errors.Is,
// since it is caller-input driven like any other validation failure.
func (e *InsufficientStockError) Unwrap() error {
	return ErrValidation
}

// NewInsufficientStockError creates an InsufficientStockError for the given item.
func NewInsufficientStockError(itemID string, available, requested decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{ItemID: itemID, Available: available, Requested: requested}
}
