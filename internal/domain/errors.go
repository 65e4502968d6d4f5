package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for the boundary layer
type Kind int

const (
	KindValidation Kind = iota + 1 // Missing or malformed input
	KindNotFound                   // Referenced row absent
	KindConflict                   // Request contradicts current state
	KindStorage                    // The store itself failed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every controller. Message is safe to
// show to end users; Err carries the underlying cause, if any.
type Error struct {
	Kind    Kind   // Error category
	Code    string // Stable identifier of the specific cause
	Message string // Human-readable message
	Err     error  // Wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code, so copies made by
// WithMessage still satisfy errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of e with a different user-facing message
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// Validation errors
var (
	ErrMissingFields = &Error{Kind: KindValidation, Code: "missing_fields", Message: "All fields required"}
	ErrInvalidAmount = &Error{Kind: KindValidation, Code: "invalid_amount", Message: "Invalid amount"}
	ErrInvalidStatus = &Error{Kind: KindValidation, Code: "invalid_status", Message: "Invalid status value"}
	ErrInvalidRole   = &Error{Kind: KindValidation, Code: "invalid_role", Message: "Invalid role"}
	ErrInvalidPrice  = &Error{Kind: KindValidation, Code: "invalid_price", Message: "Price must be a non-negative amount"}
	ErrInvalidStock  = &Error{Kind: KindValidation, Code: "invalid_quantity", Message: "Quantity must be a non-negative integer"}
	ErrInvalidID     = &Error{Kind: KindValidation, Code: "invalid_id", Message: "Invalid id"}
)

// Not-found errors
var (
	ErrUserNotFound  = &Error{Kind: KindNotFound, Code: "user_not_found", Message: "User not found"}
	ErrItemNotFound  = &Error{Kind: KindNotFound, Code: "item_not_found", Message: "Food not found"}
	ErrOrderNotFound = &Error{Kind: KindNotFound, Code: "order_not_found", Message: "Order not found"}
	ErrNoneFound     = &Error{Kind: KindNotFound, Code: "none_found", Message: "No matching orders found for this user."}
)

// Conflict errors
var (
	ErrOutOfStock         = &Error{Kind: KindConflict, Code: "out_of_stock", Message: "Out of stock"}
	ErrInsufficientFunds  = &Error{Kind: KindConflict, Code: "insufficient_funds", Message: "Insufficient wallet balance or user not found."}
	ErrEmailAlreadyExists = &Error{Kind: KindConflict, Code: "email_exists", Message: "Email already exists"}
	ErrInvalidPassword    = &Error{Kind: KindConflict, Code: "invalid_password", Message: "Invalid password"}
)

// Storage errors
var (
	ErrStorage             = &Error{Kind: KindStorage, Code: "storage", Message: "Database error"}
	ErrOrderCreationFailed = &Error{Kind: KindStorage, Code: "order_creation_failed", Message: "Failed to order"}
)

// StorageError wraps a failed store operation
func StorageError(err error) error {
	return &Error{Kind: KindStorage, Code: ErrStorage.Code, Message: ErrStorage.Message, Err: err}
}

// Wrap attaches a cause to a sentinel
func Wrap(sentinel *Error, err error) error {
	cp := *sentinel
	cp.Err = err
	return &cp
}

// KindOf returns the Kind of err, treating foreign errors as storage failures
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// MessageOf returns the user-facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ErrStorage.Message
}
