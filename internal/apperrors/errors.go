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

// ErrConflict indicates that the operation is not allowed in the resource's current state.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ImbalancedEntryError is returned when posting is attempted on a journal
// entry whose debit and credit totals differ. It carries the computed totals
// so the caller can surface the difference.
type ImbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *ImbalancedEntryError) Error() string {
	return fmt.Sprintf("entry is not balanced: total debit %s, total credit %s, difference %s",
		e.TotalDebit.String(), e.TotalCredit.String(), e.Difference().String())
}

// Difference returns total debit minus total credit.
func (e *ImbalancedEntryError) Difference() decimal.Decimal {
	return e.TotalDebit.Sub(e.TotalCredit)
}

func (e *ImbalancedEntryError) Unwrap() error { return ErrValidation }

// DeletionBlockedError is returned when an account deletion is blocked by
// journal lines that still reference the account.
type DeletionBlockedError struct {
	AccountID string
	LineCount int64
}

func (e *DeletionBlockedError) Error() string {
	return fmt.Sprintf("account %s cannot be deleted: %d journal line(s) reference it", e.AccountID, e.LineCount)
}

func (e *DeletionBlockedError) Unwrap() error { return ErrConflict }

// AppError wraps a lower-level error with a status code and message.
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

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
