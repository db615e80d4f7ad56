package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports malformed input. It carries the offending field
// and the reason so callers (and tests) can tell failure causes apart.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// DuplicateISBNError reports a catalog uniqueness violation.
type DuplicateISBNError struct {
	ISBN string
}

func (e *DuplicateISBNError) Error() string {
	return fmt.Sprintf("a book with ISBN %s already exists", e.ISBN)
}

// UnavailableError reports a borrow attempt against a book with no copies
// left.
type UnavailableError struct {
	ISBN string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("book %s is currently not available", e.ISBN)
}

// BorrowLimitExceededError reports a patron at or over the active-loan cap.
type BorrowLimitExceededError struct {
	PatronID    string
	ActiveLoans int
}

func (e *BorrowLimitExceededError) Error() string {
	return fmt.Sprintf("patron %s has %d active loans, the limit is %d",
		e.PatronID, e.ActiveLoans, MaxActiveBorrows)
}

// PersistenceError reports a storage collaborator failure. The underlying
// error is preserved for logging but not exposed to clients.
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage failure during %s", e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrBookNotFound builds the NotFoundError for a missing book.
func ErrBookNotFound(isbn string) *NotFoundError {
	return &NotFoundError{Entity: "book", Key: isbn}
}

// ErrNoActiveBorrow builds the NotFoundError for a missing active loan.
func ErrNoActiveBorrow(patronID string, bookID uuid.UUID) *NotFoundError {
	return &NotFoundError{
		Entity: "active borrow record",
		Key:    fmt.Sprintf("patron %s, book %s", patronID, bookID),
	}
}
