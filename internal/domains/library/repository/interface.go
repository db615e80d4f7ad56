package repository

import (
	"context"
	"time"

	"library-backend/internal/domains/library/model"

	"github.com/google/uuid"
)

// Store is the storage collaborator every service depends on. All library
// state lives behind this interface; the services themselves are stateless.
//
// Lookup methods return (nil, nil) when the entity is absent, errors are
// reserved for storage failures.
type Store interface {
	// Books
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*model.Book, error)
	GetAllBooks(ctx context.Context) ([]model.Book, error)
	InsertBook(ctx context.Context, book *model.Book) error

	// UpdateBookAvailability is a compare-and-set: it only applies when the
	// stored available_copies still equals expected, so two concurrent
	// borrowers cannot both take the last copy. Returns false when the
	// condition did not match.
	UpdateBookAvailability(ctx context.Context, bookID uuid.UUID, expected, newAvailable int) (bool, error)

	// Borrow records
	GetPatronBorrowRecords(ctx context.Context, patronID string) ([]model.BorrowRecord, error)
	GetActiveBorrowRecord(ctx context.Context, patronID string, bookID uuid.UUID) (*model.BorrowRecord, error)
	InsertBorrowRecord(ctx context.Context, record *model.BorrowRecord) error

	// UpdateBorrowRecordReturn closes a record. Returns false when the
	// record no longer exists or is already closed.
	UpdateBorrowRecordReturn(ctx context.Context, recordID uuid.UUID, returnDate time.Time) (bool, error)
}
