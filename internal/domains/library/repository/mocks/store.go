// Package mocks provides a testify mock of the Store for service tests.
package mocks

import (
	"context"
	"time"

	"library-backend/internal/domains/library/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of repository.Store.
type Store struct {
	mock.Mock
}

func (m *Store) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	book, _ := args.Get(0).(*model.Book)
	return book, args.Error(1)
}

func (m *Store) GetBookByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	args := m.Called(ctx, isbn)
	book, _ := args.Get(0).(*model.Book)
	return book, args.Error(1)
}

func (m *Store) GetAllBooks(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func (m *Store) InsertBook(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *Store) UpdateBookAvailability(ctx context.Context, bookID uuid.UUID, expected, newAvailable int) (bool, error) {
	args := m.Called(ctx, bookID, expected, newAvailable)
	return args.Bool(0), args.Error(1)
}

func (m *Store) GetPatronBorrowRecords(ctx context.Context, patronID string) ([]model.BorrowRecord, error) {
	args := m.Called(ctx, patronID)
	records, _ := args.Get(0).([]model.BorrowRecord)
	return records, args.Error(1)
}

func (m *Store) GetActiveBorrowRecord(ctx context.Context, patronID string, bookID uuid.UUID) (*model.BorrowRecord, error) {
	args := m.Called(ctx, patronID, bookID)
	record, _ := args.Get(0).(*model.BorrowRecord)
	return record, args.Error(1)
}

func (m *Store) InsertBorrowRecord(ctx context.Context, record *model.BorrowRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *Store) UpdateBorrowRecordReturn(ctx context.Context, recordID uuid.UUID, returnDate time.Time) (bool, error) {
	args := m.Called(ctx, recordID, returnDate)
	return args.Bool(0), args.Error(1)
}
