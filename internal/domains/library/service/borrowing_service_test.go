package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testPatron = "123456"
	testISBN   = "9780451524935"
)

func newBorrowing(store *mocks.Store, now time.Time) BorrowingService {
	svc := NewBorrowingService(store).(*borrowingService)
	svc.now = func() time.Time { return now }
	return svc
}

func activeRecords(n int) []model.BorrowRecord {
	records := make([]model.BorrowRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, model.BorrowRecord{
			ID:       uuid.New(),
			BookID:   uuid.New(),
			PatronID: testPatron,
		})
	}
	return records
}

func TestBorrowBookValidation(t *testing.T) {
	testCases := []struct {
		name string
		req  model.BorrowRequest
	}{
		{"short patron id", model.BorrowRequest{PatronID: "12345", ISBN: testISBN}},
		{"non-digit patron id", model.BorrowRequest{PatronID: "12345a", ISBN: testISBN}},
		{"bad isbn", model.BorrowRequest{PatronID: testPatron, ISBN: "123"}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.Store)
			svc := newBorrowing(store, time.Now())

			_, err := svc.BorrowBook(context.Background(), tt.req)
			assert.True(t, model.IsValidationError(err), "got %v", err)
			store.AssertExpectations(t)
		})
	}
}

func TestBorrowBookNotFound(t *testing.T) {
	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(nil, nil)

	svc := newBorrowing(store, time.Now())
	_, err := svc.BorrowBook(context.Background(), model.BorrowRequest{PatronID: testPatron, ISBN: testISBN})

	assert.True(t, model.IsNotFound(err), "got %v", err)
	store.AssertExpectations(t)
}

func TestBorrowBookUnavailable(t *testing.T) {
	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(&model.Book{
		ID: uuid.New(), ISBN: testISBN, TotalCopies: 2, AvailableCopies: 0,
	}, nil)

	svc := newBorrowing(store, time.Now())
	_, err := svc.BorrowBook(context.Background(), model.BorrowRequest{PatronID: testPatron, ISBN: testISBN})

	var unavail *model.UnavailableError
	require.ErrorAs(t, err, &unavail)
	store.AssertExpectations(t)
}

func TestBorrowBookLimit(t *testing.T) {
	book := &model.Book{ID: uuid.New(), ISBN: testISBN, TotalCopies: 5, AvailableCopies: 3}

	// Exactly at the cap: rejected.
	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetPatronBorrowRecords", mock.Anything, testPatron).Return(activeRecords(model.MaxActiveBorrows), nil)

	svc := newBorrowing(store, time.Now())
	_, err := svc.BorrowBook(context.Background(), model.BorrowRequest{PatronID: testPatron, ISBN: testISBN})

	var limitErr *model.BorrowLimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, model.MaxActiveBorrows, limitErr.ActiveLoans)
	store.AssertExpectations(t)

	// One below the cap: allowed, ends up with five active loans.
	store = new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetPatronBorrowRecords", mock.Anything, testPatron).Return(activeRecords(model.MaxActiveBorrows-1), nil)
	store.On("UpdateBookAvailability", mock.Anything, book.ID, 3, 2).Return(true, nil)
	store.On("InsertBorrowRecord", mock.Anything, mock.Anything).Return(nil)

	svc = newBorrowing(store, time.Now())
	resp, err := svc.BorrowBook(context.Background(), model.BorrowRequest{PatronID: testPatron, ISBN: testISBN})
	require.NoError(t, err)
	assert.Equal(t, book.ID, resp.BookID)
	store.AssertExpectations(t)
}

func TestBorrowBookClosedRecordsDoNotCount(t *testing.T) {
	book := &model.Book{ID: uuid.New(), ISBN: testISBN, TotalCopies: 5, AvailableCopies: 5}

	returned := time.Now().AddDate(0, 0, -1)
	records := activeRecords(3)
	for i := 0; i < 4; i++ {
		records = append(records, model.BorrowRecord{
			ID: uuid.New(), BookID: uuid.New(), PatronID: testPatron, ReturnDate: &returned,
		})
	}

	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetPatronBorrowRecords", mock.Anything, testPatron).Return(records, nil)
	store.On("UpdateBookAvailability", mock.Anything, book.ID, 5, 4).Return(true, nil)
	store.On("InsertBorrowRecord", mock.Anything, mock.Anything).Return(nil)

	svc := newBorrowing(store, time.Now())
	_, err := svc.BorrowBook(context.Background(), model.BorrowRequest{PatronID: testPatron, ISBN: testISBN})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestBorrowBookDueDate(t *testing.T) {
	borrowTime := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	book := &model.Book{ID: uuid.New(), ISBN: testISBN, TotalCopies: 1, AvailableCopies: 1}

	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetPatronBorrowRecords", mock.Anything, testPatron).Return([]model.BorrowRecord{}, nil)
	store.On("UpdateBookAvailability", mock.Anything, book.ID, 1, 0).Return(true, nil)
	store.On("InsertBorrowRecord", mock.Anything, mock.MatchedBy(func(r *model.BorrowRecord) bool {
		return r.DueDate.Equal(r.BorrowDate.AddDate(0, 0, model.BorrowDays))
	})).Return(nil)

	svc := newBorrowing(store, borrowTime)
	resp, err := svc.BorrowBook(context.Background(), model.BorrowRequest{PatronID: testPatron, ISBN: testISBN})

	require.NoError(t, err)
	assert.Equal(t, borrowTime, resp.BorrowDate)
	assert.Equal(t, borrowTime.AddDate(0, 0, 14), resp.DueDate)
	store.AssertExpectations(t)
}

func TestBorrowBookCompensatesFailedInsert(t *testing.T) {
	book := &model.Book{ID: uuid.New(), ISBN: testISBN, TotalCopies: 2, AvailableCopies: 2}

	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetPatronBorrowRecords", mock.Anything, testPatron).Return([]model.BorrowRecord{}, nil)
	store.On("UpdateBookAvailability", mock.Anything, book.ID, 2, 1).Return(true, nil)
	store.On("InsertBorrowRecord", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	// The decrement must be rolled back.
	store.On("UpdateBookAvailability", mock.Anything, book.ID, 1, 2).Return(true, nil)

	svc := newBorrowing(store, time.Now())
	_, err := svc.BorrowBook(context.Background(), model.BorrowRequest{PatronID: testPatron, ISBN: testISBN})

	var pe *model.PersistenceError
	require.ErrorAs(t, err, &pe)
	store.AssertExpectations(t)
}

func TestReturnBookNoActiveRecord(t *testing.T) {
	book := &model.Book{ID: uuid.New(), ISBN: testISBN, TotalCopies: 2, AvailableCopies: 2}

	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetActiveBorrowRecord", mock.Anything, testPatron, book.ID).Return(nil, nil)

	svc := newBorrowing(store, time.Now())
	_, err := svc.ReturnBook(context.Background(), model.ReturnRequest{PatronID: testPatron, ISBN: testISBN})

	assert.True(t, model.IsNotFound(err), "got %v", err)
	store.AssertExpectations(t)
}

func TestReturnBookSuccessWithLateFee(t *testing.T) {
	returnTime := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	book := &model.Book{ID: uuid.New(), ISBN: testISBN, TotalCopies: 3, AvailableCopies: 1}
	record := &model.BorrowRecord{
		ID:       uuid.New(),
		BookID:   book.ID,
		PatronID: testPatron,
		DueDate:  returnTime.AddDate(0, 0, -10), // 10 days overdue
	}

	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetActiveBorrowRecord", mock.Anything, testPatron, book.ID).Return(record, nil)
	store.On("UpdateBorrowRecordReturn", mock.Anything, record.ID, returnTime).Return(true, nil)
	store.On("UpdateBookAvailability", mock.Anything, book.ID, 1, 2).Return(true, nil)

	svc := newBorrowing(store, returnTime)
	resp, err := svc.ReturnBook(context.Background(), model.ReturnRequest{PatronID: testPatron, ISBN: testISBN})

	require.NoError(t, err)
	assert.Equal(t, book.ID, resp.BookID)
	assert.Equal(t, returnTime, resp.ReturnDate)
	assert.Equal(t, 10, resp.DaysOverdue)
	assert.Equal(t, 6.50, resp.FeeAmount) // 7*0.50 + 3*1.00
	store.AssertExpectations(t)
}

func TestReturnBookAvailabilityNeverExceedsTotal(t *testing.T) {
	returnTime := time.Now()
	// available == total already (inconsistent upstream state); the return
	// must clamp instead of pushing past the total.
	book := &model.Book{ID: uuid.New(), ISBN: testISBN, TotalCopies: 2, AvailableCopies: 2}
	record := &model.BorrowRecord{
		ID: uuid.New(), BookID: book.ID, PatronID: testPatron, DueDate: returnTime.AddDate(0, 0, 3),
	}

	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetActiveBorrowRecord", mock.Anything, testPatron, book.ID).Return(record, nil)
	store.On("UpdateBorrowRecordReturn", mock.Anything, record.ID, returnTime).Return(true, nil)
	store.On("UpdateBookAvailability", mock.Anything, book.ID, 2, 2).Return(true, nil)

	svc := newBorrowing(store, returnTime)
	resp, err := svc.ReturnBook(context.Background(), model.ReturnRequest{PatronID: testPatron, ISBN: testISBN})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.DaysOverdue)
	assert.Equal(t, 0.00, resp.FeeAmount)
	store.AssertExpectations(t)
}

func TestReturnBookPersistenceError(t *testing.T) {
	returnTime := time.Now()
	book := &model.Book{ID: uuid.New(), ISBN: testISBN, TotalCopies: 2, AvailableCopies: 1}
	record := &model.BorrowRecord{ID: uuid.New(), BookID: book.ID, PatronID: testPatron, DueDate: returnTime}

	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetActiveBorrowRecord", mock.Anything, testPatron, book.ID).Return(record, nil)
	store.On("UpdateBorrowRecordReturn", mock.Anything, record.ID, returnTime).Return(false, errors.New("timeout"))

	svc := newBorrowing(store, returnTime)
	_, err := svc.ReturnBook(context.Background(), model.ReturnRequest{PatronID: testPatron, ISBN: testISBN})

	var pe *model.PersistenceError
	require.ErrorAs(t, err, &pe)
}

func TestLateFeeForBookNoActiveLoanIsZero(t *testing.T) {
	book := &model.Book{ID: uuid.New(), ISBN: testISBN}

	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(book, nil)
	store.On("GetActiveBorrowRecord", mock.Anything, testPatron, book.ID).Return(nil, nil)

	svc := newBorrowing(store, time.Now())
	resp, err := svc.LateFeeForBook(context.Background(), model.LateFeeRequest{PatronID: testPatron, ISBN: testISBN})

	require.NoError(t, err)
	assert.Equal(t, 0.00, resp.FeeAmount)
	assert.Equal(t, 0, resp.DaysOverdue)
}

func TestLateFeeForBookMissingBookIsZero(t *testing.T) {
	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, testISBN).Return(nil, nil)

	svc := newBorrowing(store, time.Now())
	resp, err := svc.LateFeeForBook(context.Background(), model.LateFeeRequest{PatronID: testPatron, ISBN: testISBN})

	require.NoError(t, err)
	assert.Equal(t, 0.00, resp.FeeAmount)
}

func TestLateFeeForBookByBookID(t *testing.T) {
	asOf := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	book := &model.Book{ID: uuid.New(), ISBN: testISBN}
	record := &model.BorrowRecord{
		ID: uuid.New(), BookID: book.ID, PatronID: testPatron, DueDate: asOf.AddDate(0, 0, -100),
	}

	store := new(mocks.Store)
	store.On("GetBookByID", mock.Anything, book.ID).Return(book, nil)
	store.On("GetActiveBorrowRecord", mock.Anything, testPatron, book.ID).Return(record, nil)

	svc := newBorrowing(store, asOf)
	req := model.LateFeeRequest{PatronID: testPatron, BookID: book.ID.String(), AsOf: asOf}

	resp, err := svc.LateFeeForBook(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 100, resp.DaysOverdue)
	assert.Equal(t, 15.00, resp.FeeAmount) // capped

	// Same arguments, same answer: the lookup has no side effects.
	again, err := svc.LateFeeForBook(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, resp, again)
}

func TestLateFeeForBookValidation(t *testing.T) {
	store := new(mocks.Store)
	svc := newBorrowing(store, time.Now())

	testCases := []model.LateFeeRequest{
		{PatronID: "12", ISBN: testISBN},
		{PatronID: testPatron},                          // neither book_id nor isbn
		{PatronID: testPatron, BookID: "not-a-uuid"},    // malformed id
		{PatronID: testPatron, ISBN: "12345"},           // malformed isbn
	}
	for _, req := range testCases {
		_, err := svc.LateFeeForBook(context.Background(), req)
		assert.True(t, model.IsValidationError(err), "req %+v, got %v", req, err)
	}
	store.AssertExpectations(t)
}
