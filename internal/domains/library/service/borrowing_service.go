package service

import (
	"context"
	"time"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/repository"
	"library-backend/pkg/logger"

	"github.com/google/uuid"
)

type borrowingService struct {
	store repository.Store
	now   func() time.Time
}

// NewBorrowingService wires the borrow/return workflows to the storage
// collaborator.
func NewBorrowingService(store repository.Store) BorrowingService {
	return &borrowingService{store: store, now: time.Now}
}

// BorrowBook lends one copy to the patron: availability and borrow-limit
// checks, then an atomic availability decrement followed by the record
// insert. A failed insert rolls the decrement back so no partial state
// survives.
func (s *borrowingService) BorrowBook(ctx context.Context, req model.BorrowRequest) (*model.BorrowResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.store.GetBookByISBN(ctx, req.ISBN)
	if err != nil {
		return nil, model.NewPersistenceError("get book by isbn", err)
	}
	if book == nil {
		return nil, model.ErrBookNotFound(req.ISBN)
	}

	if book.AvailableCopies <= 0 {
		return nil, &model.UnavailableError{ISBN: book.ISBN}
	}

	records, err := s.store.GetPatronBorrowRecords(ctx, req.PatronID)
	if err != nil {
		return nil, model.NewPersistenceError("get patron borrow records", err)
	}
	active := countActive(records)
	if active >= model.MaxActiveBorrows {
		return nil, &model.BorrowLimitExceededError{
			PatronID:    req.PatronID,
			ActiveLoans: active,
		}
	}

	borrowDate := s.now()
	dueDate := borrowDate.AddDate(0, 0, model.BorrowDays)

	ok, err := s.store.UpdateBookAvailability(ctx, book.ID, book.AvailableCopies, book.AvailableCopies-1)
	if err != nil {
		return nil, model.NewPersistenceError("decrement book availability", err)
	}
	if !ok {
		// Availability changed between read and update, a concurrent
		// borrower got there first.
		return nil, model.NewPersistenceError("decrement book availability", nil)
	}

	record := &model.BorrowRecord{
		ID:         uuid.New(),
		BookID:     book.ID,
		PatronID:   req.PatronID,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
	}

	if err := s.store.InsertBorrowRecord(ctx, record); err != nil {
		// Compensate the decrement so the copy is not lost.
		if _, cerr := s.store.UpdateBookAvailability(ctx, book.ID, book.AvailableCopies-1, book.AvailableCopies); cerr != nil {
			logger.Error("failed to compensate availability after insert failure", cerr)
		}
		return nil, model.NewPersistenceError("insert borrow record", err)
	}

	return &model.BorrowResponse{
		RecordID:   record.ID,
		BookID:     record.BookID,
		PatronID:   record.PatronID,
		BorrowDate: record.BorrowDate,
		DueDate:    record.DueDate,
	}, nil
}

// ReturnBook closes the patron's active loan on the book, restores the copy
// (never past TotalCopies), and reports the late fee for the loan.
func (s *borrowingService) ReturnBook(ctx context.Context, req model.ReturnRequest) (*model.ReturnResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.store.GetBookByISBN(ctx, req.ISBN)
	if err != nil {
		return nil, model.NewPersistenceError("get book by isbn", err)
	}
	if book == nil {
		return nil, model.ErrBookNotFound(req.ISBN)
	}

	record, err := s.store.GetActiveBorrowRecord(ctx, req.PatronID, book.ID)
	if err != nil {
		return nil, model.NewPersistenceError("get active borrow record", err)
	}
	if record == nil {
		return nil, model.ErrNoActiveBorrow(req.PatronID, book.ID)
	}

	returnDate := s.now()

	ok, err := s.store.UpdateBorrowRecordReturn(ctx, record.ID, returnDate)
	if err != nil {
		return nil, model.NewPersistenceError("update borrow record return", err)
	}
	if !ok {
		// Closed in between, e.g. a duplicate return request.
		return nil, model.ErrNoActiveBorrow(req.PatronID, book.ID)
	}

	newAvailable := book.AvailableCopies + 1
	if newAvailable > book.TotalCopies {
		newAvailable = book.TotalCopies
	}
	if ok, err := s.store.UpdateBookAvailability(ctx, book.ID, book.AvailableCopies, newAvailable); err != nil || !ok {
		return nil, model.NewPersistenceError("increment book availability", err)
	}

	days := DaysOverdue(record.DueDate, returnDate)

	return &model.ReturnResponse{
		BookID:      book.ID,
		PatronID:    req.PatronID,
		ReturnDate:  returnDate,
		FeeAmount:   LateFee(days).InexactFloat64(),
		DaysOverdue: days,
	}, nil
}

// LateFeeForBook answers an ad-hoc fee query by (book id or ISBN, patron).
// A missing book or no active loan yields the zero-fee result, not an
// error; only storage failures are surfaced.
func (s *borrowingService) LateFeeForBook(ctx context.Context, req model.LateFeeRequest) (*model.LateFeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		book *model.Book
		err  error
	)
	if req.BookID != "" {
		id, _ := uuid.Parse(req.BookID) // well-formed, checked by Validate
		book, err = s.store.GetBookByID(ctx, id)
	} else {
		book, err = s.store.GetBookByISBN(ctx, req.ISBN)
	}
	if err != nil {
		return nil, model.NewPersistenceError("get book", err)
	}
	if book == nil {
		return &model.LateFeeResponse{}, nil
	}

	record, err := s.store.GetActiveBorrowRecord(ctx, req.PatronID, book.ID)
	if err != nil {
		return nil, model.NewPersistenceError("get active borrow record", err)
	}
	if record == nil || !record.Active() {
		return &model.LateFeeResponse{}, nil
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = s.now()
	}

	days := DaysOverdue(record.DueDate, asOf)
	return &model.LateFeeResponse{
		FeeAmount:   LateFee(days).InexactFloat64(),
		DaysOverdue: days,
	}, nil
}

func countActive(records []model.BorrowRecord) int {
	n := 0
	for i := range records {
		if records[i].Active() {
			n++
		}
	}
	return n
}
