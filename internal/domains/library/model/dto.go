package model

import (
	"time"

	"github.com/google/uuid"
)

// ========================================
// CATALOG DTOs
// ========================================

// AddBookRequest is the payload for POST /books.
type AddBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	ISBN        string `json:"isbn" binding:"required"`
	TotalCopies int    `json:"total_copies" binding:"required"`
}

func (r AddBookRequest) Validate() error {
	if err := ValidateTitleAuthor(r.Title, r.Author); err != nil {
		return err
	}
	if err := ValidateISBN(r.ISBN); err != nil {
		return err
	}
	return ValidateCopies(r.TotalCopies)
}

// SearchBooksRequest addresses the catalog by title/author substring or by
// exact ISBN.
type SearchBooksRequest struct {
	Query string `json:"q"`
	Type  string `json:"type"`
}

func (r SearchBooksRequest) Validate() error {
	return ValidateSearchType(r.Type)
}

// BookResponse is the book shape exposed to clients.
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
}

func BookToResponse(b *Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

func BooksToResponse(books []Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, BookToResponse(&books[i]))
	}
	return out
}

// ========================================
// BORROWING DTOs
// ========================================

// BorrowRequest is the payload for POST /borrow.
type BorrowRequest struct {
	PatronID string `json:"patron_id" binding:"required"`
	ISBN     string `json:"isbn" binding:"required"`
}

func (r BorrowRequest) Validate() error {
	if err := ValidatePatronID(r.PatronID); err != nil {
		return err
	}
	return ValidateISBN(r.ISBN)
}

// ReturnRequest is the payload for POST /return.
type ReturnRequest struct {
	PatronID string `json:"patron_id" binding:"required"`
	ISBN     string `json:"isbn" binding:"required"`
}

func (r ReturnRequest) Validate() error {
	if err := ValidatePatronID(r.PatronID); err != nil {
		return err
	}
	return ValidateISBN(r.ISBN)
}

// LateFeeRequest addresses a loan by patron plus either book id or ISBN.
// AsOf defaults to now when zero.
type LateFeeRequest struct {
	PatronID string
	BookID   string
	ISBN     string
	AsOf     time.Time
}

func (r LateFeeRequest) Validate() error {
	if err := ValidatePatronID(r.PatronID); err != nil {
		return err
	}
	if r.BookID == "" && r.ISBN == "" {
		return NewValidationError("book", "either book_id or isbn is required")
	}
	if r.BookID != "" {
		if _, err := uuid.Parse(r.BookID); err != nil {
			return NewValidationError("book_id", "book_id must be a valid UUID")
		}
		return nil
	}
	return ValidateISBN(r.ISBN)
}

// BorrowResponse is returned by a successful borrow.
type BorrowResponse struct {
	RecordID   uuid.UUID `json:"record_id"`
	BookID     uuid.UUID `json:"book_id"`
	PatronID   string    `json:"patron_id"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
}

// ReturnResponse is returned by a successful return, fee included.
type ReturnResponse struct {
	BookID      uuid.UUID `json:"book_id"`
	PatronID    string    `json:"patron_id"`
	ReturnDate  time.Time `json:"return_date"`
	FeeAmount   float64   `json:"fee_amount"`
	DaysOverdue int       `json:"days_overdue"`
}

// LateFeeResponse is the result of a fee calculation. The zero value is the
// defensive "no active loan" answer.
type LateFeeResponse struct {
	FeeAmount   float64 `json:"fee_amount"`
	DaysOverdue int     `json:"days_overdue"`
}

// ========================================
// REPORTING DTOs
// ========================================

// BorrowRecordResponse is the loan shape used inside reports.
type BorrowRecordResponse struct {
	RecordID   uuid.UUID  `json:"record_id"`
	BookID     uuid.UUID  `json:"book_id"`
	PatronID   string     `json:"patron_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
}

func BorrowRecordToResponse(r *BorrowRecord) BorrowRecordResponse {
	return BorrowRecordResponse{
		RecordID:   r.ID,
		BookID:     r.BookID,
		PatronID:   r.PatronID,
		BorrowDate: r.BorrowDate,
		DueDate:    r.DueDate,
		ReturnDate: r.ReturnDate,
	}
}

// PatronStatusReport aggregates a patron's loans. BorrowingHistory holds
// every record, active ones included; CurrentlyBorrowed is the active
// subset.
type PatronStatusReport struct {
	CurrentlyBorrowed    []BorrowRecordResponse `json:"currently_borrowed"`
	BorrowingHistory     []BorrowRecordResponse `json:"borrowing_history"`
	NumCurrentlyBorrowed int                    `json:"num_currently_borrowed"`
	TotalLateFees        float64                `json:"total_late_fees"`
}
