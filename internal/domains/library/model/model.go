package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lending policy. The borrow limit is compared with >=, a patron holding
// MaxActiveBorrows active loans may not take another one.
const (
	MaxActiveBorrows = 5
	BorrowDays       = 14

	ISBNLength      = 13
	PatronIDLength  = 6
	MaxTitleLength  = 200
	MaxAuthorLength = 100
)

// Book is a catalog entry. AvailableCopies is only ever mutated by the
// borrowing workflows and stays within [0, TotalCopies].
type Book struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	ISBN            string    `json:"isbn" db:"isbn"`
	TotalCopies     int       `json:"total_copies" db:"total_copies"`
	AvailableCopies int       `json:"available_copies" db:"available_copies"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// NewBook validates the raw input and builds a catalog entry with every copy
// available.
func NewBook(title, author, isbn string, totalCopies int) (*Book, error) {
	if err := ValidateTitleAuthor(title, author); err != nil {
		return nil, err
	}
	if err := ValidateISBN(isbn); err != nil {
		return nil, err
	}
	if err := ValidateCopies(totalCopies); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Book{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(title),
		Author:          strings.TrimSpace(author),
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// BorrowRecord tracks one loan of one book by one patron. A nil ReturnDate
// means the loan is still outstanding. Records are closed, never deleted.
type BorrowRecord struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	PatronID   string     `json:"patron_id" db:"patron_id"`
	BorrowDate time.Time  `json:"borrow_date" db:"borrow_date"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnDate *time.Time `json:"return_date" db:"return_date"`
}

// Active reports whether the loan is still outstanding.
func (r *BorrowRecord) Active() bool {
	return r.ReturnDate == nil
}
