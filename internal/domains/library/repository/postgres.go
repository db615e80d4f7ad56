package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domains/library/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// postgresStore - raw SQL with pgxpool.
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore builds the PostgreSQL-backed storage collaborator.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

const bookColumns = `id, title, author, isbn, total_copies, available_copies, created_at, updated_at`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.TotalCopies,
		&b.AvailableCopies,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *postgresStore) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	book, err := scanBook(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get book by id: %w", err)
	}
	return book, nil
}

func (s *postgresStore) GetBookByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE isbn = $1`, bookColumns)

	book, err := scanBook(s.pool.QueryRow(ctx, query, isbn))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get book by isbn: %w", err)
	}
	return book, nil
}

func (s *postgresStore) GetAllBooks(ctx context.Context) ([]model.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books ORDER BY created_at, id`, bookColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.ISBN,
			&b.TotalCopies, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get all books: %w", err)
	}
	return books, nil
}

func (s *postgresStore) InsertBook(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, title, author, isbn, total_copies, available_copies, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.pool.Exec(ctx, query,
		book.ID, book.Title, book.Author, book.ISBN,
		book.TotalCopies, book.AvailableCopies, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &model.DuplicateISBNError{ISBN: book.ISBN}
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// UpdateBookAvailability compiles to a conditional UPDATE. The WHERE clause
// on the expected value makes the check-and-update atomic, a concurrent
// writer loses the race and gets false back.
func (s *postgresStore) UpdateBookAvailability(ctx context.Context, bookID uuid.UUID, expected, newAvailable int) (bool, error) {
	query := `
		UPDATE books
		SET available_copies = $3, updated_at = NOW()
		WHERE id = $1 AND available_copies = $2
		  AND $3 >= 0 AND $3 <= total_copies
	`
	tag, err := s.pool.Exec(ctx, query, bookID, expected, newAvailable)
	if err != nil {
		return false, fmt.Errorf("update book availability: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

const borrowColumns = `id, book_id, patron_id, borrow_date, due_date, return_date`

func (s *postgresStore) GetPatronBorrowRecords(ctx context.Context, patronID string) ([]model.BorrowRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM borrow_records
		WHERE patron_id = $1
		ORDER BY borrow_date DESC, id
	`, borrowColumns)

	rows, err := s.pool.Query(ctx, query, patronID)
	if err != nil {
		return nil, fmt.Errorf("get patron borrow records: %w", err)
	}
	defer rows.Close()

	records := make([]model.BorrowRecord, 0)
	for rows.Next() {
		var r model.BorrowRecord
		if err := rows.Scan(
			&r.ID, &r.BookID, &r.PatronID, &r.BorrowDate, &r.DueDate, &r.ReturnDate,
		); err != nil {
			return nil, fmt.Errorf("scan borrow record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get patron borrow records: %w", err)
	}
	return records, nil
}

func (s *postgresStore) GetActiveBorrowRecord(ctx context.Context, patronID string, bookID uuid.UUID) (*model.BorrowRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM borrow_records
		WHERE patron_id = $1 AND book_id = $2 AND return_date IS NULL
	`, borrowColumns)

	var r model.BorrowRecord
	err := s.pool.QueryRow(ctx, query, patronID, bookID).Scan(
		&r.ID, &r.BookID, &r.PatronID, &r.BorrowDate, &r.DueDate, &r.ReturnDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active borrow record: %w", err)
	}
	return &r, nil
}

func (s *postgresStore) InsertBorrowRecord(ctx context.Context, record *model.BorrowRecord) error {
	query := `
		INSERT INTO borrow_records (id, book_id, patron_id, borrow_date, due_date, return_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query,
		record.ID, record.BookID, record.PatronID,
		record.BorrowDate, record.DueDate, record.ReturnDate,
	)
	if err != nil {
		return fmt.Errorf("insert borrow record: %w", err)
	}
	return nil
}

func (s *postgresStore) UpdateBorrowRecordReturn(ctx context.Context, recordID uuid.UUID, returnDate time.Time) (bool, error) {
	query := `
		UPDATE borrow_records
		SET return_date = $2, updated_at = NOW()
		WHERE id = $1 AND return_date IS NULL
	`
	tag, err := s.pool.Exec(ctx, query, recordID, returnDate)
	if err != nil {
		return false, fmt.Errorf("update borrow record return: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
