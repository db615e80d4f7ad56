package database

import (
	"context"
	"fmt"
	"log"
)

// EnsureSchema creates the library tables when they do not exist yet.
// Idempotent, runs on every startup.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			isbn CHAR(13) UNIQUE NOT NULL,
			total_copies INTEGER NOT NULL CHECK (total_copies > 0),
			available_copies INTEGER NOT NULL CHECK (available_copies >= 0 AND available_copies <= total_copies),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS borrow_records (
			id UUID PRIMARY KEY,
			book_id UUID NOT NULL REFERENCES books (id),
			patron_id CHAR(6) NOT NULL,
			borrow_date TIMESTAMPTZ NOT NULL,
			due_date TIMESTAMPTZ NOT NULL,
			return_date TIMESTAMPTZ NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_borrow_records_patron ON borrow_records (patron_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_borrow_records_active
			ON borrow_records (patron_id, book_id) WHERE return_date IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}

	log.Println("[DATABASE] Schema ensured")
	return nil
}

// SeedDemoData inserts a few well-known books when the catalog is empty.
// Only wired up when LIBRARY_SEED_DEMO_DATA is set.
func (db *PostgresDB) SeedDemoData(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		title  string
		author string
		isbn   string
		copies int
	}{
		{"The Great Gatsby", "F. Scott Fitzgerald", "9780743273565", 3},
		{"To Kill a Mockingbird", "Harper Lee", "9780061120084", 2},
		{"1984", "George Orwell", "9780451524935", 4},
	}

	for _, s := range samples {
		_, err := db.Pool.Exec(ctx,
			`INSERT INTO books (id, title, author, isbn, total_copies, available_copies)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $4)
			 ON CONFLICT (isbn) DO NOTHING`,
			s.title, s.author, s.isbn, s.copies)
		if err != nil {
			return fmt.Errorf("seed insert failed: %w", err)
		}
	}

	log.Printf("[DATABASE] Seeded %d demo books", len(samples))
	return nil
}
