package service

import (
	"context"

	"library-backend/internal/domains/library/model"
)

// CatalogService covers catalog maintenance and search.
type CatalogService interface {
	AddBook(ctx context.Context, req model.AddBookRequest) (*model.BookResponse, error)
	SearchBooks(ctx context.Context, req model.SearchBooksRequest) ([]model.BookResponse, error)
}

// BorrowingService covers the borrow and return workflows plus the ad-hoc
// late-fee lookup.
type BorrowingService interface {
	BorrowBook(ctx context.Context, req model.BorrowRequest) (*model.BorrowResponse, error)
	ReturnBook(ctx context.Context, req model.ReturnRequest) (*model.ReturnResponse, error)
	LateFeeForBook(ctx context.Context, req model.LateFeeRequest) (*model.LateFeeResponse, error)
}

// ReportingService aggregates per-patron status.
type ReportingService interface {
	PatronStatusReport(ctx context.Context, patronID string) (*model.PatronStatusReport, error)
}
