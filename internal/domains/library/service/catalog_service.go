package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/repository"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	searchCacheTTL     = 5 * time.Minute
	searchCachePrefix  = "catalog:search:"
	searchCachePattern = searchCachePrefix + "*"
)

type catalogService struct {
	store repository.Store
	cache cache.Cache
}

// NewCatalogService wires the catalog workflows to the storage collaborator
// and a cache for search results. Cache failures degrade to the store path,
// they never fail a request.
func NewCatalogService(store repository.Store, c cache.Cache) CatalogService {
	return &catalogService{store: store, cache: c}
}

// AddBook validates the request, enforces ISBN uniqueness, and stores the
// new book with every copy available.
func (s *catalogService) AddBook(ctx context.Context, req model.AddBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := model.NewBook(req.Title, req.Author, req.ISBN, req.TotalCopies)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetBookByISBN(ctx, book.ISBN)
	if err != nil {
		return nil, model.NewPersistenceError("get book by isbn", err)
	}
	if existing != nil {
		return nil, &model.DuplicateISBNError{ISBN: book.ISBN}
	}

	if err := s.store.InsertBook(ctx, book); err != nil {
		// The unique index may still fire when two adds race past the
		// lookup above.
		var dup *model.DuplicateISBNError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, model.NewPersistenceError("insert book", err)
	}

	if err := s.cache.DeletePattern(ctx, searchCachePattern); err != nil {
		logger.Warn("search cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	resp := model.BookToResponse(book)
	return &resp, nil
}

// SearchBooks matches title/author queries case-insensitively as
// substrings; ISBN queries are exact-match only.
func (s *catalogService) SearchBooks(ctx context.Context, req model.SearchBooksRequest) ([]model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return []model.BookResponse{}, nil
	}

	cacheKey := fmt.Sprintf("%s%s:%s", searchCachePrefix, req.Type, strings.ToLower(query))

	var cached []model.BookResponse
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	var results []model.BookResponse

	switch req.Type {
	case model.SearchByISBN:
		book, err := s.store.GetBookByISBN(ctx, query)
		if err != nil {
			return nil, model.NewPersistenceError("get book by isbn", err)
		}
		results = []model.BookResponse{}
		if book != nil {
			results = append(results, model.BookToResponse(book))
		}

	default: // title or author, guaranteed by Validate
		books, err := s.store.GetAllBooks(ctx)
		if err != nil {
			return nil, model.NewPersistenceError("get all books", err)
		}

		needle := strings.ToLower(query)
		results = make([]model.BookResponse, 0)
		for i := range books {
			field := books[i].Title
			if req.Type == model.SearchByAuthor {
				field = books[i].Author
			}
			if strings.Contains(strings.ToLower(field), needle) {
				results = append(results, model.BookToResponse(&books[i]))
			}
		}
	}

	if err := s.cache.Set(ctx, cacheKey, results, searchCacheTTL); err != nil {
		logger.Warn("search cache write failed", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}

	return results, nil
}
