package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory stand-in for the Redis cache.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }

func newCatalog(store *mocks.Store) CatalogService {
	return NewCatalogService(store, newFakeCache())
}

func TestAddBookValidation(t *testing.T) {
	testCases := []struct {
		name string
		req  model.AddBookRequest
	}{
		{"empty title", model.AddBookRequest{Title: "", Author: "Orwell", ISBN: "9780451524935", TotalCopies: 1}},
		{"whitespace title", model.AddBookRequest{Title: "   ", Author: "Orwell", ISBN: "9780451524935", TotalCopies: 1}},
		{"short isbn", model.AddBookRequest{Title: "1984", Author: "Orwell", ISBN: "123", TotalCopies: 1}},
		{"non-digit isbn", model.AddBookRequest{Title: "1984", Author: "Orwell", ISBN: "97804515249aa", TotalCopies: 1}},
		{"whitespace isbn", model.AddBookRequest{Title: "1984", Author: "Orwell", ISBN: "             ", TotalCopies: 1}},
		{"zero copies", model.AddBookRequest{Title: "1984", Author: "Orwell", ISBN: "9780451524935", TotalCopies: 0}},
		{"negative copies", model.AddBookRequest{Title: "1984", Author: "Orwell", ISBN: "9780451524935", TotalCopies: -2}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.Store)
			svc := newCatalog(store)

			_, err := svc.AddBook(context.Background(), tt.req)
			assert.True(t, model.IsValidationError(err), "got %v", err)

			// Validation failures never reach storage.
			store.AssertExpectations(t)
		})
	}
}

func TestAddBookDuplicateISBN(t *testing.T) {
	store := new(mocks.Store)
	existing := &model.Book{ISBN: "9780451524935"}
	store.On("GetBookByISBN", mock.Anything, "9780451524935").Return(existing, nil)

	svc := newCatalog(store)
	_, err := svc.AddBook(context.Background(), model.AddBookRequest{
		Title: "1984", Author: "George Orwell", ISBN: "9780451524935", TotalCopies: 2,
	})

	var dup *model.DuplicateISBNError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "9780451524935", dup.ISBN)
	store.AssertExpectations(t)
}

func TestAddBookSuccess(t *testing.T) {
	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, "9780451524935").Return(nil, nil)
	store.On("InsertBook", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
		return b.Title == "1984" &&
			b.Author == "George Orwell" &&
			b.AvailableCopies == b.TotalCopies &&
			b.TotalCopies == 4
	})).Return(nil)

	svc := newCatalog(store)
	resp, err := svc.AddBook(context.Background(), model.AddBookRequest{
		Title: "  1984  ", Author: " George Orwell ", ISBN: "9780451524935", TotalCopies: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, "1984", resp.Title)
	assert.Equal(t, "George Orwell", resp.Author)
	assert.Equal(t, 4, resp.AvailableCopies)
	store.AssertExpectations(t)
}

func TestAddBookPersistenceError(t *testing.T) {
	store := new(mocks.Store)
	store.On("GetBookByISBN", mock.Anything, "9780451524935").Return(nil, nil)
	store.On("InsertBook", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	svc := newCatalog(store)
	_, err := svc.AddBook(context.Background(), model.AddBookRequest{
		Title: "1984", Author: "George Orwell", ISBN: "9780451524935", TotalCopies: 1,
	})

	var pe *model.PersistenceError
	require.ErrorAs(t, err, &pe)
}

func TestSearchBooksInvalidType(t *testing.T) {
	store := new(mocks.Store)
	svc := newCatalog(store)

	for _, st := range []string{"", "genre", "Title"} {
		_, err := svc.SearchBooks(context.Background(), model.SearchBooksRequest{Query: "1984", Type: st})
		assert.True(t, model.IsValidationError(err), "type %q", st)
	}
	store.AssertExpectations(t)
}

func TestSearchBooksEmptyQuery(t *testing.T) {
	store := new(mocks.Store)
	svc := newCatalog(store)

	results, err := svc.SearchBooks(context.Background(), model.SearchBooksRequest{Query: "   ", Type: model.SearchByTitle})
	require.NoError(t, err)
	assert.Empty(t, results)
	store.AssertExpectations(t)
}

func TestSearchBooksByTitleAndAuthor(t *testing.T) {
	books := []model.Book{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565"},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "9780061120084"},
		{Title: "1984", Author: "George Orwell", ISBN: "9780451524935"},
	}

	store := new(mocks.Store)
	store.On("GetAllBooks", mock.Anything).Return(books, nil)

	svc := newCatalog(store)

	// Case-insensitive substring on title.
	results, err := svc.SearchBooks(context.Background(), model.SearchBooksRequest{Query: "gatsby", Type: model.SearchByTitle})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The Great Gatsby", results[0].Title)

	// Case-insensitive substring on author.
	results, err = svc.SearchBooks(context.Background(), model.SearchBooksRequest{Query: "ORWELL", Type: model.SearchByAuthor})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1984", results[0].Title)

	// No match is an empty result, not an error.
	results, err = svc.SearchBooks(context.Background(), model.SearchBooksRequest{Query: "tolstoy", Type: model.SearchByAuthor})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchBooksByISBNIsExactMatch(t *testing.T) {
	store := new(mocks.Store)
	// "0743" is a substring of a real ISBN in the catalog, exact lookup
	// must still come back empty.
	store.On("GetBookByISBN", mock.Anything, "0743").Return(nil, nil)

	svc := newCatalog(store)
	results, err := svc.SearchBooks(context.Background(), model.SearchBooksRequest{Query: "0743", Type: model.SearchByISBN})
	require.NoError(t, err)
	assert.Empty(t, results)

	book := &model.Book{Title: "The Great Gatsby", ISBN: "9780743273565"}
	store.On("GetBookByISBN", mock.Anything, "9780743273565").Return(book, nil)

	results, err = svc.SearchBooks(context.Background(), model.SearchBooksRequest{Query: "9780743273565", Type: model.SearchByISBN})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "9780743273565", results[0].ISBN)
	store.AssertExpectations(t)
}

func TestSearchBooksServesRepeatQueriesFromCache(t *testing.T) {
	books := []model.Book{{Title: "1984", Author: "George Orwell", ISBN: "9780451524935"}}

	store := new(mocks.Store)
	store.On("GetAllBooks", mock.Anything).Return(books, nil).Once()

	svc := newCatalog(store)
	req := model.SearchBooksRequest{Query: "1984", Type: model.SearchByTitle}

	first, err := svc.SearchBooks(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.SearchBooks(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	store.AssertExpectations(t) // GetAllBooks hit exactly once
}
