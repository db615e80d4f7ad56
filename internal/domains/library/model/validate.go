package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	isbnPattern     = regexp.MustCompile(`^[0-9]{13}$`)
	patronIDPattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// SearchTypes accepted by the catalog search.
const (
	SearchByTitle  = "title"
	SearchByAuthor = "author"
	SearchByISBN   = "isbn"
)

// ValidateISBN rejects anything that is not exactly 13 decimal digits.
// The raw value is checked as-is: whitespace around or instead of the digits
// fails the pattern, it is never trimmed into validity.
func ValidateISBN(isbn string) error {
	err := validation.Validate(isbn,
		validation.Required.Error("ISBN is required"),
		validation.Match(isbnPattern).Error("ISBN must be exactly 13 digits"),
	)
	if err != nil {
		return NewValidationError("isbn", err.Error())
	}
	return nil
}

// ValidatePatronID rejects anything that is not exactly 6 decimal digits.
func ValidatePatronID(patronID string) error {
	err := validation.Validate(patronID,
		validation.Required.Error("patron ID is required"),
		validation.Match(patronIDPattern).Error("patron ID must be exactly 6 digits"),
	)
	if err != nil {
		return NewValidationError("patron_id", err.Error())
	}
	return nil
}

// ValidateCopies requires a positive copy count. Required is paired with Min
// because ozzo threshold rules skip the zero value.
func ValidateCopies(totalCopies int) error {
	err := validation.Validate(totalCopies,
		validation.Required.Error("total copies must be a positive integer"),
		validation.Min(1).Error("total copies must be a positive integer"),
	)
	if err != nil {
		return NewValidationError("total_copies", err.Error())
	}
	return nil
}

// ValidateTitleAuthor checks both fields after trimming: neither may be
// empty and each has a maximum length.
func ValidateTitleAuthor(title, author string) error {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if err := validation.Validate(title,
		validation.Required.Error("title is required"),
		validation.Length(1, MaxTitleLength).Error("title must be at most 200 characters"),
	); err != nil {
		return NewValidationError("title", err.Error())
	}

	if err := validation.Validate(author,
		validation.Required.Error("author is required"),
		validation.Length(1, MaxAuthorLength).Error("author must be at most 100 characters"),
	); err != nil {
		return NewValidationError("author", err.Error())
	}

	return nil
}

// ValidateSearchType accepts only the known search dimensions.
func ValidateSearchType(searchType string) error {
	err := validation.Validate(searchType,
		validation.Required.Error("search type is required"),
		validation.In(SearchByTitle, SearchByAuthor, SearchByISBN).
			Error("search type must be one of title, author, isbn"),
	)
	if err != nil {
		return NewValidationError("search_type", err.Error())
	}
	return nil
}
