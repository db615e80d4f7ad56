package handler

import (
	"errors"
	"net/http"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError translates domain errors into the HTTP envelope. Storage
// details stay in the logs, clients only see the category.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *model.ValidationError
		notFoundErr   *model.NotFoundError
		duplicateErr  *model.DuplicateISBNError
		unavailErr    *model.UnavailableError
		limitErr      *model.BorrowLimitExceededError
		storageErr    *model.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		response.ErrorWithDetails(c, http.StatusBadRequest,
			"VALIDATION_ERROR", "Invalid request", validationErr)

	case errors.As(err, &notFoundErr):
		response.NotFound(c, notFoundErr.Error())

	case errors.As(err, &duplicateErr):
		response.Conflict(c, duplicateErr.Error())

	case errors.As(err, &unavailErr):
		response.Conflict(c, unavailErr.Error())

	case errors.As(err, &limitErr):
		response.Conflict(c, limitErr.Error())

	case errors.As(err, &storageErr):
		logger.Error("storage failure", storageErr)
		response.InternalServerError(c, "A storage error occurred")

	default:
		logger.Error("unexpected error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
