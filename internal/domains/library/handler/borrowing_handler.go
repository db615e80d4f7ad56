package handler

import (
	"net/http"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/service"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// BorrowingHandler exposes the borrow/return workflows over HTTP.
type BorrowingHandler struct {
	service service.BorrowingService
}

func NewBorrowingHandler(svc service.BorrowingService) *BorrowingHandler {
	return &BorrowingHandler{service: svc}
}

// BorrowBook - POST /borrow
func (h *BorrowingHandler) BorrowBook(c *gin.Context) {
	var req model.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.BorrowBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ReturnBook - POST /return
func (h *BorrowingHandler) ReturnBook(c *gin.Context) {
	var req model.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.ReturnBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// LateFee - GET /patrons/:patron_id/late-fee?book_id=|isbn=
func (h *BorrowingHandler) LateFee(c *gin.Context) {
	req := model.LateFeeRequest{
		PatronID: c.Param("patron_id"),
		BookID:   c.Query("book_id"),
		ISBN:     c.Query("isbn"),
	}

	result, err := h.service.LateFeeForBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
