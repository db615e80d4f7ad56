package handler

import (
	"net/http"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/service"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes catalog maintenance and search over HTTP.
type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// AddBook - POST /books
func (h *CatalogHandler) AddBook(c *gin.Context) {
	var req model.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.service.AddBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// SearchBooks - GET /books/search?q=&type=
func (h *CatalogHandler) SearchBooks(c *gin.Context) {
	req := model.SearchBooksRequest{
		Query: c.Query("q"),
		Type:  c.DefaultQuery("type", model.SearchByTitle),
	}

	books, err := h.service.SearchBooks(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}
