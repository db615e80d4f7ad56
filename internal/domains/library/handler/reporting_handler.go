package handler

import (
	"net/http"

	"library-backend/internal/domains/library/service"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ReportingHandler exposes patron status reports over HTTP.
type ReportingHandler struct {
	service service.ReportingService
}

func NewReportingHandler(svc service.ReportingService) *ReportingHandler {
	return &ReportingHandler{service: svc}
}

// PatronReport - GET /patrons/:patron_id/report
func (h *ReportingHandler) PatronReport(c *gin.Context) {
	report, err := h.service.PatronStatusReport(c.Request.Context(), c.Param("patron_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}
