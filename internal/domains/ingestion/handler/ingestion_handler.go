package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/ingestion/model"
	"catalog-backend/internal/domains/ingestion/service"
	"catalog-backend/internal/shared/response"
)

// IngestionHandler exposes the import endpoints. Guarded the same way the
// CMS surface is.
type IngestionHandler struct {
	service service.Service
}

func NewIngestionHandler(service service.Service) *IngestionHandler {
	return &IngestionHandler{service: service}
}

// Import handles POST /ingestion/import. ?async=true enqueues the import
// for the worker and returns immediately.
func (h *IngestionHandler) Import(c *gin.Context) {
	var req model.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid import request", err)
		return
	}

	if c.Query("async") == "true" {
		if err := h.service.EnqueueImport(c.Request.Context(), req); err != nil {
			model.HandleIngestionError(c, err)
			return
		}
		response.Success(c, http.StatusAccepted, gin.H{"queued": true})
		return
	}

	result, err := h.service.Import(c.Request.Context(), req)
	if model.HandleIngestionError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Sources handles GET /ingestion/sources
func (h *IngestionHandler) Sources(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"sources": h.service.Sources()})
}
