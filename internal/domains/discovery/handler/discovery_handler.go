package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	contentmodel "catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/domains/discovery/model"
	"catalog-backend/internal/domains/discovery/service"
	programmodel "catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/logger"
)

// DiscoveryHandler exposes the public read endpoints. No auth, published
// entities only.
type DiscoveryHandler struct {
	service service.Service
}

func NewDiscoveryHandler(service service.Service) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

// GetProgram handles GET /discovery/programs/:id
func (h *DiscoveryHandler) GetProgram(c *gin.Context) {
	program, err := h.service.GetProgram(c.Request.Context(), c.Param("id"))
	if handleDiscoveryError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, program)
}

// ListPrograms handles GET /discovery/programs
func (h *DiscoveryHandler) ListPrograms(c *gin.Context) {
	var filter programmodel.ProgramFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid filter parameters")
		return
	}
	// status is forced to published on this surface
	filter.Status = nil
	if err := filter.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid filter", err)
		return
	}

	var page shared.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination parameters")
		return
	}

	result, err := h.service.ListPrograms(c.Request.Context(), filter, page)
	if handleDiscoveryError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// GetContent handles GET /discovery/contents/:id
func (h *DiscoveryHandler) GetContent(c *gin.Context) {
	content, err := h.service.GetContent(c.Request.Context(), c.Param("id"))
	if handleDiscoveryError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, content)
}

// ListContents handles GET /discovery/contents
func (h *DiscoveryHandler) ListContents(c *gin.Context) {
	var filter contentmodel.ContentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid filter parameters")
		return
	}
	filter.Status = nil
	if err := filter.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid filter", err)
		return
	}

	var page shared.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination parameters")
		return
	}

	result, err := h.service.ListContents(c.Request.Context(), filter, page)
	if handleDiscoveryError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// ProgramContents handles GET /discovery/programs/:id/contents
func (h *DiscoveryHandler) ProgramContents(c *gin.Context) {
	var page shared.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination parameters")
		return
	}

	result, err := h.service.ProgramContents(c.Request.Context(), c.Param("id"), page)
	if handleDiscoveryError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// Search handles GET /discovery/search
func (h *DiscoveryHandler) Search(c *gin.Context) {
	params, ok := h.bindSearchParams(c)
	if !ok {
		return
	}

	result, err := h.service.Search(c.Request.Context(), params)
	if handleDiscoveryError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, result)
}

// SearchPrograms handles GET /discovery/search/programs
func (h *DiscoveryHandler) SearchPrograms(c *gin.Context) {
	params, ok := h.bindSearchParams(c)
	if !ok {
		return
	}

	result, err := h.service.SearchPrograms(c.Request.Context(), params)
	if handleDiscoveryError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// SearchContents handles GET /discovery/search/contents
func (h *DiscoveryHandler) SearchContents(c *gin.Context) {
	params, ok := h.bindSearchParams(c)
	if !ok {
		return
	}

	result, err := h.service.SearchContents(c.Request.Context(), params)
	if handleDiscoveryError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

func (h *DiscoveryHandler) bindSearchParams(c *gin.Context) (model.SearchParams, bool) {
	var params model.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "invalid search parameters")
		return params, false
	}
	if err := params.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid search parameters", err)
		return params, false
	}
	return params, true
}

func handleDiscoveryError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, programmodel.ErrProgramNotFound):
		response.NotFound(c, "The specified program does not exist")
	case errors.Is(err, contentmodel.ErrContentNotFound):
		response.NotFound(c, "The specified content does not exist")
	default:
		logger.Error("[Handler] Discovery request failed", err)
		response.InternalServerError(c, "Internal server error")
	}
	return true
}
