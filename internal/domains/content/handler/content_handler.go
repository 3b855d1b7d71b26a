package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/domains/content/service"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/response"
)

// ContentHandler exposes the CMS content endpoints.
type ContentHandler struct {
	service service.Service
}

func NewContentHandler(service service.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

// Create handles POST /cms/contents
func (h *ContentHandler) Create(c *gin.Context) {
	var req model.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid content payload", err)
		return
	}

	content, err := h.service.Create(c.Request.Context(), req)
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, content)
}

// Get handles GET /cms/contents/:id. ?with_program=true resolves the owning
// program's title.
func (h *ContentHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var (
		content *model.Content
		err     error
	)
	if c.Query("with_program") == "true" {
		content, err = h.service.GetByIDWithProgram(c.Request.Context(), id)
	} else {
		content, err = h.service.GetByID(c.Request.Context(), id)
	}
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, content)
}

// List handles GET /cms/contents
func (h *ContentHandler) List(c *gin.Context) {
	var filter model.ContentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid filter parameters")
		return
	}
	if err := filter.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid filter", err)
		return
	}

	var page shared.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), filter, page)
	if model.HandleContentError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// Update handles PATCH /cms/contents/:id. program_id must distinguish
// "absent" from explicit null, so the raw body is inspected for the key
// before binding.
func (h *ContentHandler) Update(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var req model.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	req.SetProgramID = bodyHasKey(body, "program_id")

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid content payload", err)
		return
	}

	content, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, content)
}

// Delete handles DELETE /cms/contents/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if model.HandleContentError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Publish handles POST /cms/contents/:id/publish
func (h *ContentHandler) Publish(c *gin.Context) {
	content, err := h.service.Publish(c.Request.Context(), c.Param("id"))
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, content)
}

// Archive handles POST /cms/contents/:id/archive
func (h *ContentHandler) Archive(c *gin.Context) {
	content, err := h.service.Archive(c.Request.Context(), c.Param("id"))
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, content)
}

func bodyHasKey(body []byte, key string) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return false
	}
	_, ok := raw[key]
	return ok
}
