package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/domains/program/service"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/response"
)

// ProgramHandler exposes the CMS program endpoints.
type ProgramHandler struct {
	service service.Service
}

func NewProgramHandler(service service.Service) *ProgramHandler {
	return &ProgramHandler{service: service}
}

// Create handles POST /cms/programs
func (h *ProgramHandler) Create(c *gin.Context) {
	var req model.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid program payload", err)
		return
	}

	program, err := h.service.Create(c.Request.Context(), req)
	if model.HandleProgramError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, program)
}

// Get handles GET /cms/programs/:id. ?with_contents=true attaches the full
// content list regardless of status.
func (h *ProgramHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var (
		program *model.Program
		err     error
	)
	if c.Query("with_contents") == "true" {
		program, err = h.service.GetByIDWithContents(c.Request.Context(), id)
	} else {
		program, err = h.service.GetByID(c.Request.Context(), id)
	}
	if model.HandleProgramError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, program)
}

// List handles GET /cms/programs
func (h *ProgramHandler) List(c *gin.Context) {
	var filter model.ProgramFilter
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
	if model.HandleProgramError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// Update handles PATCH /cms/programs/:id
func (h *ProgramHandler) Update(c *gin.Context) {
	var req model.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid program payload", err)
		return
	}

	program, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if model.HandleProgramError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, program)
}

// Delete handles DELETE /cms/programs/:id
func (h *ProgramHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if model.HandleProgramError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Publish handles POST /cms/programs/:id/publish
func (h *ProgramHandler) Publish(c *gin.Context) {
	program, err := h.service.Publish(c.Request.Context(), c.Param("id"))
	if model.HandleProgramError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, program)
}

// Archive handles POST /cms/programs/:id/archive
func (h *ProgramHandler) Archive(c *gin.Context) {
	program, err := h.service.Archive(c.Request.Context(), c.Param("id"))
	if model.HandleProgramError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, program)
}
