package model

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/logger"
)

var (
	ErrContentNotFound   = errors.New("content not found")
	ErrProgramNotFound   = errors.New("program not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvalidTransitionError carries the current and requested status so the
// client sees which edge was rejected.
type InvalidTransitionError struct {
	From shared.Status
	To   shared.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// HandleContentError maps domain errors to HTTP responses. Returns true when
// err was handled.
func HandleContentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrContentNotFound):
		response.NotFound(c, "The specified content does not exist")
	case errors.Is(err, ErrProgramNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, "PROGRAM_NOT_FOUND", "The referenced program does not exist")
	case errors.Is(err, ErrInvalidTransition):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error())
	default:
		logger.Error("[Handler] Content request failed", err)
		response.InternalServerError(c, "Internal server error")
	}
	return true
}
