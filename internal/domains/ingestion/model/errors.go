package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/logger"
)

var (
	ErrUnknownSource   = errors.New("unknown ingestion source")
	ErrProgramNotFound = errors.New("program not found")
	ErrFetchFailed     = errors.New("source fetch failed")
)

// HandleIngestionError maps domain errors to HTTP responses. Returns true
// when err was handled.
func HandleIngestionError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrUnknownSource):
		response.ErrorResponse(c, http.StatusBadRequest, "UNKNOWN_SOURCE", "No adapter is registered for the requested source")
	case errors.Is(err, ErrProgramNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, "PROGRAM_NOT_FOUND", "The referenced program does not exist")
	case errors.Is(err, ErrFetchFailed):
		response.ErrorResponse(c, http.StatusBadGateway, "SOURCE_UNAVAILABLE", "The external source could not be reached")
	default:
		logger.Error("[Handler] Ingestion request failed", err)
		response.InternalServerError(c, "Internal server error")
	}
	return true
}
