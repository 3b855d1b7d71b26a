package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"catalog-backend/internal/domains/ingestion/model"
	"catalog-backend/internal/shared"
	"catalog-backend/pkg/logger"
)

// ImportTaskHandler runs queued imports inside the worker process.
type ImportTaskHandler struct {
	service Service
}

func NewImportTaskHandler(service Service) *ImportTaskHandler {
	return &ImportTaskHandler{service: service}
}

func (h *ImportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ImportTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal import payload: %v: %w", err, asynq.SkipRetry)
	}

	result, err := h.service.Import(ctx, model.RequestFromPayload(payload))
	if err != nil {
		// bad requests never become valid on retry; fetch failures might
		if errors.Is(err, model.ErrUnknownSource) || errors.Is(err, model.ErrProgramNotFound) {
			return fmt.Errorf("import: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("import: %w", err)
	}

	logger.Info("[Worker] Import task finished", map[string]interface{}{
		"source":    string(result.Source),
		"channelId": result.ChannelID,
		"programId": result.ProgramID,
		"imported":  result.Imported,
		"skipped":   result.Skipped,
		"errors":    len(result.Errors),
	})
	return nil
}
