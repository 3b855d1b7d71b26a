package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	contentmodel "catalog-backend/internal/domains/content/model"
	contentrepo "catalog-backend/internal/domains/content/repository"
	"catalog-backend/internal/domains/ingestion/adapter"
	"catalog-backend/internal/domains/ingestion/model"
	programmodel "catalog-backend/internal/domains/program/model"
	programrepo "catalog-backend/internal/domains/program/repository"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/events"
	"catalog-backend/pkg/logger"
)

const defaultMaxResults = 50

// Service imports external channel items as draft content. Imports are
// idempotent on (source, externalId): an item seen before is skipped, never
// duplicated.
type Service interface {
	Import(ctx context.Context, req model.ImportRequest) (*model.ImportResult, error)

	// EnqueueImport hands the request to the background worker.
	EnqueueImport(ctx context.Context, req model.ImportRequest) error

	// Sources lists the sources an adapter is registered for.
	Sources() []shared.Source
}

type ingestionService struct {
	registry  *adapter.Registry
	contents  contentrepo.Repository
	programs  programrepo.Repository
	publisher events.Publisher
	queue     *asynq.Client
	queueName string
}

// NewService wires the import pipeline. queue may be nil when the process
// has no background queue (the worker itself). queueName is the asynq queue
// the worker consumes; it must match the worker configuration or queued
// imports are never picked up.
func NewService(
	registry *adapter.Registry,
	contents contentrepo.Repository,
	programs programrepo.Repository,
	publisher events.Publisher,
	queue *asynq.Client,
	queueName string,
) Service {
	return &ingestionService{
		registry:  registry,
		contents:  contents,
		programs:  programs,
		publisher: publisher,
		queue:     queue,
		queueName: queueName,
	}
}

func (s *ingestionService) Import(ctx context.Context, req model.ImportRequest) (*model.ImportResult, error) {
	src := s.registry.Get(req.Source)
	if src == nil {
		return nil, model.ErrUnknownSource
	}

	programID, err := s.resolveProgram(ctx, src, req)
	if err != nil {
		return nil, err
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	items, err := src.Fetch(ctx, req.ChannelID, adapter.FetchOptions{MaxResults: maxResults})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrFetchFailed, err)
	}

	contentType := shared.ContentTypePodcastEpisode
	if req.ContentType != nil {
		contentType = *req.ContentType
	}
	category := shared.CategoryEntertainment
	if req.Category != nil {
		category = *req.Category
	}

	result := &model.ImportResult{
		Source:    req.Source,
		ChannelID: req.ChannelID,
		ProgramID: programID,
		Errors:    []string{},
	}

	// one bad item never aborts the batch
	for _, item := range items {
		imported, err := s.importItem(ctx, item, programID, req.Source, contentType, category)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("failed to import %s: %v", item.ExternalID, err))
		case imported:
			result.Imported++
		default:
			result.Skipped++
		}
	}

	logger.Info("[Ingestion] Import finished", map[string]interface{}{
		"source":    string(result.Source),
		"channelId": result.ChannelID,
		"imported":  result.Imported,
		"skipped":   result.Skipped,
		"errors":    len(result.Errors),
	})
	return result, nil
}

func (s *ingestionService) EnqueueImport(ctx context.Context, req model.ImportRequest) error {
	if s.queue == nil {
		return errors.New("background queue not configured")
	}

	task, opts, err := importTask(req, s.queueName)
	if err != nil {
		return err
	}
	if _, err := s.queue.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue import: %w", err)
	}
	return nil
}

// importTask builds the background task and its enqueue options. The queue
// option routes the task to the queue the worker consumes.
func importTask(req model.ImportRequest, queueName string) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(req.TaskPayload())
	if err != nil {
		return nil, nil, fmt.Errorf("marshal import payload: %w", err)
	}

	var opts []asynq.Option
	if queueName != "" {
		opts = append(opts, asynq.Queue(queueName))
	}
	return asynq.NewTask(shared.TypeIngestionImport, payload), opts, nil
}

func (s *ingestionService) Sources() []shared.Source {
	return s.registry.Sources()
}

// importItem persists one external item. Returns false when the item was
// already imported earlier.
func (s *ingestionService) importItem(
	ctx context.Context,
	item model.ExternalItem,
	programID string,
	source shared.Source,
	contentType shared.ContentType,
	category shared.Category,
) (bool, error) {
	existing, err := s.contents.GetByExternalID(ctx, source, item.ExternalID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	metadata := make(map[string]any, len(item.Metadata)+3)
	for k, v := range item.Metadata {
		metadata[k] = v
	}
	metadata["duration"] = item.Duration
	metadata["thumbnailUrl"] = item.ThumbnailURL
	metadata["originalPublishedAt"] = item.PublishedAt

	content := contentmodel.NewContent(contentmodel.NewContentParams{
		ProgramID:   &programID,
		Title:       item.Title,
		Description: item.Description,
		Type:        contentType,
		Category:    category,
		Language:    shared.DefaultLanguage,
		Source:      source,
		ExternalID:  &item.ExternalID,
		Metadata:    metadata,
	})

	if err := s.contents.Save(ctx, content); err != nil {
		return false, err
	}

	s.publisher.Publish(events.NewContentCreated(
		content.ID, content.ProgramID, content.Title, content.Type, content.Category, content.Language,
	))
	return true, nil
}

// resolveProgram verifies the requested program or creates one from the
// source's channel info. A created program is not rolled back when later
// items fail; the partial state is surfaced through per-item errors.
func (s *ingestionService) resolveProgram(ctx context.Context, src adapter.SourceAdapter, req model.ImportRequest) (string, error) {
	if req.ProgramID != nil {
		program, err := s.programs.GetByID(ctx, *req.ProgramID)
		if err != nil {
			return "", fmt.Errorf("resolve program: %w", err)
		}
		if program == nil {
			return "", model.ErrProgramNotFound
		}
		return program.ID, nil
	}

	title := fmt.Sprintf("Imported from %s", req.Source)
	var description *string
	if provider, ok := src.(adapter.ChannelInfoProvider); ok {
		info, err := provider.ChannelInfo(ctx, req.ChannelID)
		if err != nil {
			return "", fmt.Errorf("channel info: %w", err)
		}
		title = info.Title
		description = info.Description
	}

	category := shared.CategoryEntertainment
	if req.Category != nil {
		category = *req.Category
	}

	program := programmodel.NewProgram(programmodel.NewProgramParams{
		Title:       title,
		Description: description,
		Type:        shared.ProgramTypePodcastSeries,
		Category:    category,
		Language:    shared.DefaultLanguage,
		Metadata: map[string]any{
			"externalChannelId": req.ChannelID,
			"source":            string(req.Source),
		},
	})

	if err := s.programs.Save(ctx, program); err != nil {
		return "", fmt.Errorf("create program: %w", err)
	}

	s.publisher.Publish(events.NewProgramCreated(program.ID, program.Title))
	return program.ID, nil
}
