package service

import (
	"context"
	"fmt"

	"catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/domains/content/repository"
	programrepo "catalog-backend/internal/domains/program/repository"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/events"
)

type contentService struct {
	repo      repository.Repository
	programs  programrepo.Repository
	publisher events.Publisher
}

func NewService(repo repository.Repository, programs programrepo.Repository, publisher events.Publisher) Service {
	return &contentService{repo: repo, programs: programs, publisher: publisher}
}

func (s *contentService) Create(ctx context.Context, req model.CreateContentRequest) (*model.Content, error) {
	if err := s.checkProgram(ctx, req.ProgramID); err != nil {
		return nil, err
	}

	content := model.NewContent(model.NewContentParams{
		ProgramID:   req.ProgramID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Language:    req.Language,
		Source:      req.Source,
		ExternalID:  req.ExternalID,
		Metadata:    req.Metadata,
	})

	if err := s.repo.Save(ctx, content); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	s.publisher.Publish(events.NewContentCreated(
		content.ID, content.ProgramID, content.Title, content.Type, content.Category, content.Language,
	))
	return content, nil
}

func (s *contentService) GetByID(ctx context.Context, id string) (*model.Content, error) {
	content, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, model.ErrContentNotFound
	}
	return content, nil
}

func (s *contentService) GetByIDWithProgram(ctx context.Context, id string) (*model.Content, error) {
	content, err := s.repo.GetByIDWithProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, model.ErrContentNotFound
	}
	return content, nil
}

func (s *contentService) Update(ctx context.Context, id string, req model.UpdateContentRequest) (*model.Content, error) {
	content, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SetProgramID {
		if err := s.checkProgram(ctx, req.ProgramID); err != nil {
			return nil, err
		}
	}

	prevStatus := content.Status
	updated := content.Update(req.UpdateParams())

	if req.Status != nil && *req.Status != prevStatus {
		if err := transition(content, *req.Status); err != nil {
			return nil, err
		}
		updated = append(updated, "status")
	}

	if err := s.repo.Save(ctx, content); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	s.emitAfterChange(content, prevStatus, updated)
	return content, nil
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	content, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if !deleted {
		return model.ErrContentNotFound
	}

	s.publisher.Publish(events.NewContentDeleted(content.ID, content.ProgramID))
	return nil
}

func (s *contentService) Publish(ctx context.Context, id string) (*model.Content, error) {
	return s.transitionByID(ctx, id, shared.StatusPublished)
}

func (s *contentService) Archive(ctx context.Context, id string) (*model.Content, error) {
	return s.transitionByID(ctx, id, shared.StatusArchived)
}

func (s *contentService) List(ctx context.Context, filter model.ContentFilter, page shared.Pagination) (*shared.Paginated[model.Content], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	return &shared.Paginated[model.Content]{
		Items:  items,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

func (s *contentService) transitionByID(ctx context.Context, id string, status shared.Status) (*model.Content, error) {
	content, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prevStatus := content.Status
	if err := transition(content, status); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, content); err != nil {
		return nil, fmt.Errorf("save content transition: %w", err)
	}

	s.emitAfterChange(content, prevStatus, []string{"status"})
	return content, nil
}

// emitAfterChange picks the event for a persisted change. Crossing into
// published wins over a plain update, and published to archived is its own
// event; everything else is an update when any field changed.
func (s *contentService) emitAfterChange(content *model.Content, prevStatus shared.Status, updated []string) {
	switch {
	case prevStatus != shared.StatusPublished && content.Status == shared.StatusPublished:
		s.publisher.Publish(events.NewContentPublished(
			content.ID, content.ProgramID, content.Title, content.Description,
			content.Type, content.Category, content.Language, content.Metadata,
			*content.PublishedAt,
		))
	case prevStatus == shared.StatusPublished && content.Status == shared.StatusArchived:
		s.publisher.Publish(events.NewContentArchived(content.ID, content.ProgramID))
	case len(updated) > 0:
		s.publisher.Publish(events.NewContentUpdated(content.ID, content.ProgramID, updated))
	}
}

// checkProgram validates that a referenced program exists. A nil id is a
// standalone content and always fine.
func (s *contentService) checkProgram(ctx context.Context, programID *string) error {
	if programID == nil {
		return nil
	}
	program, err := s.programs.GetByID(ctx, *programID)
	if err != nil {
		return fmt.Errorf("check program: %w", err)
	}
	if program == nil {
		return model.ErrProgramNotFound
	}
	return nil
}

func transition(content *model.Content, status shared.Status) error {
	switch status {
	case shared.StatusPublished:
		return content.Publish()
	case shared.StatusArchived:
		return content.Archive()
	case shared.StatusDraft:
		return content.RevertToDraft()
	default:
		return &model.InvalidTransitionError{From: content.Status, To: status}
	}
}
