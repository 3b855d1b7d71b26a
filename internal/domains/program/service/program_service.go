package service

import (
	"context"
	"fmt"

	"catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/domains/program/repository"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/events"
)

type programService struct {
	repo      repository.Repository
	publisher events.Publisher
}

func NewService(repo repository.Repository, publisher events.Publisher) Service {
	return &programService{repo: repo, publisher: publisher}
}

func (s *programService) Create(ctx context.Context, req model.CreateProgramRequest) (*model.Program, error) {
	program := model.NewProgram(model.NewProgramParams{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Language:    req.Language,
		Metadata:    req.Metadata,
	})

	if err := s.repo.Save(ctx, program); err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	s.publisher.Publish(events.NewProgramCreated(program.ID, program.Title))
	return program, nil
}

func (s *programService) GetByID(ctx context.Context, id string) (*model.Program, error) {
	program, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, model.ErrProgramNotFound
	}
	return program, nil
}

func (s *programService) GetByIDWithContents(ctx context.Context, id string) (*model.Program, error) {
	program, err := s.repo.GetByIDWithContents(ctx, id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, model.ErrProgramNotFound
	}
	return program, nil
}

func (s *programService) Update(ctx context.Context, id string, req model.UpdateProgramRequest) (*model.Program, error) {
	program, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := program.Update(req.UpdateParams())

	// Status change rides the same endpoint; the entity enforces the edge.
	if req.Status != nil && *req.Status != program.Status {
		if err := transition(program, *req.Status); err != nil {
			return nil, err
		}
		updated = append(updated, "status")
	}

	if err := s.repo.Save(ctx, program); err != nil {
		return nil, fmt.Errorf("update program: %w", err)
	}

	if len(updated) > 0 {
		s.publisher.Publish(events.NewProgramUpdated(program.ID, updated))
	}
	return program, nil
}

func (s *programService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	if !deleted {
		return model.ErrProgramNotFound
	}

	s.publisher.Publish(events.NewProgramDeleted(id))
	return nil
}

func (s *programService) Publish(ctx context.Context, id string) (*model.Program, error) {
	return s.transitionByID(ctx, id, shared.StatusPublished)
}

func (s *programService) Archive(ctx context.Context, id string) (*model.Program, error) {
	return s.transitionByID(ctx, id, shared.StatusArchived)
}

func (s *programService) List(ctx context.Context, filter model.ProgramFilter, page shared.Pagination) (*shared.Paginated[model.Program], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return &shared.Paginated[model.Program]{
		Items:  items,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

func (s *programService) transitionByID(ctx context.Context, id string, status shared.Status) (*model.Program, error) {
	program, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transition(program, status); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, program); err != nil {
		return nil, fmt.Errorf("save program transition: %w", err)
	}

	s.publisher.Publish(events.NewProgramUpdated(program.ID, []string{"status"}))
	return program, nil
}

func transition(program *model.Program, status shared.Status) error {
	switch status {
	case shared.StatusPublished:
		return program.Publish()
	case shared.StatusArchived:
		return program.Archive()
	case shared.StatusDraft:
		return program.RevertToDraft()
	default:
		return &model.InvalidTransitionError{From: program.Status, To: status}
	}
}
