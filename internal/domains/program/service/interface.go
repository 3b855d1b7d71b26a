package service

import (
	"context"

	"catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

// Service is the CMS write-side API for programs.
type Service interface {
	Create(ctx context.Context, req model.CreateProgramRequest) (*model.Program, error)
	GetByID(ctx context.Context, id string) (*model.Program, error)
	GetByIDWithContents(ctx context.Context, id string) (*model.Program, error)
	Update(ctx context.Context, id string, req model.UpdateProgramRequest) (*model.Program, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (*model.Program, error)
	Archive(ctx context.Context, id string) (*model.Program, error)
	List(ctx context.Context, filter model.ProgramFilter, page shared.Pagination) (*shared.Paginated[model.Program], error)
}
