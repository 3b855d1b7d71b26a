package service

import (
	"context"

	"catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/shared"
)

// Service is the CMS write-side for contents. It validates program
// references, drives the status lifecycle and emits domain events.
type Service interface {
	Create(ctx context.Context, req model.CreateContentRequest) (*model.Content, error)
	GetByID(ctx context.Context, id string) (*model.Content, error)
	GetByIDWithProgram(ctx context.Context, id string) (*model.Content, error)
	Update(ctx context.Context, id string, req model.UpdateContentRequest) (*model.Content, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (*model.Content, error)
	Archive(ctx context.Context, id string) (*model.Content, error)
	List(ctx context.Context, filter model.ContentFilter, page shared.Pagination) (*shared.Paginated[model.Content], error)
}
