package service

import (
	"context"

	contentmodel "catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/domains/discovery/model"
	programmodel "catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

// Service is the public discovery read side. Everything it returns is
// published; drafts and archived entities do not exist from here. Reads go
// through the cache and fall back to Postgres on a miss.
type Service interface {
	GetProgram(ctx context.Context, id string) (*programmodel.Program, error)
	ListPrograms(ctx context.Context, filter programmodel.ProgramFilter, page shared.Pagination) (*shared.Paginated[programmodel.Program], error)

	GetContent(ctx context.Context, id string) (*contentmodel.Content, error)
	ListContents(ctx context.Context, filter contentmodel.ContentFilter, page shared.Pagination) (*shared.Paginated[contentmodel.Content], error)

	// ProgramContents lists a program's published contents, newest
	// publication first.
	ProgramContents(ctx context.Context, programID string, page shared.Pagination) (*shared.Paginated[contentmodel.Content], error)

	// Search merges ranked program and content hits into one page.
	Search(ctx context.Context, params model.SearchParams) (*model.SearchResult, error)
	SearchPrograms(ctx context.Context, params model.SearchParams) (*shared.Paginated[programmodel.Program], error)
	SearchContents(ctx context.Context, params model.SearchParams) (*shared.Paginated[contentmodel.Content], error)
}
