package repository

import (
	"context"

	contentmodel "catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/domains/discovery/model"
	programmodel "catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

// ProgramReader is the published-only read side for programs. Every query
// carries an implicit status = 'published' constraint; any status in the
// incoming filter is ignored.
type ProgramReader interface {
	// GetPublishedByID returns the program with its published contents
	// nested, newest publication first. Nil when absent or not published.
	GetPublishedByID(ctx context.Context, id string) (*programmodel.Program, error)

	// ListPublished returns the filtered page plus the unpaginated total.
	ListPublished(ctx context.Context, filter programmodel.ProgramFilter, page shared.Pagination) ([]programmodel.Program, int, error)

	// SearchPrograms runs the ranked text search with facet constraints.
	// Pagination in params is used as given so the unified search can
	// over-fetch beyond the public limit clamp; callers normalize first.
	SearchPrograms(ctx context.Context, params model.SearchParams) ([]programmodel.Program, int, error)
}

// ContentReader is the published-only read side for contents.
type ContentReader interface {
	// GetPublishedByID resolves the owning program's title when set. Nil
	// when absent or not published.
	GetPublishedByID(ctx context.Context, id string) (*contentmodel.Content, error)

	ListPublished(ctx context.Context, filter contentmodel.ContentFilter, page shared.Pagination) ([]contentmodel.Content, int, error)

	// ListPublishedByProgram orders by publication time, newest first.
	ListPublishedByProgram(ctx context.Context, programID string, page shared.Pagination) ([]contentmodel.Content, int, error)

	SearchContents(ctx context.Context, params model.SearchParams) ([]contentmodel.Content, int, error)
}
