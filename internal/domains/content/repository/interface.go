package repository

import (
	"context"

	"catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/shared"
)

// Repository is the write-side persistence port for contents. Absence is
// reported as nil / false, never as an error; the service layer converts
// absence into ErrContentNotFound.
type Repository interface {
	// Save upserts the content.
	Save(ctx context.Context, content *model.Content) error

	// GetByID returns nil when the id does not exist.
	GetByID(ctx context.Context, id string) (*model.Content, error)

	// GetByIDWithProgram additionally resolves the owning program's title.
	GetByIDWithProgram(ctx context.Context, id string) (*model.Content, error)

	// GetByExternalID resolves the ingestion idempotency key. Returns nil
	// when no content with that (source, externalId) pair exists.
	GetByExternalID(ctx context.Context, source shared.Source, externalID string) (*model.Content, error)

	// Delete removes the content and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns the filtered page plus the unpaginated total.
	List(ctx context.Context, filter model.ContentFilter, page shared.Pagination) ([]model.Content, int, error)

	// Count returns the number of contents matching the filter.
	Count(ctx context.Context, filter model.ContentFilter) (int, error)
}
