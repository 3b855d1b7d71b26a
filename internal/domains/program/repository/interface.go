package repository

import (
	"context"

	"catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

// Repository is the write-side persistence port for programs. Absence is
// reported as nil / false, never as an error; the service layer converts
// absence into ErrProgramNotFound.
type Repository interface {
	// Save upserts the program.
	Save(ctx context.Context, program *model.Program) error

	// GetByID returns nil when the id does not exist.
	GetByID(ctx context.Context, id string) (*model.Program, error)

	// GetByIDWithContents loads the program and all of its contents,
	// regardless of content status.
	GetByIDWithContents(ctx context.Context, id string) (*model.Program, error)

	// Delete removes the program (the storage layer cascades to its
	// contents) and reports whether a row was actually removed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns the filtered page plus the unpaginated total.
	List(ctx context.Context, filter model.ProgramFilter, page shared.Pagination) ([]model.Program, int, error)

	// Count returns the number of programs matching the filter.
	Count(ctx context.Context, filter model.ProgramFilter) (int, error)
}
