package model

import (
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/shared"
)

// ProgramMetadata keys used by convention: hostName, rssFeedUrl,
// totalEpisodes, coverImageUrl. The map is open for anything else.
type ProgramMetadata = map[string]any

// Program is a top-level content series (podcast or documentary series).
// Status and timestamps are mutated only through the lifecycle methods below.
type Program struct {
	ID          string             `json:"id" db:"id"`
	Title       string             `json:"title" db:"title"`
	Description *string            `json:"description,omitempty" db:"description"`
	Type        shared.ProgramType `json:"type" db:"type"`
	Category    shared.Category    `json:"category" db:"category"`
	Language    string             `json:"language" db:"language"`
	Status      shared.Status      `json:"status" db:"status"`
	Metadata    ProgramMetadata    `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`

	// Contents is populated only by the with-contents queries.
	Contents []ProgramContent `json:"contents,omitempty" db:"-"`
}

// ProgramContent is the slim content projection embedded in a
// program-with-contents read. The full content entity lives in the content
// domain; duplicating the handful of fields here avoids an import cycle.
type ProgramContent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Status      shared.Status `json:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
}

// NewProgramParams carries the construction inputs for a fresh program.
type NewProgramParams struct {
	Title       string
	Description *string
	Type        shared.ProgramType
	Category    shared.Category
	Language    string
	Metadata    ProgramMetadata
}

// NewProgram constructs a draft program with a fresh id.
func NewProgram(p NewProgramParams) *Program {
	now := time.Now()
	language := p.Language
	if language == "" {
		language = shared.DefaultLanguage
	}
	return &Program{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Category:    p.Category,
		Language:    language,
		Status:      shared.StatusDraft,
		Metadata:    p.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateProgramParams are the mutable fields. Nil means "leave unchanged".
// Status is deliberately absent; transitions go through the lifecycle
// methods only.
type UpdateProgramParams struct {
	Title       *string
	Description *string
	Type        *shared.ProgramType
	Category    *shared.Category
	Language    *string
	Metadata    ProgramMetadata
}

// Update applies field changes and returns the names of the fields that
// changed (for the program.updated event). ID, CreatedAt, Status and the
// timestamps are never touched by Update.
func (p *Program) Update(in UpdateProgramParams) []string {
	var updated []string
	if in.Title != nil {
		p.Title = *in.Title
		updated = append(updated, "title")
	}
	if in.Description != nil {
		p.Description = in.Description
		updated = append(updated, "description")
	}
	if in.Type != nil {
		p.Type = *in.Type
		updated = append(updated, "type")
	}
	if in.Category != nil {
		p.Category = *in.Category
		updated = append(updated, "category")
	}
	if in.Language != nil {
		p.Language = *in.Language
		updated = append(updated, "language")
	}
	if in.Metadata != nil {
		p.Metadata = in.Metadata
		updated = append(updated, "metadata")
	}
	if len(updated) > 0 {
		p.UpdatedAt = time.Now()
	}
	return updated
}

// CanTransitionTo reports whether the lifecycle allows the requested status.
func (p *Program) CanTransitionTo(status shared.Status) bool {
	return shared.CanTransition(p.Status, status)
}

// Publish moves the program to published.
func (p *Program) Publish() error {
	if !p.CanTransitionTo(shared.StatusPublished) {
		return &InvalidTransitionError{From: p.Status, To: shared.StatusPublished}
	}
	p.Status = shared.StatusPublished
	p.UpdatedAt = time.Now()
	return nil
}

// Archive moves the program to archived.
func (p *Program) Archive() error {
	if !p.CanTransitionTo(shared.StatusArchived) {
		return &InvalidTransitionError{From: p.Status, To: shared.StatusArchived}
	}
	p.Status = shared.StatusArchived
	p.UpdatedAt = time.Now()
	return nil
}

// RevertToDraft moves the program back to draft.
func (p *Program) RevertToDraft() error {
	if !p.CanTransitionTo(shared.StatusDraft) {
		return &InvalidTransitionError{From: p.Status, To: shared.StatusDraft}
	}
	p.Status = shared.StatusDraft
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Program) IsPublished() bool {
	return p.Status == shared.StatusPublished
}
