package model

import (
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/shared"
)

// ContentMetadata keys used by convention: duration (seconds), thumbnailUrl,
// episodeNumber, seasonNumber, guests. The map is open for anything else.
type ContentMetadata = map[string]any

// Content is an individual item (episode or video), optionally belonging to
// a program. The (Source, ExternalID) pair is the idempotency key for
// ingestion: unique whenever ExternalID is set.
type Content struct {
	ID          string             `json:"id" db:"id"`
	ProgramID   *string            `json:"program_id,omitempty" db:"program_id"`
	Title       string             `json:"title" db:"title"`
	Description *string            `json:"description,omitempty" db:"description"`
	Type        shared.ContentType `json:"type" db:"type"`
	Category    shared.Category    `json:"category" db:"category"`
	Language    string             `json:"language" db:"language"`
	Status      shared.Status      `json:"status" db:"status"`
	Source      shared.Source      `json:"source" db:"source"`
	ExternalID  *string            `json:"external_id,omitempty" db:"external_id"`
	Metadata    ContentMetadata    `json:"metadata,omitempty" db:"metadata"`
	PublishedAt *time.Time         `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`

	// ProgramTitle is populated only by the with-program queries.
	ProgramTitle *string `json:"program_title,omitempty" db:"-"`
}

// NewContentParams carries the construction inputs for fresh content.
type NewContentParams struct {
	ProgramID   *string
	Title       string
	Description *string
	Type        shared.ContentType
	Category    shared.Category
	Language    string
	Source      shared.Source
	ExternalID  *string
	Metadata    ContentMetadata
}

// NewContent constructs draft content with a fresh id.
func NewContent(p NewContentParams) *Content {
	now := time.Now()
	language := p.Language
	if language == "" {
		language = shared.DefaultLanguage
	}
	source := p.Source
	if source == "" {
		source = shared.SourceManual
	}
	return &Content{
		ID:          uuid.NewString(),
		ProgramID:   p.ProgramID,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Category:    p.Category,
		Language:    language,
		Status:      shared.StatusDraft,
		Source:      source,
		ExternalID:  p.ExternalID,
		Metadata:    p.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateContentParams are the mutable fields. Nil means "leave unchanged";
// SetProgramID toggles whether ProgramID is applied so it can be cleared.
type UpdateContentParams struct {
	SetProgramID bool
	ProgramID    *string
	Title        *string
	Description  *string
	Type         *shared.ContentType
	Category     *shared.Category
	Language     *string
	Metadata     ContentMetadata
}

// Update applies field changes and returns the names of the fields that
// changed. ID, CreatedAt, Status, Source, ExternalID and PublishedAt are
// never touched by Update; status and the publish timestamp belong to the
// lifecycle methods.
func (c *Content) Update(in UpdateContentParams) []string {
	var updated []string
	if in.SetProgramID {
		c.ProgramID = in.ProgramID
		updated = append(updated, "programId")
	}
	if in.Title != nil {
		c.Title = *in.Title
		updated = append(updated, "title")
	}
	if in.Description != nil {
		c.Description = in.Description
		updated = append(updated, "description")
	}
	if in.Type != nil {
		c.Type = *in.Type
		updated = append(updated, "type")
	}
	if in.Category != nil {
		c.Category = *in.Category
		updated = append(updated, "category")
	}
	if in.Language != nil {
		c.Language = *in.Language
		updated = append(updated, "language")
	}
	if in.Metadata != nil {
		c.Metadata = in.Metadata
		updated = append(updated, "metadata")
	}
	if len(updated) > 0 {
		c.UpdatedAt = time.Now()
	}
	return updated
}

// CanTransitionTo reports whether the lifecycle allows the requested status.
func (c *Content) CanTransitionTo(status shared.Status) bool {
	return shared.CanTransition(c.Status, status)
}

// Publish moves the content to published. PublishedAt is set only the first
// time: a republish after a draft revert keeps the original timestamp.
func (c *Content) Publish() error {
	if !c.CanTransitionTo(shared.StatusPublished) {
		return &InvalidTransitionError{From: c.Status, To: shared.StatusPublished}
	}
	c.Status = shared.StatusPublished
	if c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}
	c.UpdatedAt = time.Now()
	return nil
}

// Archive moves the content to archived. PublishedAt is left as is.
func (c *Content) Archive() error {
	if !c.CanTransitionTo(shared.StatusArchived) {
		return &InvalidTransitionError{From: c.Status, To: shared.StatusArchived}
	}
	c.Status = shared.StatusArchived
	c.UpdatedAt = time.Now()
	return nil
}

// RevertToDraft moves the content back to draft. PublishedAt is left as is.
func (c *Content) RevertToDraft() error {
	if !c.CanTransitionTo(shared.StatusDraft) {
		return &InvalidTransitionError{From: c.Status, To: shared.StatusDraft}
	}
	c.Status = shared.StatusDraft
	c.UpdatedAt = time.Now()
	return nil
}

func (c *Content) IsPublished() bool {
	return c.Status == shared.StatusPublished
}

// IsImported reports whether the content came from an external source.
func (c *Content) IsImported() bool {
	return c.Source != shared.SourceManual && c.ExternalID != nil
}
