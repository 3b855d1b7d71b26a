package events

import (
	"time"

	"catalog-backend/internal/shared"
)

// Event names for the content aggregate.
const (
	ContentCreatedName   = "content.created"
	ContentUpdatedName   = "content.updated"
	ContentPublishedName = "content.published"
	ContentArchivedName  = "content.archived"
	ContentDeletedName   = "content.deleted"
)

// ProgramID is nil for standalone content on all content events.

type ContentCreated struct {
	base
	ContentID string
	ProgramID *string
	Title     string
	Type      shared.ContentType
	Category  shared.Category
	Language  string
}

func NewContentCreated(contentID string, programID *string, title string, typ shared.ContentType, category shared.Category, language string) ContentCreated {
	return ContentCreated{
		base:      newBase(),
		ContentID: contentID,
		ProgramID: programID,
		Title:     title,
		Type:      typ,
		Category:  category,
		Language:  language,
	}
}

func (ContentCreated) EventName() string { return ContentCreatedName }

type ContentUpdated struct {
	base
	ContentID     string
	ProgramID     *string
	UpdatedFields []string
}

func NewContentUpdated(contentID string, programID *string, updatedFields []string) ContentUpdated {
	return ContentUpdated{base: newBase(), ContentID: contentID, ProgramID: programID, UpdatedFields: updatedFields}
}

func (ContentUpdated) EventName() string { return ContentUpdatedName }

type ContentPublished struct {
	base
	ContentID   string
	ProgramID   *string
	Title       string
	Description *string
	Type        shared.ContentType
	Category    shared.Category
	Language    string
	Metadata    map[string]any
	PublishedAt time.Time
}

func NewContentPublished(contentID string, programID *string, title string, description *string, typ shared.ContentType, category shared.Category, language string, metadata map[string]any, publishedAt time.Time) ContentPublished {
	return ContentPublished{
		base:        newBase(),
		ContentID:   contentID,
		ProgramID:   programID,
		Title:       title,
		Description: description,
		Type:        typ,
		Category:    category,
		Language:    language,
		Metadata:    metadata,
		PublishedAt: publishedAt,
	}
}

func (ContentPublished) EventName() string { return ContentPublishedName }

type ContentArchived struct {
	base
	ContentID string
	ProgramID *string
}

func NewContentArchived(contentID string, programID *string) ContentArchived {
	return ContentArchived{base: newBase(), ContentID: contentID, ProgramID: programID}
}

func (ContentArchived) EventName() string { return ContentArchivedName }

type ContentDeleted struct {
	base
	ContentID string
	ProgramID *string
}

func NewContentDeleted(contentID string, programID *string) ContentDeleted {
	return ContentDeleted{base: newBase(), ContentID: contentID, ProgramID: programID}
}

func (ContentDeleted) EventName() string { return ContentDeletedName }
