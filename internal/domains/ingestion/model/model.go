package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"catalog-backend/internal/shared"
)

// ImportRequest asks for a channel's items to be pulled from an external
// source. ProgramID is optional; when absent a program is created from the
// source's channel info.
type ImportRequest struct {
	Source      shared.Source       `json:"source"`
	ChannelID   string              `json:"channel_id"`
	ProgramID   *string             `json:"program_id,omitempty"`
	ContentType *shared.ContentType `json:"content_type,omitempty"`
	Category    *shared.Category    `json:"category,omitempty"`
	MaxResults  int                 `json:"max_results,omitempty"`
}

func (r ImportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Source, validation.Required, validation.By(validImportSource)),
		validation.Field(&r.ChannelID, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ContentType, validation.By(validContentTypePtr)),
		validation.Field(&r.Category, validation.By(validCategoryPtr)),
		validation.Field(&r.MaxResults, validation.Min(0), validation.Max(500)),
	)
}

// TaskPayload converts the request into the queue payload shape.
func (r ImportRequest) TaskPayload() shared.ImportTaskPayload {
	p := shared.ImportTaskPayload{
		Source:     r.Source,
		ChannelID:  r.ChannelID,
		ProgramID:  r.ProgramID,
		MaxResults: r.MaxResults,
	}
	if r.ContentType != nil {
		ct := string(*r.ContentType)
		p.ContentType = &ct
	}
	if r.Category != nil {
		cat := string(*r.Category)
		p.Category = &cat
	}
	return p
}

// RequestFromPayload is the inverse of TaskPayload, used by the worker.
func RequestFromPayload(p shared.ImportTaskPayload) ImportRequest {
	r := ImportRequest{
		Source:     p.Source,
		ChannelID:  p.ChannelID,
		ProgramID:  p.ProgramID,
		MaxResults: p.MaxResults,
	}
	if p.ContentType != nil {
		ct := shared.ContentType(*p.ContentType)
		r.ContentType = &ct
	}
	if p.Category != nil {
		cat := shared.Category(*p.Category)
		r.Category = &cat
	}
	return r
}

// ImportResult summarizes one import run. Errors holds per-item failure
// messages; a non-empty list does not fail the batch.
type ImportResult struct {
	Source    shared.Source `json:"source"`
	ChannelID string        `json:"channel_id"`
	ProgramID string        `json:"program_id"`
	Imported  int           `json:"imported"`
	Skipped   int           `json:"skipped"`
	Errors    []string      `json:"errors"`
}

// ExternalItem is one item as reported by a source adapter, before it
// becomes draft content. Content type and category are chosen by the
// import request, not the adapter.
type ExternalItem struct {
	ExternalID   string
	Title        string
	Description  *string
	Duration     int // seconds
	ThumbnailURL string
	PublishedAt  time.Time
	Metadata     map[string]any
}

// ChannelInfo describes an external channel, used to seed a program when
// the import has none.
type ChannelInfo struct {
	Title        string
	Description  *string
	ThumbnailURL string
	Metadata     map[string]any
}

func validImportSource(value interface{}) error {
	s, _ := value.(shared.Source)
	if !s.Valid() || s == shared.SourceManual {
		return validation.NewError("validation_source", "must be an external source (youtube or rss)")
	}
	return nil
}

func validContentTypePtr(value interface{}) error {
	t, _ := value.(*shared.ContentType)
	if t == nil {
		return nil
	}
	if !t.Valid() {
		return validation.NewError("validation_content_type", "unknown content type")
	}
	return nil
}

func validCategoryPtr(value interface{}) error {
	c, _ := value.(*shared.Category)
	if c == nil {
		return nil
	}
	if !c.Valid() {
		return validation.NewError("validation_category", "unknown category")
	}
	return nil
}
