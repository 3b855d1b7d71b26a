package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"catalog-backend/internal/shared"
)

// CreateContentRequest is the CMS create payload.
type CreateContentRequest struct {
	ProgramID   *string            `json:"program_id,omitempty"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	Type        shared.ContentType `json:"type"`
	Category    shared.Category    `json:"category"`
	Language    string             `json:"language,omitempty"`
	Source      shared.Source      `json:"source,omitempty"`
	ExternalID  *string            `json:"external_id,omitempty"`
	Metadata    ContentMetadata    `json:"metadata,omitempty"`
}

func (r CreateContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Type, validation.Required, validation.By(validContentType)),
		validation.Field(&r.Category, validation.Required, validation.By(validCategory)),
		validation.Field(&r.Language, validation.Length(0, 10)),
		validation.Field(&r.Source, validation.By(validSource)),
		validation.Field(&r.ExternalID, validation.Length(0, 255)),
	)
}

// UpdateContentRequest is the CMS partial-update payload. program_id is
// distinguished between "absent" and "null" via SetProgramID, which the
// handler fills from the raw body.
type UpdateContentRequest struct {
	SetProgramID bool                `json:"-"`
	ProgramID    *string             `json:"program_id,omitempty"`
	Title        *string             `json:"title,omitempty"`
	Description  *string             `json:"description,omitempty"`
	Type         *shared.ContentType `json:"type,omitempty"`
	Category     *shared.Category    `json:"category,omitempty"`
	Language     *string             `json:"language,omitempty"`
	Status       *shared.Status      `json:"status,omitempty"`
	Metadata     ContentMetadata     `json:"metadata,omitempty"`
}

func (r UpdateContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 500)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Type, validation.By(validContentTypePtr)),
		validation.Field(&r.Category, validation.By(validCategoryPtr)),
		validation.Field(&r.Language, validation.Length(1, 10)),
		validation.Field(&r.Status, validation.By(validStatusPtr)),
	)
}

// UpdateParams converts the request into entity update params (status
// excluded; the service drives transitions separately).
func (r UpdateContentRequest) UpdateParams() UpdateContentParams {
	return UpdateContentParams{
		SetProgramID: r.SetProgramID,
		ProgramID:    r.ProgramID,
		Title:        r.Title,
		Description:  r.Description,
		Type:         r.Type,
		Category:     r.Category,
		Language:     r.Language,
		Metadata:     r.Metadata,
	}
}

// ContentFilter narrows list queries. Nil fields are ignored.
type ContentFilter struct {
	ProgramID *string             `form:"program_id"`
	Type      *shared.ContentType `form:"type"`
	Category  *shared.Category    `form:"category"`
	Language  *string             `form:"language"`
	Status    *shared.Status      `form:"status"`
	Source    *shared.Source      `form:"source"`
}

func (f ContentFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Type, validation.By(validContentTypePtr)),
		validation.Field(&f.Category, validation.By(validCategoryPtr)),
		validation.Field(&f.Status, validation.By(validStatusPtr)),
		validation.Field(&f.Source, validation.By(validSourcePtr)),
	)
}

// enum rules shared by the request types

func validContentType(value interface{}) error {
	t, _ := value.(shared.ContentType)
	if !t.Valid() {
		return validation.NewError("validation_content_type", "must be podcast_episode, documentary_episode or standalone_video")
	}
	return nil
}

func validContentTypePtr(value interface{}) error {
	t, _ := value.(*shared.ContentType)
	if t == nil {
		return nil
	}
	return validContentType(*t)
}

func validCategory(value interface{}) error {
	c, _ := value.(shared.Category)
	if !c.Valid() {
		return validation.NewError("validation_category", "unknown category")
	}
	return nil
}

func validCategoryPtr(value interface{}) error {
	c, _ := value.(*shared.Category)
	if c == nil {
		return nil
	}
	return validCategory(*c)
}

func validStatusPtr(value interface{}) error {
	s, _ := value.(*shared.Status)
	if s == nil {
		return nil
	}
	if !s.Valid() {
		return validation.NewError("validation_status", "must be draft, published or archived")
	}
	return nil
}

func validSource(value interface{}) error {
	s, _ := value.(shared.Source)
	if s == "" {
		return nil // defaulted to manual at construction
	}
	if !s.Valid() {
		return validation.NewError("validation_source", "must be manual, youtube or rss")
	}
	return nil
}

func validSourcePtr(value interface{}) error {
	s, _ := value.(*shared.Source)
	if s == nil {
		return nil
	}
	return validSource(*s)
}
