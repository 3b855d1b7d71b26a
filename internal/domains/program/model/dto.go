package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"catalog-backend/internal/shared"
)

// CreateProgramRequest is the CMS create payload.
type CreateProgramRequest struct {
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	Type        shared.ProgramType `json:"type"`
	Category    shared.Category    `json:"category"`
	Language    string             `json:"language,omitempty"`
	Metadata    ProgramMetadata    `json:"metadata,omitempty"`
}

func (r CreateProgramRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Type, validation.Required, validation.By(validProgramType)),
		validation.Field(&r.Category, validation.Required, validation.By(validCategory)),
		validation.Field(&r.Language, validation.Length(0, 10)),
	)
}

// UpdateProgramRequest is the CMS partial-update payload. Status here drives
// the state machine; everything else is a plain field update.
type UpdateProgramRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Type        *shared.ProgramType `json:"type,omitempty"`
	Category    *shared.Category    `json:"category,omitempty"`
	Language    *string             `json:"language,omitempty"`
	Status      *shared.Status      `json:"status,omitempty"`
	Metadata    ProgramMetadata     `json:"metadata,omitempty"`
}

func (r UpdateProgramRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Type, validation.By(validProgramTypePtr)),
		validation.Field(&r.Category, validation.By(validCategoryPtr)),
		validation.Field(&r.Language, validation.Length(1, 10)),
		validation.Field(&r.Status, validation.By(validStatusPtr)),
	)
}

// UpdateParams converts the request into entity update params (status
// excluded; the service drives transitions separately).
func (r UpdateProgramRequest) UpdateParams() UpdateProgramParams {
	return UpdateProgramParams{
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Category:    r.Category,
		Language:    r.Language,
		Metadata:    r.Metadata,
	}
}

// ProgramFilter narrows list queries. Nil fields are ignored.
type ProgramFilter struct {
	Type     *shared.ProgramType `form:"type"`
	Category *shared.Category    `form:"category"`
	Language *string             `form:"language"`
	Status   *shared.Status      `form:"status"`
}

func (f ProgramFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Type, validation.By(validProgramTypePtr)),
		validation.Field(&f.Category, validation.By(validCategoryPtr)),
		validation.Field(&f.Status, validation.By(validStatusPtr)),
	)
}

// enum rules shared by the request types

func validProgramType(value interface{}) error {
	t, _ := value.(shared.ProgramType)
	if !t.Valid() {
		return validation.NewError("validation_program_type", "must be podcast_series or documentary_series")
	}
	return nil
}

func validProgramTypePtr(value interface{}) error {
	t, _ := value.(*shared.ProgramType)
	if t == nil {
		return nil
	}
	return validProgramType(*t)
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
