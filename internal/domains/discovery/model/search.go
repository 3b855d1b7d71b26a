package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	contentmodel "catalog-backend/internal/domains/content/model"
	programmodel "catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

// Sort fields accepted by the search endpoints.
const (
	SortByTitle       = "title"
	SortByCreatedAt   = "createdAt"
	SortByPublishedAt = "publishedAt"
	SortByRelevance   = "relevance"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SearchParams is the discovery search query contract. Nil or empty fields
// are ignored. Facets are conjunctive with the text query.
type SearchParams struct {
	Query        *string              `form:"q"`
	Categories   []shared.Category    `form:"categories"`
	ContentTypes []shared.ContentType `form:"content_types"`
	ProgramTypes []shared.ProgramType `form:"program_types"`
	Language     *string              `form:"language"`
	SortBy       string               `form:"sort_by"`
	SortOrder    string               `form:"sort_order"`
	Limit        int                  `form:"limit"`
	Offset       int                  `form:"offset"`
}

func (p SearchParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Categories, validation.Each(validation.By(validCategory))),
		validation.Field(&p.ContentTypes, validation.Each(validation.By(validContentType))),
		validation.Field(&p.ProgramTypes, validation.Each(validation.By(validProgramType))),
		validation.Field(&p.SortBy, validation.In("", SortByTitle, SortByCreatedAt, SortByPublishedAt, SortByRelevance)),
		validation.Field(&p.SortOrder, validation.In("", SortAsc, SortDesc)),
		validation.Field(&p.Limit, validation.Min(0)),
		validation.Field(&p.Offset, validation.Min(0)),
	)
}

// Normalize clamps pagination and defaults the sort direction.
func (p SearchParams) Normalize() SearchParams {
	page := shared.Pagination{Limit: p.Limit, Offset: p.Offset}.Normalize()
	p.Limit = page.Limit
	p.Offset = page.Offset
	if p.SortOrder == "" {
		p.SortOrder = SortDesc
	}
	if p.Query != nil && *p.Query == "" {
		p.Query = nil
	}
	return p
}

// HasQuery reports whether a non-empty text query was supplied.
func (p SearchParams) HasQuery() bool {
	return p.Query != nil && *p.Query != ""
}

// CacheFields flattens the params into the map the cache key is derived
// from. Nil and empty fields are left out so logically-equal queries share
// a key.
func (p SearchParams) CacheFields() map[string]any {
	fields := make(map[string]any)
	if p.Query != nil {
		fields["q"] = *p.Query
	}
	if len(p.Categories) > 0 {
		fields["categories"] = p.Categories
	}
	if len(p.ContentTypes) > 0 {
		fields["contentTypes"] = p.ContentTypes
	}
	if len(p.ProgramTypes) > 0 {
		fields["programTypes"] = p.ProgramTypes
	}
	if p.Language != nil {
		fields["language"] = *p.Language
	}
	if p.SortBy != "" {
		fields["sortBy"] = p.SortBy
	}
	if p.SortOrder != "" {
		fields["sortOrder"] = p.SortOrder
	}
	fields["limit"] = p.Limit
	fields["offset"] = p.Offset
	return fields
}

// SearchItem is one unified search hit. Exactly one of Program or Content
// is set.
type SearchItem struct {
	Program *programmodel.Program `json:"program,omitempty"`
	Content *contentmodel.Content `json:"content,omitempty"`
	Score   float64               `json:"score"`
}

// SearchResult is the unified search response. Total is the sum of the two
// per-entity totals, which can exceed what pagination can reach since each
// side is truncated before merging.
type SearchResult struct {
	Items  []SearchItem `json:"items"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

func validCategory(value interface{}) error {
	c, _ := value.(shared.Category)
	if !c.Valid() {
		return validation.NewError("validation_category", "unknown category")
	}
	return nil
}

func validContentType(value interface{}) error {
	t, _ := value.(shared.ContentType)
	if !t.Valid() {
		return validation.NewError("validation_content_type", "unknown content type")
	}
	return nil
}

func validProgramType(value interface{}) error {
	t, _ := value.(shared.ProgramType)
	if !t.Valid() {
		return validation.NewError("validation_program_type", "unknown program type")
	}
	return nil
}
