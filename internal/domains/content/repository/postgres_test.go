package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/shared"
)

func TestBuildContentWhereEmptyFilter(t *testing.T) {
	// unlike the discovery readers, the write side has no implicit
	// published constraint
	where, args := buildContentWhere(model.ContentFilter{})

	assert.Equal(t, "", where)
	assert.Nil(t, args)
}

func TestBuildContentWhereAllFilters(t *testing.T) {
	programID := "p-1"
	ct := shared.ContentTypePodcastEpisode
	cat := shared.CategoryTechnology
	lang := "ar"
	status := shared.StatusPublished
	src := shared.SourceYouTube

	where, args := buildContentWhere(model.ContentFilter{
		ProgramID: &programID,
		Type:      &ct,
		Category:  &cat,
		Language:  &lang,
		Status:    &status,
		Source:    &src,
	})

	assert.Equal(t,
		"WHERE program_id = $1 AND type = $2 AND category = $3 AND language = $4 AND status = $5 AND source = $6",
		where)
	assert.Equal(t, []interface{}{programID, ct, cat, lang, status, src}, args)
}

func TestBuildContentWhereNumbersSkipNilFields(t *testing.T) {
	src := shared.SourceRSS
	status := shared.StatusDraft

	where, args := buildContentWhere(model.ContentFilter{Status: &status, Source: &src})

	assert.Equal(t, "WHERE status = $1 AND source = $2", where)
	assert.Equal(t, []interface{}{status, src}, args)
}
