package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

func TestBuildProgramWhereEmptyFilter(t *testing.T) {
	// the write side sees every status; no filter means no WHERE at all
	where, args := buildProgramWhere(model.ProgramFilter{})

	assert.Equal(t, "", where)
	assert.Nil(t, args)
}

func TestBuildProgramWhereAllFilters(t *testing.T) {
	pt := shared.ProgramTypePodcastSeries
	cat := shared.CategoryBusiness
	lang := "ar"
	status := shared.StatusDraft

	where, args := buildProgramWhere(model.ProgramFilter{
		Type:     &pt,
		Category: &cat,
		Language: &lang,
		Status:   &status,
	})

	assert.Equal(t, "WHERE type = $1 AND category = $2 AND language = $3 AND status = $4", where)
	assert.Equal(t, []interface{}{pt, cat, lang, status}, args)
}

func TestBuildProgramWhereNumbersSkipNilFields(t *testing.T) {
	status := shared.StatusArchived

	where, args := buildProgramWhere(model.ProgramFilter{Status: &status})

	assert.Equal(t, "WHERE status = $1", where)
	assert.Equal(t, []interface{}{status}, args)
}
