package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/shared"
)

func TestNewProgramDefaults(t *testing.T) {
	p := NewProgram(NewProgramParams{
		Title:    "فنجان",
		Type:     shared.ProgramTypePodcastSeries,
		Category: shared.CategoryCulture,
	})

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, shared.StatusDraft, p.Status)
	assert.Equal(t, shared.DefaultLanguage, p.Language)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestProgramLifecycle(t *testing.T) {
	p := NewProgram(NewProgramParams{Title: "t", Type: shared.ProgramTypePodcastSeries, Category: shared.CategoryTechnology})

	// draft -> archived is not an edge
	err := p.Archive()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, shared.StatusDraft, p.Status)

	require.NoError(t, p.Publish())
	assert.Equal(t, shared.StatusPublished, p.Status)

	// no self-transition
	err = p.Publish()
	require.Error(t, err)

	require.NoError(t, p.Archive())
	assert.Equal(t, shared.StatusArchived, p.Status)

	// archived -> published is not an edge
	err = p.Publish()
	require.Error(t, err)

	var transitionErr *InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, shared.StatusArchived, transitionErr.From)
	assert.Equal(t, shared.StatusPublished, transitionErr.To)

	require.NoError(t, p.RevertToDraft())
	assert.Equal(t, shared.StatusDraft, p.Status)
}

func TestProgramUpdateReportsChangedFields(t *testing.T) {
	p := NewProgram(NewProgramParams{Title: "old", Type: shared.ProgramTypePodcastSeries, Category: shared.CategoryTechnology})

	newTitle := "new"
	newCategory := shared.CategoryBusiness
	updated := p.Update(UpdateProgramParams{Title: &newTitle, Category: &newCategory})

	assert.ElementsMatch(t, []string{"title", "category"}, updated)
	assert.Equal(t, "new", p.Title)
	assert.Equal(t, shared.CategoryBusiness, p.Category)
}

func TestProgramUpdateNoChanges(t *testing.T) {
	p := NewProgram(NewProgramParams{Title: "t", Type: shared.ProgramTypePodcastSeries, Category: shared.CategoryTechnology})
	before := p.UpdatedAt

	updated := p.Update(UpdateProgramParams{})

	assert.Empty(t, updated)
	assert.Equal(t, before, p.UpdatedAt)
}
