package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/shared"
)

func TestNewContentDefaults(t *testing.T) {
	c := NewContent(NewContentParams{
		Title:    "الحلقة 1",
		Type:     shared.ContentTypePodcastEpisode,
		Category: shared.CategoryBusiness,
	})

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, shared.StatusDraft, c.Status)
	assert.Equal(t, shared.SourceManual, c.Source)
	assert.Equal(t, shared.DefaultLanguage, c.Language)
	assert.Nil(t, c.PublishedAt)
}

func TestContentPublishSetsTimestampOnce(t *testing.T) {
	c := NewContent(NewContentParams{Title: "t", Type: shared.ContentTypePodcastEpisode, Category: shared.CategoryBusiness})

	require.NoError(t, c.Publish())
	require.NotNil(t, c.PublishedAt)
	first := *c.PublishedAt

	// revert and republish keeps the original timestamp
	require.NoError(t, c.RevertToDraft())
	require.NoError(t, c.Publish())
	assert.Equal(t, first, *c.PublishedAt)
}

func TestContentArchiveKeepsPublishedAt(t *testing.T) {
	c := NewContent(NewContentParams{Title: "t", Type: shared.ContentTypePodcastEpisode, Category: shared.CategoryBusiness})

	require.NoError(t, c.Publish())
	published := *c.PublishedAt

	require.NoError(t, c.Archive())
	require.NotNil(t, c.PublishedAt)
	assert.Equal(t, published, *c.PublishedAt)
}

func TestContentForbiddenTransitions(t *testing.T) {
	c := NewContent(NewContentParams{Title: "t", Type: shared.ContentTypePodcastEpisode, Category: shared.CategoryBusiness})

	// draft -> archived
	err := c.Archive()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	require.NoError(t, c.Publish())
	require.NoError(t, c.Archive())

	// archived -> published
	err = c.Publish()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, shared.StatusArchived, c.Status)
}

func TestContentIsImported(t *testing.T) {
	externalID := "yt_abc_0"
	imported := NewContent(NewContentParams{
		Title:      "t",
		Type:       shared.ContentTypePodcastEpisode,
		Category:   shared.CategoryBusiness,
		Source:     shared.SourceYouTube,
		ExternalID: &externalID,
	})
	manual := NewContent(NewContentParams{Title: "t", Type: shared.ContentTypePodcastEpisode, Category: shared.CategoryBusiness})

	assert.True(t, imported.IsImported())
	assert.False(t, manual.IsImported())
}

func TestContentUpdateClearsProgramID(t *testing.T) {
	programID := "p1"
	c := NewContent(NewContentParams{
		Title:     "t",
		Type:      shared.ContentTypePodcastEpisode,
		Category:  shared.CategoryBusiness,
		ProgramID: &programID,
	})

	// SetProgramID with nil detaches the content
	updated := c.Update(UpdateContentParams{SetProgramID: true, ProgramID: nil})

	assert.Equal(t, []string{"programId"}, updated)
	assert.Nil(t, c.ProgramID)
}
