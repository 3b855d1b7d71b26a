package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmodel "catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/domains/discovery/model"
	programmodel "catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

type fakeProgramReader struct {
	programs []programmodel.Program
	total    int

	searchCalls  int
	searchParams model.SearchParams
}

func (r *fakeProgramReader) GetPublishedByID(_ context.Context, id string) (*programmodel.Program, error) {
	for i := range r.programs {
		if r.programs[i].ID == id {
			return &r.programs[i], nil
		}
	}
	return nil, nil
}

func (r *fakeProgramReader) ListPublished(_ context.Context, _ programmodel.ProgramFilter, page shared.Pagination) ([]programmodel.Program, int, error) {
	return r.programs, r.total, nil
}

func (r *fakeProgramReader) SearchPrograms(_ context.Context, params model.SearchParams) ([]programmodel.Program, int, error) {
	r.searchCalls++
	r.searchParams = params
	return r.programs, r.total, nil
}

type fakeContentReader struct {
	contents []contentmodel.Content
	total    int

	searchCalls  int
	searchParams model.SearchParams
}

func (r *fakeContentReader) GetPublishedByID(_ context.Context, id string) (*contentmodel.Content, error) {
	for i := range r.contents {
		if r.contents[i].ID == id {
			return &r.contents[i], nil
		}
	}
	return nil, nil
}

func (r *fakeContentReader) ListPublished(_ context.Context, _ contentmodel.ContentFilter, _ shared.Pagination) ([]contentmodel.Content, int, error) {
	return r.contents, r.total, nil
}

func (r *fakeContentReader) ListPublishedByProgram(_ context.Context, _ string, _ shared.Pagination) ([]contentmodel.Content, int, error) {
	return r.contents, r.total, nil
}

func (r *fakeContentReader) SearchContents(_ context.Context, params model.SearchParams) ([]contentmodel.Content, int, error) {
	r.searchCalls++
	r.searchParams = params
	return r.contents, r.total, nil
}

func publishedProgram(id string) programmodel.Program {
	p := programmodel.NewProgram(programmodel.NewProgramParams{
		Title:    "برنامج " + id,
		Type:     shared.ProgramTypePodcastSeries,
		Category: shared.CategoryBusiness,
	})
	p.ID = id
	p.Status = shared.StatusPublished
	return *p
}

func publishedContent(id string) contentmodel.Content {
	c := contentmodel.NewContent(contentmodel.NewContentParams{
		Title:    "حلقة " + id,
		Type:     shared.ContentTypePodcastEpisode,
		Category: shared.CategoryBusiness,
	})
	c.ID = id
	c.Status = shared.StatusPublished
	return *c
}

func TestUnifiedSearchMergeAndSlice(t *testing.T) {
	programs := &fakeProgramReader{
		programs: []programmodel.Program{publishedProgram("P1"), publishedProgram("P2")},
		total:    5,
	}
	contents := &fakeContentReader{
		contents: []contentmodel.Content{publishedContent("C1"), publishedContent("C2"), publishedContent("C3")},
		total:    7,
	}
	svc := NewService(programs, contents, NewCacheService(newFakeCache()))

	result, err := svc.Search(context.Background(), model.SearchParams{Limit: 2, Offset: 1})
	require.NoError(t, err)

	// both sides over-fetched at twice the limit from offset zero
	assert.Equal(t, 4, programs.searchParams.Limit)
	assert.Equal(t, 0, programs.searchParams.Offset)
	assert.Equal(t, 4, contents.searchParams.Limit)
	assert.Equal(t, 0, contents.searchParams.Offset)

	// concatenation is [P1 P2 C1 C2 C3]; offset 1 limit 2 slices [P2 C1]
	require.Len(t, result.Items, 2)
	require.NotNil(t, result.Items[0].Program)
	assert.Equal(t, "P2", result.Items[0].Program.ID)
	assert.Equal(t, 1.0, result.Items[0].Score)
	require.NotNil(t, result.Items[1].Content)
	assert.Equal(t, "C1", result.Items[1].Content.ID)
	assert.Equal(t, 0.9, result.Items[1].Score)

	// total is the sum of both per-entity totals
	assert.Equal(t, 12, result.Total)
	assert.Equal(t, 2, result.Limit)
	assert.Equal(t, 1, result.Offset)
}

func TestUnifiedSearchOverFetchExceedsLimitClamp(t *testing.T) {
	programs := &fakeProgramReader{}
	contents := &fakeContentReader{}
	svc := NewService(programs, contents, NewCacheService(newFakeCache()))

	_, err := svc.Search(context.Background(), model.SearchParams{Limit: 100})
	require.NoError(t, err)

	// the merge window stays at twice the caller's limit even when that
	// exceeds the maximum a caller may request directly
	assert.Equal(t, 200, programs.searchParams.Limit)
	assert.Equal(t, 200, contents.searchParams.Limit)
}

func TestUnifiedSearchOffsetBeyondResults(t *testing.T) {
	programs := &fakeProgramReader{programs: []programmodel.Program{publishedProgram("P1")}, total: 1}
	contents := &fakeContentReader{total: 0}
	svc := NewService(programs, contents, NewCacheService(newFakeCache()))

	result, err := svc.Search(context.Background(), model.SearchParams{Limit: 10, Offset: 50})
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Total)
}

func TestUnifiedSearchCachesResult(t *testing.T) {
	programs := &fakeProgramReader{programs: []programmodel.Program{publishedProgram("P1")}, total: 1}
	contents := &fakeContentReader{total: 0}
	svc := NewService(programs, contents, NewCacheService(newFakeCache()))

	q := "تقنية"
	params := model.SearchParams{Query: &q, Limit: 10}

	first, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 1, programs.searchCalls)
	assert.Equal(t, 1, contents.searchCalls)
	assert.Equal(t, first.Total, second.Total)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "P1", second.Items[0].Program.ID)
}

func TestGetProgramReadThrough(t *testing.T) {
	cache := newFakeCache()
	cacheService := NewCacheService(cache)
	programs := &fakeProgramReader{programs: []programmodel.Program{publishedProgram("P1")}}
	svc := NewService(programs, &fakeContentReader{}, cacheService)

	got, err := svc.GetProgram(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, "P1", got.ID)
	assert.True(t, cache.has(cacheService.ProgramKey("P1")))

	// a cached entity is served even after the source loses it
	programs.programs = nil
	again, err := svc.GetProgram(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, "P1", again.ID)
}

func TestGetProgramNotFound(t *testing.T) {
	svc := NewService(&fakeProgramReader{}, &fakeContentReader{}, NewCacheService(newFakeCache()))

	_, err := svc.GetProgram(context.Background(), "missing")
	require.ErrorIs(t, err, programmodel.ErrProgramNotFound)
}

func TestGetContentNotFound(t *testing.T) {
	svc := NewService(&fakeProgramReader{}, &fakeContentReader{}, NewCacheService(newFakeCache()))

	_, err := svc.GetContent(context.Background(), "missing")
	require.ErrorIs(t, err, contentmodel.ErrContentNotFound)
}

func TestProgramContentsCachesOnlyDefaultFirstPage(t *testing.T) {
	cache := newFakeCache()
	cacheService := NewCacheService(cache)
	contents := &fakeContentReader{contents: []contentmodel.Content{publishedContent("C1")}, total: 1}
	svc := NewService(&fakeProgramReader{}, contents, cacheService)

	_, err := svc.ProgramContents(context.Background(), "P1", shared.Pagination{})
	require.NoError(t, err)
	assert.True(t, cache.has(cacheService.ProgramContentsKey("P1")))

	_, err = svc.ProgramContents(context.Background(), "P2", shared.Pagination{Limit: 50})
	require.NoError(t, err)
	assert.False(t, cache.has(cacheService.ProgramContentsKey("P2")))
}
