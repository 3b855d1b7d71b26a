package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/content/model"
	programmodel "catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/events"
)

type fakeContentRepo struct {
	byID map[string]*model.Content
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{byID: make(map[string]*model.Content)}
}

func (r *fakeContentRepo) Save(_ context.Context, c *model.Content) error {
	stored := *c
	r.byID[c.ID] = &stored
	return nil
}

func (r *fakeContentRepo) GetByID(_ context.Context, id string) (*model.Content, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakeContentRepo) GetByIDWithProgram(ctx context.Context, id string) (*model.Content, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeContentRepo) GetByExternalID(_ context.Context, source shared.Source, externalID string) (*model.Content, error) {
	for _, c := range r.byID {
		if c.Source == source && c.ExternalID != nil && *c.ExternalID == externalID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeContentRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *fakeContentRepo) List(_ context.Context, _ model.ContentFilter, page shared.Pagination) ([]model.Content, int, error) {
	page = page.Normalize()
	items := make([]model.Content, 0, len(r.byID))
	for _, c := range r.byID {
		items = append(items, *c)
	}
	return items, len(items), nil
}

func (r *fakeContentRepo) Count(_ context.Context, _ model.ContentFilter) (int, error) {
	return len(r.byID), nil
}

type fakeProgramRepo struct {
	byID map[string]*programmodel.Program
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{byID: make(map[string]*programmodel.Program)}
}

func (r *fakeProgramRepo) Save(_ context.Context, p *programmodel.Program) error {
	stored := *p
	r.byID[p.ID] = &stored
	return nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id string) (*programmodel.Program, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProgramRepo) GetByIDWithContents(ctx context.Context, id string) (*programmodel.Program, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProgramRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *fakeProgramRepo) List(_ context.Context, _ programmodel.ProgramFilter, _ shared.Pagination) ([]programmodel.Program, int, error) {
	return nil, 0, nil
}

func (r *fakeProgramRepo) Count(_ context.Context, _ programmodel.ProgramFilter) (int, error) {
	return len(r.byID), nil
}

type recordedEvents struct {
	events []events.Event
}

func recordAll(bus *events.Bus) *recordedEvents {
	rec := &recordedEvents{}
	for _, name := range []string{
		events.ContentCreatedName,
		events.ContentUpdatedName,
		events.ContentPublishedName,
		events.ContentArchivedName,
		events.ContentDeletedName,
	} {
		bus.SubscribeSync(name, func(e events.Event) {
			rec.events = append(rec.events, e)
		})
	}
	return rec
}

func (r *recordedEvents) names() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventName()
	}
	return out
}

func newTestService(t *testing.T) (Service, *fakeContentRepo, *fakeProgramRepo, *recordedEvents) {
	t.Helper()
	contents := newFakeContentRepo()
	programs := newFakeProgramRepo()
	bus := events.NewBus()
	rec := recordAll(bus)
	return NewService(contents, programs, bus), contents, programs, rec
}

func createDraft(t *testing.T, svc Service, programID *string) *model.Content {
	t.Helper()
	created, err := svc.Create(context.Background(), model.CreateContentRequest{
		ProgramID: programID,
		Title:     "الحلقة 1",
		Type:      shared.ContentTypePodcastEpisode,
		Category:  shared.CategoryBusiness,
	})
	require.NoError(t, err)
	return created
}

func TestCreateEmitsContentCreated(t *testing.T) {
	svc, contents, _, rec := newTestService(t)

	created := createDraft(t, svc, nil)

	stored, err := contents.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, shared.StatusDraft, stored.Status)

	require.Equal(t, []string{events.ContentCreatedName}, rec.names())
	ev := rec.events[0].(events.ContentCreated)
	assert.Equal(t, created.ID, ev.ContentID)
	assert.Nil(t, ev.ProgramID)
}

func TestCreateRejectsUnknownProgram(t *testing.T) {
	svc, _, _, rec := newTestService(t)

	missing := "does-not-exist"
	_, err := svc.Create(context.Background(), model.CreateContentRequest{
		ProgramID: &missing,
		Title:     "t",
		Type:      shared.ContentTypePodcastEpisode,
		Category:  shared.CategoryBusiness,
	})

	require.ErrorIs(t, err, model.ErrProgramNotFound)
	assert.Empty(t, rec.events)
}

func TestPublishEmitsContentPublished(t *testing.T) {
	svc, _, _, rec := newTestService(t)
	created := createDraft(t, svc, nil)

	published, err := svc.Publish(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)

	require.Equal(t, []string{events.ContentCreatedName, events.ContentPublishedName}, rec.names())
	ev := rec.events[1].(events.ContentPublished)
	assert.Equal(t, created.ID, ev.ContentID)
	assert.Equal(t, *published.PublishedAt, ev.PublishedAt)
}

func TestArchiveAfterPublishEmitsContentArchived(t *testing.T) {
	svc, _, _, rec := newTestService(t)
	created := createDraft(t, svc, nil)

	_, err := svc.Publish(context.Background(), created.ID)
	require.NoError(t, err)
	archived, err := svc.Archive(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusArchived, archived.Status)

	names := rec.names()
	require.Len(t, names, 3)
	assert.Equal(t, events.ContentArchivedName, names[2])
}

func TestUpdateFieldsEmitsContentUpdated(t *testing.T) {
	svc, _, _, rec := newTestService(t)
	created := createDraft(t, svc, nil)

	newTitle := "عنوان جديد"
	updated, err := svc.Update(context.Background(), created.ID, model.UpdateContentRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "عنوان جديد", updated.Title)

	names := rec.names()
	require.Len(t, names, 2)
	require.Equal(t, events.ContentUpdatedName, names[1])
	ev := rec.events[1].(events.ContentUpdated)
	assert.Equal(t, []string{"title"}, ev.UpdatedFields)
}

func TestUpdateStatusToPublishedEmitsContentPublished(t *testing.T) {
	svc, _, _, rec := newTestService(t)
	created := createDraft(t, svc, nil)

	status := shared.StatusPublished
	updated, err := svc.Update(context.Background(), created.ID, model.UpdateContentRequest{Status: &status})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished())

	names := rec.names()
	require.Len(t, names, 2)
	// crossing into published wins over the plain update event
	assert.Equal(t, events.ContentPublishedName, names[1])
}

func TestArchiveDraftIsRejected(t *testing.T) {
	svc, contents, _, rec := newTestService(t)
	created := createDraft(t, svc, nil)

	_, err := svc.Archive(context.Background(), created.ID)
	require.ErrorIs(t, err, model.ErrInvalidTransition)

	var transitionErr *model.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, shared.StatusDraft, transitionErr.From)
	assert.Equal(t, shared.StatusArchived, transitionErr.To)

	// nothing persisted, nothing emitted beyond the create
	stored, getErr := contents.GetByID(context.Background(), created.ID)
	require.NoError(t, getErr)
	assert.Equal(t, shared.StatusDraft, stored.Status)
	assert.Equal(t, []string{events.ContentCreatedName}, rec.names())
}

func TestPublishMissingContent(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Publish(context.Background(), "nope")
	require.ErrorIs(t, err, model.ErrContentNotFound)
}

func TestDeleteEmitsContentDeleted(t *testing.T) {
	svc, contents, programs, rec := newTestService(t)

	program := programmodel.NewProgram(programmodel.NewProgramParams{
		Title:    "برنامج",
		Type:     shared.ProgramTypePodcastSeries,
		Category: shared.CategoryBusiness,
	})
	require.NoError(t, programs.Save(context.Background(), program))

	created := createDraft(t, svc, &program.ID)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	stored, err := contents.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	names := rec.names()
	require.Len(t, names, 2)
	require.Equal(t, events.ContentDeletedName, names[1])
	ev := rec.events[1].(events.ContentDeleted)
	require.NotNil(t, ev.ProgramID)
	assert.Equal(t, program.ID, *ev.ProgramID)
}
