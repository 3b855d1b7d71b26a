package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/events"
)

type memRepo struct {
	byID map[string]*model.Program
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[string]*model.Program)}
}

func (r *memRepo) Save(_ context.Context, p *model.Program) error {
	stored := *p
	r.byID[p.ID] = &stored
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*model.Program, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *memRepo) GetByIDWithContents(ctx context.Context, id string) (*model.Program, error) {
	return r.GetByID(ctx, id)
}

func (r *memRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *memRepo) List(_ context.Context, _ model.ProgramFilter, page shared.Pagination) ([]model.Program, int, error) {
	items := make([]model.Program, 0, len(r.byID))
	for _, p := range r.byID {
		items = append(items, *p)
	}
	return items, len(items), nil
}

func (r *memRepo) Count(_ context.Context, _ model.ProgramFilter) (int, error) {
	return len(r.byID), nil
}

func newTestProgramService(t *testing.T) (Service, *memRepo, *[]events.Event) {
	t.Helper()
	repo := newMemRepo()
	bus := events.NewBus()
	var got []events.Event
	for _, name := range []string{events.ProgramCreatedName, events.ProgramUpdatedName, events.ProgramDeletedName} {
		bus.SubscribeSync(name, func(e events.Event) {
			got = append(got, e)
		})
	}
	return NewService(repo, bus), repo, &got
}

func createProgram(t *testing.T, svc Service) *model.Program {
	t.Helper()
	p, err := svc.Create(context.Background(), model.CreateProgramRequest{
		Title:    "فنجان",
		Type:     shared.ProgramTypePodcastSeries,
		Category: shared.CategoryCulture,
	})
	require.NoError(t, err)
	return p
}

func TestProgramCreateEmitsEvent(t *testing.T) {
	svc, repo, got := newTestProgramService(t)

	p := createProgram(t, svc)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, shared.StatusDraft, stored.Status)

	require.Len(t, *got, 1)
	ev := (*got)[0].(events.ProgramCreated)
	assert.Equal(t, p.ID, ev.ProgramID)
	assert.Equal(t, "فنجان", ev.Title)
}

func TestProgramUpdateWithStatusTransition(t *testing.T) {
	svc, repo, got := newTestProgramService(t)
	p := createProgram(t, svc)

	newTitle := "فنجان جديد"
	status := shared.StatusPublished
	updated, err := svc.Update(context.Background(), p.ID, model.UpdateProgramRequest{
		Title:  &newTitle,
		Status: &status,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished())
	assert.Equal(t, "فنجان جديد", updated.Title)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusPublished, stored.Status)

	require.Len(t, *got, 2)
	ev := (*got)[1].(events.ProgramUpdated)
	assert.ElementsMatch(t, []string{"title", "status"}, ev.UpdatedFields)
}

func TestProgramUpdateRejectsInvalidTransition(t *testing.T) {
	svc, repo, got := newTestProgramService(t)
	p := createProgram(t, svc)

	status := shared.StatusArchived
	_, err := svc.Update(context.Background(), p.ID, model.UpdateProgramRequest{Status: &status})
	require.ErrorIs(t, err, model.ErrInvalidTransition)

	stored, getErr := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, getErr)
	assert.Equal(t, shared.StatusDraft, stored.Status)
	assert.Len(t, *got, 1)
}

func TestProgramUpdateWithoutChangesEmitsNothing(t *testing.T) {
	svc, _, got := newTestProgramService(t)
	p := createProgram(t, svc)

	_, err := svc.Update(context.Background(), p.ID, model.UpdateProgramRequest{})
	require.NoError(t, err)

	assert.Len(t, *got, 1) // only the create event
}

func TestProgramPublishAndArchive(t *testing.T) {
	svc, _, got := newTestProgramService(t)
	p := createProgram(t, svc)

	published, err := svc.Publish(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusPublished, published.Status)

	archived, err := svc.Archive(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusArchived, archived.Status)

	require.Len(t, *got, 3)
	for _, e := range (*got)[1:] {
		ev := e.(events.ProgramUpdated)
		assert.Equal(t, []string{"status"}, ev.UpdatedFields)
	}
}

func TestProgramDelete(t *testing.T) {
	svc, repo, got := newTestProgramService(t)
	p := createProgram(t, svc)

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.Len(t, *got, 2)
	ev := (*got)[1].(events.ProgramDeleted)
	assert.Equal(t, p.ID, ev.ProgramID)
}

func TestProgramGetMissing(t *testing.T) {
	svc, _, _ := newTestProgramService(t)

	_, err := svc.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, model.ErrProgramNotFound)
}
