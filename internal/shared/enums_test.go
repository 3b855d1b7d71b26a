package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionAllowsOnlyLifecycleEdges(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusDraft, StatusPublished}:    true,
		{StatusPublished, StatusArchived}: true,
		{StatusPublished, StatusDraft}:    true,
		{StatusArchived, StatusDraft}:     true,
	}

	statuses := []Status{StatusDraft, StatusPublished, StatusArchived}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]Status{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionRejectsUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(Status("bogus"), StatusPublished))
	assert.False(t, CanTransition(StatusDraft, Status("bogus")))
}

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"defaults", Pagination{}, Pagination{Limit: 20, Offset: 0}},
		{"capped", Pagination{Limit: 500, Offset: 10}, Pagination{Limit: 100, Offset: 10}},
		{"negative offset", Pagination{Limit: 10, Offset: -5}, Pagination{Limit: 10, Offset: 0}},
		{"kept as is", Pagination{Limit: 50, Offset: 40}, Pagination{Limit: 50, Offset: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
