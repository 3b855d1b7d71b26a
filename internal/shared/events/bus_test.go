package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusSyncSubscriberReceivesEvent(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.SubscribeSync(ProgramCreatedName, func(e Event) {
		got = append(got, e)
	})

	bus.Publish(NewProgramCreated("p1", "Tech Talk"))

	require.Len(t, got, 1)
	created, ok := got[0].(ProgramCreated)
	require.True(t, ok)
	assert.Equal(t, "p1", created.ProgramID)
	assert.Equal(t, "Tech Talk", created.Title)
	assert.WithinDuration(t, time.Now(), created.OccurredAt(), time.Second)
}

func TestBusMultipleSubscribersAllInvoked(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	calls := 0
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		bus.Subscribe(ContentDeletedName, func(Event) {
			mu.Lock()
			calls++
			mu.Unlock()
			wg.Done()
		})
	}

	bus.Publish(NewContentDeleted("c1", nil))
	wg.Wait()

	assert.Equal(t, 2, calls)
}

func TestBusIgnoresEventsWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(NewProgramDeleted("p1"))
	})
}

func TestBusPublishAllPreservesOrderForSyncSubscribers(t *testing.T) {
	bus := NewBus()

	var names []string
	record := func(e Event) { names = append(names, e.EventName()) }
	bus.SubscribeSync(ProgramCreatedName, record)
	bus.SubscribeSync(ContentCreatedName, record)

	pid := "p1"
	bus.PublishAll([]Event{
		NewProgramCreated(pid, "Imported from youtube"),
		NewContentCreated("c1", &pid, "Episode 1", "podcast_episode", "entertainment", "ar"),
	})

	assert.Equal(t, []string{ProgramCreatedName, ContentCreatedName}, names)
}

func TestBusRecoversPanickingHandler(t *testing.T) {
	bus := NewBus()

	var after bool
	bus.SubscribeSync(ProgramUpdatedName, func(Event) { panic("boom") })
	bus.SubscribeSync(ProgramUpdatedName, func(Event) { after = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewProgramUpdated("p1", []string{"title"}))
	})
	assert.True(t, after, "subscriber after the panicking one must still run")
}
