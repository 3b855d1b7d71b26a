package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/events"
)

// fakeCache is an in-memory stand-in for Redis. Patterns are prefix globs,
// which is all the cache service uses.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	deleted := false
	for _, key := range keys {
		if _, ok := c.data[key]; ok {
			delete(c.data, key)
			deleted = true
		}
	}
	return deleted, nil
}

func (c *fakeCache) DeletePattern(_ context.Context, pattern string) (int, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
			count++
		}
	}
	return count, nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func (c *fakeCache) Ping(context.Context) error { return nil }

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func TestSearchKeyIgnoresInsertionOrder(t *testing.T) {
	s := NewCacheService(newFakeCache())

	a := map[string]any{}
	a["q"] = "تقنية"
	a["language"] = "ar"
	a["limit"] = 20

	b := map[string]any{}
	b["limit"] = 20
	b["language"] = "ar"
	b["q"] = "تقنية"

	assert.Equal(t, s.SearchKey(a), s.SearchKey(b))
}

func TestSearchKeyDistinguishesFilters(t *testing.T) {
	s := NewCacheService(newFakeCache())

	a := s.SearchKey(map[string]any{"q": "تقنية", "limit": 20})
	b := s.SearchKey(map[string]any{"q": "ثقافة", "limit": 20})

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "discovery:search:"))
}

func TestContentPublishedInvalidatesTargetedKeys(t *testing.T) {
	cache := newFakeCache()
	s := NewCacheService(cache)
	bus := events.NewBus()
	s.RegisterInvalidation(bus)

	ctx := context.Background()
	programID := "P"
	require.NoError(t, cache.Set(ctx, s.ContentKey("X"), "cached-x", time.Hour))
	require.NoError(t, cache.Set(ctx, s.ContentKey("Y"), "cached-y", time.Hour))
	require.NoError(t, cache.Set(ctx, s.ProgramContentsKey("P"), "cached-p", time.Hour))

	bus.Publish(events.NewContentPublished(
		"X", &programID, "t", nil,
		shared.ContentTypePodcastEpisode, shared.CategoryBusiness, "ar", nil, time.Now(),
	))

	require.Eventually(t, func() bool {
		return !cache.has(s.ContentKey("X")) && !cache.has(s.ProgramContentsKey("P"))
	}, time.Second, 5*time.Millisecond)

	// the unrelated entity survives
	assert.True(t, cache.has(s.ContentKey("Y")))
}

func TestProgramUpdatedInvalidatesAggregates(t *testing.T) {
	cache := newFakeCache()
	s := NewCacheService(cache)
	bus := events.NewBus()
	s.RegisterInvalidation(bus)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, s.ProgramKey("P"), "cached", time.Hour))
	require.NoError(t, cache.Set(ctx, s.ProgramListKey(map[string]any{"limit": 20}), "cached", time.Hour))
	require.NoError(t, cache.Set(ctx, s.SearchKey(map[string]any{"q": "x"}), "cached", time.Hour))
	require.NoError(t, cache.Set(ctx, s.ContentKey("C"), "cached", time.Hour))

	bus.Publish(events.NewProgramUpdated("P", []string{"title"}))

	require.Eventually(t, func() bool {
		return !cache.has(s.ProgramKey("P")) &&
			!cache.has(s.ProgramListKey(map[string]any{"limit": 20})) &&
			!cache.has(s.SearchKey(map[string]any{"q": "x"}))
	}, time.Second, 5*time.Millisecond)

	assert.True(t, cache.has(s.ContentKey("C")))
}

func TestProgramDeletedInvalidatesRelation(t *testing.T) {
	cache := newFakeCache()
	s := NewCacheService(cache)
	bus := events.NewBus()
	s.RegisterInvalidation(bus)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, s.ProgramKey("P"), "cached", time.Hour))
	require.NoError(t, cache.Set(ctx, s.ProgramContentsKey("P"), "cached", time.Hour))

	bus.Publish(events.NewProgramDeleted("P"))

	require.Eventually(t, func() bool {
		return !cache.has(s.ProgramKey("P")) && !cache.has(s.ProgramContentsKey("P"))
	}, time.Second, 5*time.Millisecond)
}
