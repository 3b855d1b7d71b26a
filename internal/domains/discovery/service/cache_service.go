package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"catalog-backend/internal/shared/events"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/logger"
)

// Key namespaces for the discovery read path. Entity keys are invalidated
// surgically; list and search keys only by pattern, so they carry shorter
// TTLs as a staleness bound.
const (
	programKeyPrefix         = "discovery:program:"
	contentKeyPrefix         = "discovery:content:"
	programContentsKeyPrefix = "discovery:program_contents:"
	searchKeyPrefix          = "discovery:search:"
	programListKeyPrefix     = "discovery:programs:"
	contentListKeyPrefix     = "discovery:contents:"
)

const (
	EntityTTL = time.Hour
	ListTTL   = 5 * time.Minute
	SearchTTL = 3 * time.Minute
)

// CacheService owns the discovery cache keyspace: key derivation,
// best-effort read/write and event-driven invalidation. Every cache failure
// is logged and swallowed; the read path falls through to Postgres.
type CacheService struct {
	cache cache.Cache
}

func NewCacheService(c cache.Cache) *CacheService {
	return &CacheService{cache: c}
}

func (s *CacheService) ProgramKey(id string) string { return programKeyPrefix + id }

func (s *CacheService) ContentKey(id string) string { return contentKeyPrefix + id }

func (s *CacheService) ProgramContentsKey(programID string) string {
	return programContentsKeyPrefix + programID
}

func (s *CacheService) SearchKey(fields map[string]any) string {
	return searchKeyPrefix + encodeFields(fields)
}

func (s *CacheService) ProgramListKey(fields map[string]any) string {
	return programListKeyPrefix + encodeFields(fields)
}

func (s *CacheService) ContentListKey(fields map[string]any) string {
	return contentListKeyPrefix + encodeFields(fields)
}

// encodeFields derives a deterministic key suffix from a filter map. Maps
// marshal with lexicographically sorted keys, so two logically-equal
// queries produce the same key regardless of insertion order. Callers drop
// nil and empty fields before passing the map in.
func encodeFields(fields map[string]any) string {
	raw, err := json.Marshal(fields)
	if err != nil {
		// map[string]any of plain values cannot fail to marshal; keep a
		// readable fallback anyway
		return fmt.Sprintf("%v", fields)
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Get probes the cache. Any error counts as a miss.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("[Discovery] cache get failed, falling through", err)
		return false
	}
	return found
}

// Set stores the value best-effort.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("[Discovery] cache set failed", err)
	}
}

// RegisterInvalidation subscribes the invalidation rules to the bus. The
// handlers run async relative to the write path.
func (s *CacheService) RegisterInvalidation(bus *events.Bus) {
	bus.Subscribe(events.ProgramCreatedName, func(events.Event) {
		s.invalidateProgramAggregates(context.Background())
	})
	bus.Subscribe(events.ProgramUpdatedName, func(e events.Event) {
		if ev, ok := e.(events.ProgramUpdated); ok {
			s.delete(context.Background(), s.ProgramKey(ev.ProgramID))
			s.invalidateProgramAggregates(context.Background())
		}
	})
	bus.Subscribe(events.ProgramDeletedName, func(e events.Event) {
		if ev, ok := e.(events.ProgramDeleted); ok {
			s.delete(context.Background(), s.ProgramKey(ev.ProgramID), s.ProgramContentsKey(ev.ProgramID))
			s.invalidateProgramAggregates(context.Background())
		}
	})

	bus.Subscribe(events.ContentCreatedName, func(e events.Event) {
		if ev, ok := e.(events.ContentCreated); ok {
			s.invalidateContentAggregates(context.Background(), ev.ProgramID)
		}
	})
	onContentChanged := func(contentID string, programID *string) {
		ctx := context.Background()
		s.delete(ctx, s.ContentKey(contentID))
		s.invalidateContentAggregates(ctx, programID)
	}
	bus.Subscribe(events.ContentUpdatedName, func(e events.Event) {
		if ev, ok := e.(events.ContentUpdated); ok {
			onContentChanged(ev.ContentID, ev.ProgramID)
		}
	})
	bus.Subscribe(events.ContentPublishedName, func(e events.Event) {
		if ev, ok := e.(events.ContentPublished); ok {
			onContentChanged(ev.ContentID, ev.ProgramID)
		}
	})
	bus.Subscribe(events.ContentArchivedName, func(e events.Event) {
		if ev, ok := e.(events.ContentArchived); ok {
			onContentChanged(ev.ContentID, ev.ProgramID)
		}
	})
	bus.Subscribe(events.ContentDeletedName, func(e events.Event) {
		if ev, ok := e.(events.ContentDeleted); ok {
			onContentChanged(ev.ContentID, ev.ProgramID)
		}
	})
}

// invalidateProgramAggregates drops every cached program list and search
// result. Membership of the changed program in any cached aggregate cannot
// be determined without re-running the query, so the whole namespace goes.
func (s *CacheService) invalidateProgramAggregates(ctx context.Context) {
	s.deletePattern(ctx, programListKeyPrefix+"*")
	s.deletePattern(ctx, searchKeyPrefix+"*")
}

func (s *CacheService) invalidateContentAggregates(ctx context.Context, programID *string) {
	s.deletePattern(ctx, contentListKeyPrefix+"*")
	s.deletePattern(ctx, searchKeyPrefix+"*")
	if programID != nil {
		s.delete(ctx, s.ProgramContentsKey(*programID))
	}
}

func (s *CacheService) delete(ctx context.Context, keys ...string) {
	if _, err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("[Discovery] cache delete failed", err)
	}
}

func (s *CacheService) deletePattern(ctx context.Context, pattern string) {
	if _, err := s.cache.DeletePattern(ctx, pattern); err != nil {
		logger.Warn("[Discovery] cache pattern delete failed", err)
	}
}
