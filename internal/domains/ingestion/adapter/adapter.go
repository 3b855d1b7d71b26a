package adapter

import (
	"context"
	"sort"

	"catalog-backend/internal/domains/ingestion/model"
	"catalog-backend/internal/shared"
)

// FetchOptions narrows what a source adapter pulls from a channel.
type FetchOptions struct {
	// MaxResults caps the number of returned items. Zero means the
	// adapter's own default.
	MaxResults int
}

// SourceAdapter pulls items from one external source. Implementations are
// stateless and safe for concurrent use.
type SourceAdapter interface {
	Source() shared.Source
	Fetch(ctx context.Context, channelID string, opts FetchOptions) ([]model.ExternalItem, error)
}

// ChannelInfoProvider is implemented by adapters that can describe a
// channel, so an import without a target program can create one.
type ChannelInfoProvider interface {
	ChannelInfo(ctx context.Context, channelID string) (*model.ChannelInfo, error)
}

// Registry resolves adapters by source. Built once at startup, read-only
// afterwards.
type Registry struct {
	adapters map[shared.Source]SourceAdapter
}

func NewRegistry(adapters ...SourceAdapter) *Registry {
	m := make(map[shared.Source]SourceAdapter, len(adapters))
	for _, a := range adapters {
		m[a.Source()] = a
	}
	return &Registry{adapters: m}
}

// Get returns nil when no adapter is registered for the source.
func (r *Registry) Get(source shared.Source) SourceAdapter {
	return r.adapters[source]
}

// Sources lists the registered sources in stable order.
func (r *Registry) Sources() []shared.Source {
	out := make([]shared.Source, 0, len(r.adapters))
	for s := range r.adapters {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
