package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	contentmodel "catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/domains/discovery/model"
	"catalog-backend/internal/domains/discovery/repository"
	programmodel "catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

// Relevance boost of the unified merge. Programs are deemed higher-value
// result units than individual contents.
const (
	programScore = 1.0
	contentScore = 0.9
)

type discoveryService struct {
	programs repository.ProgramReader
	contents repository.ContentReader
	cache    *CacheService
}

func NewService(programs repository.ProgramReader, contents repository.ContentReader, cache *CacheService) Service {
	return &discoveryService{programs: programs, contents: contents, cache: cache}
}

func (s *discoveryService) GetProgram(ctx context.Context, id string) (*programmodel.Program, error) {
	key := s.cache.ProgramKey(id)

	var cached programmodel.Program
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	program, err := s.programs.GetPublishedByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, programmodel.ErrProgramNotFound
	}

	s.cache.Set(ctx, key, program, EntityTTL)
	return program, nil
}

func (s *discoveryService) ListPrograms(ctx context.Context, filter programmodel.ProgramFilter, page shared.Pagination) (*shared.Paginated[programmodel.Program], error) {
	page = page.Normalize()
	key := s.cache.ProgramListKey(programListFields(filter, page))

	var cached shared.Paginated[programmodel.Program]
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	items, total, err := s.programs.ListPublished(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list published programs: %w", err)
	}

	result := &shared.Paginated[programmodel.Program]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}
	s.cache.Set(ctx, key, result, ListTTL)
	return result, nil
}

func (s *discoveryService) GetContent(ctx context.Context, id string) (*contentmodel.Content, error) {
	key := s.cache.ContentKey(id)

	var cached contentmodel.Content
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	content, err := s.contents.GetPublishedByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, contentmodel.ErrContentNotFound
	}

	s.cache.Set(ctx, key, content, EntityTTL)
	return content, nil
}

func (s *discoveryService) ListContents(ctx context.Context, filter contentmodel.ContentFilter, page shared.Pagination) (*shared.Paginated[contentmodel.Content], error) {
	page = page.Normalize()
	key := s.cache.ContentListKey(contentListFields(filter, page))

	var cached shared.Paginated[contentmodel.Content]
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	items, total, err := s.contents.ListPublished(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list published contents: %w", err)
	}

	result := &shared.Paginated[contentmodel.Content]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}
	s.cache.Set(ctx, key, result, ListTTL)
	return result, nil
}

func (s *discoveryService) ProgramContents(ctx context.Context, programID string, page shared.Pagination) (*shared.Paginated[contentmodel.Content], error) {
	page = page.Normalize()

	// the relation key carries no pagination, so only the default first
	// page is cached; deeper pages always hit the database
	cacheable := page.Limit == shared.DefaultLimit && page.Offset == 0
	key := s.cache.ProgramContentsKey(programID)

	if cacheable {
		var cached shared.Paginated[contentmodel.Content]
		if s.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	items, total, err := s.contents.ListPublishedByProgram(ctx, programID, page)
	if err != nil {
		return nil, fmt.Errorf("list program contents: %w", err)
	}

	result := &shared.Paginated[contentmodel.Content]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}
	if cacheable {
		s.cache.Set(ctx, key, result, ListTTL)
	}
	return result, nil
}

// Search over-fetches both entity types at twice the requested limit from
// offset zero, boosts programs over contents, and slices the caller's
// window over the concatenation. Total is the sum of both per-entity totals
// and can exceed what the merged pagination can reach; clients treat it as
// an upper bound.
func (s *discoveryService) Search(ctx context.Context, params model.SearchParams) (*model.SearchResult, error) {
	params = params.Normalize()
	key := s.cache.SearchKey(params.CacheFields())

	var cached model.SearchResult
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	overFetch := params
	overFetch.Limit = 2 * params.Limit
	overFetch.Offset = 0

	var (
		programs     []programmodel.Program
		programTotal int
		contents     []contentmodel.Content
		contentTotal int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		programs, programTotal, err = s.programs.SearchPrograms(gctx, overFetch)
		return err
	})
	g.Go(func() error {
		var err error
		contents, contentTotal, err = s.contents.SearchContents(gctx, overFetch)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("unified search: %w", err)
	}

	items := make([]model.SearchItem, 0, len(programs)+len(contents))
	for i := range programs {
		items = append(items, model.SearchItem{Program: &programs[i], Score: programScore})
	}
	for i := range contents {
		items = append(items, model.SearchItem{Content: &contents[i], Score: contentScore})
	}

	start := min(params.Offset, len(items))
	end := min(start+params.Limit, len(items))

	result := &model.SearchResult{
		Items:  items[start:end],
		Total:  programTotal + contentTotal,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	s.cache.Set(ctx, key, result, SearchTTL)
	return result, nil
}

func (s *discoveryService) SearchPrograms(ctx context.Context, params model.SearchParams) (*shared.Paginated[programmodel.Program], error) {
	params = params.Normalize()

	fields := params.CacheFields()
	fields["entity"] = "programs"
	key := s.cache.SearchKey(fields)

	var cached shared.Paginated[programmodel.Program]
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	items, total, err := s.programs.SearchPrograms(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search programs: %w", err)
	}

	result := &shared.Paginated[programmodel.Program]{Items: items, Total: total, Limit: params.Limit, Offset: params.Offset}
	s.cache.Set(ctx, key, result, SearchTTL)
	return result, nil
}

func (s *discoveryService) SearchContents(ctx context.Context, params model.SearchParams) (*shared.Paginated[contentmodel.Content], error) {
	params = params.Normalize()

	fields := params.CacheFields()
	fields["entity"] = "contents"
	key := s.cache.SearchKey(fields)

	var cached shared.Paginated[contentmodel.Content]
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	items, total, err := s.contents.SearchContents(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search contents: %w", err)
	}

	result := &shared.Paginated[contentmodel.Content]{Items: items, Total: total, Limit: params.Limit, Offset: params.Offset}
	s.cache.Set(ctx, key, result, SearchTTL)
	return result, nil
}

func programListFields(filter programmodel.ProgramFilter, page shared.Pagination) map[string]any {
	fields := map[string]any{"limit": page.Limit, "offset": page.Offset}
	if filter.Type != nil {
		fields["type"] = *filter.Type
	}
	if filter.Category != nil {
		fields["category"] = *filter.Category
	}
	if filter.Language != nil {
		fields["language"] = *filter.Language
	}
	return fields
}

func contentListFields(filter contentmodel.ContentFilter, page shared.Pagination) map[string]any {
	fields := map[string]any{"limit": page.Limit, "offset": page.Offset}
	if filter.ProgramID != nil {
		fields["programId"] = *filter.ProgramID
	}
	if filter.Type != nil {
		fields["type"] = *filter.Type
	}
	if filter.Category != nil {
		fields["category"] = *filter.Category
	}
	if filter.Language != nil {
		fields["language"] = *filter.Language
	}
	if filter.Source != nil {
		fields["source"] = *filter.Source
	}
	return fields
}
