package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	contentmodel "catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/domains/discovery/model"
	"catalog-backend/internal/shared"
)

const contentReadColumns = `id, program_id, title, description, type, category, language, status, source, external_id, metadata, published_at, created_at, updated_at`

type contentReader struct {
	pool *pgxpool.Pool
	fts  *FTSProbe
}

func NewContentReader(pool *pgxpool.Pool, fts *FTSProbe) ContentReader {
	return &contentReader{pool: pool, fts: fts}
}

func (r *contentReader) GetPublishedByID(ctx context.Context, id string) (*contentmodel.Content, error) {
	query := `
		SELECT c.id, c.program_id, c.title, c.description, c.type, c.category, c.language,
		       c.status, c.source, c.external_id, c.metadata, c.published_at, c.created_at, c.updated_at,
		       p.title
		FROM contents c
		LEFT JOIN programs p ON c.program_id = p.id
		WHERE c.id = $1 AND c.status = 'published'
	`

	var c contentmodel.Content
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ProgramID, &c.Title, &c.Description, &c.Type, &c.Category, &c.Language,
		&c.Status, &c.Source, &c.ExternalID, &c.Metadata, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.ProgramTitle,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get published content: %w", err)
	}
	return &c, nil
}

func (r *contentReader) ListPublished(ctx context.Context, filter contentmodel.ContentFilter, page shared.Pagination) ([]contentmodel.Content, int, error) {
	page = page.Normalize()
	b := contentListWhere(filter)
	return r.pageQuery(ctx, b, "ORDER BY created_at DESC", page.Limit, page.Offset)
}

func contentListWhere(filter contentmodel.ContentFilter) *whereBuilder {
	b := &whereBuilder{}
	b.addStatic("status = 'published'")
	if filter.ProgramID != nil {
		b.add("program_id = $%d", *filter.ProgramID)
	}
	if filter.Type != nil {
		b.add("type = $%d", *filter.Type)
	}
	if filter.Category != nil {
		b.add("category = $%d", *filter.Category)
	}
	if filter.Language != nil {
		b.add("language = $%d", *filter.Language)
	}
	if filter.Source != nil {
		b.add("source = $%d", *filter.Source)
	}
	return b
}

func (r *contentReader) ListPublishedByProgram(ctx context.Context, programID string, page shared.Pagination) ([]contentmodel.Content, int, error) {
	page = page.Normalize()

	b := &whereBuilder{}
	b.addStatic("status = 'published'")
	b.add("program_id = $%d", programID)

	return r.pageQuery(ctx, b, "ORDER BY published_at DESC NULLS LAST", page.Limit, page.Offset)
}

func (r *contentReader) SearchContents(ctx context.Context, params model.SearchParams) ([]contentmodel.Content, int, error) {
	b, order := contentSearchQuery(params, r.fts.Available(ctx))
	return r.pageQuery(ctx, b, order, params.Limit, params.Offset)
}

// contentSearchQuery builds the filter clause and ordering for a content
// search. Pagination is taken from params as given; the unified search
// over-fetches past the public limit clamp, so there is no re-normalize
// here.
func contentSearchQuery(params model.SearchParams, fts bool) (*whereBuilder, string) {
	b := &whereBuilder{}
	b.addStatic("status = 'published'")

	rankExpr := "0"
	if params.HasQuery() {
		rankExpr = b.textSearch(*params.Query, fts)
	}
	if len(params.ContentTypes) > 0 {
		b.add("type = ANY($%d::text[])", pq.Array(toStrings(params.ContentTypes)))
	}
	if len(params.Categories) > 0 {
		b.add("category = ANY($%d::text[])", pq.Array(toStrings(params.Categories)))
	}
	if params.Language != nil {
		b.add("language = $%d", *params.Language)
	}

	return b, orderClause(params, rankExpr, "published_at")
}

func (r *contentReader) pageQuery(ctx context.Context, b *whereBuilder, order string, limit, offset int) ([]contentmodel.Content, int, error) {
	whereClause := b.clause()

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM contents %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contents: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM contents
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, contentReadColumns, whereClause, order, len(b.args)+1, len(b.args)+2)
	args := append(b.args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	contents := make([]contentmodel.Content, 0, limit)
	for rows.Next() {
		var c contentmodel.Content
		err := rows.Scan(
			&c.ID, &c.ProgramID, &c.Title, &c.Description, &c.Type, &c.Category, &c.Language,
			&c.Status, &c.Source, &c.ExternalID, &c.Metadata, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return contents, total, nil
}
