package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"catalog-backend/internal/domains/discovery/model"
	programmodel "catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

const programReadColumns = `id, title, description, type, category, language, status, metadata, created_at, updated_at`

type programReader struct {
	pool *pgxpool.Pool
	fts  *FTSProbe
}

func NewProgramReader(pool *pgxpool.Pool, fts *FTSProbe) ProgramReader {
	return &programReader{pool: pool, fts: fts}
}

// Nested contents are restricted to published rows; the write-side
// GetByIDWithContents is the all-statuses variant.
const publishedProgramContentsQuery = `
	SELECT id, title, type, status, published_at
	FROM contents
	WHERE program_id = $1 AND status = 'published'
	ORDER BY published_at DESC NULLS LAST
`

func (r *programReader) GetPublishedByID(ctx context.Context, id string) (*programmodel.Program, error) {
	query := fmt.Sprintf(`SELECT %s FROM programs WHERE id = $1 AND status = 'published'`, programReadColumns)

	p, err := scanReadProgram(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get published program: %w", err)
	}

	rows, err := r.pool.Query(ctx, publishedProgramContentsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get published program contents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c programmodel.ProgramContent
		if err := rows.Scan(&c.ID, &c.Title, &c.Type, &c.Status, &c.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan program content: %w", err)
		}
		p.Contents = append(p.Contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return p, nil
}

func (r *programReader) ListPublished(ctx context.Context, filter programmodel.ProgramFilter, page shared.Pagination) ([]programmodel.Program, int, error) {
	page = page.Normalize()
	b := programListWhere(filter)
	return r.pageQuery(ctx, b, "ORDER BY created_at DESC", page.Limit, page.Offset)
}

func (r *programReader) SearchPrograms(ctx context.Context, params model.SearchParams) ([]programmodel.Program, int, error) {
	b, order := programSearchQuery(params, r.fts.Available(ctx))
	return r.pageQuery(ctx, b, order, params.Limit, params.Offset)
}

func programListWhere(filter programmodel.ProgramFilter) *whereBuilder {
	b := &whereBuilder{}
	b.addStatic("status = 'published'")
	if filter.Type != nil {
		b.add("type = $%d", *filter.Type)
	}
	if filter.Category != nil {
		b.add("category = $%d", *filter.Category)
	}
	if filter.Language != nil {
		b.add("language = $%d", *filter.Language)
	}
	return b
}

// programSearchQuery builds the filter clause and ordering for a program
// search. Pagination is taken from params as given; the unified search
// over-fetches past the public limit clamp, so there is no re-normalize
// here.
func programSearchQuery(params model.SearchParams, fts bool) (*whereBuilder, string) {
	b := &whereBuilder{}
	b.addStatic("status = 'published'")

	rankExpr := "0"
	if params.HasQuery() {
		rankExpr = b.textSearch(*params.Query, fts)
	}
	if len(params.ProgramTypes) > 0 {
		b.add("type = ANY($%d::text[])", pq.Array(toStrings(params.ProgramTypes)))
	}
	if len(params.Categories) > 0 {
		b.add("category = ANY($%d::text[])", pq.Array(toStrings(params.Categories)))
	}
	if params.Language != nil {
		b.add("language = $%d", *params.Language)
	}

	// programs have no publication timestamp of their own
	return b, orderClause(params, rankExpr, "")
}

func (r *programReader) pageQuery(ctx context.Context, b *whereBuilder, order string, limit, offset int) ([]programmodel.Program, int, error) {
	whereClause := b.clause()

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM programs %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count programs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM programs
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, programReadColumns, whereClause, order, len(b.args)+1, len(b.args)+2)
	args := append(b.args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	programs := make([]programmodel.Program, 0, limit)
	for rows.Next() {
		p, err := scanReadProgram(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return programs, total, nil
}

func scanReadProgram(row rowScanner) (*programmodel.Program, error) {
	var p programmodel.Program
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Type, &p.Category, &p.Language,
		&p.Status, &p.Metadata, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
