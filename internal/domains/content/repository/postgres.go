package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/content/model"
	"catalog-backend/internal/shared"
)

const contentColumns = `id, program_id, title, description, type, category, language, status, source, external_id, metadata, published_at, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Save(ctx context.Context, c *model.Content) error {
	query := `
		INSERT INTO contents (id, program_id, title, description, type, category, language, status, source, external_id, metadata, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			program_id = EXCLUDED.program_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			category = EXCLUDED.category,
			language = EXCLUDED.language,
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			external_id = EXCLUDED.external_id,
			metadata = EXCLUDED.metadata,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.ProgramID, c.Title, c.Description, c.Type, c.Category, c.Language,
		c.Status, c.Source, c.ExternalID, c.Metadata, c.PublishedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save content: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Content, error) {
	query := fmt.Sprintf(`SELECT %s FROM contents WHERE id = $1`, contentColumns)

	c, err := scanContent(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) GetByIDWithProgram(ctx context.Context, id string) (*model.Content, error) {
	query := `
		SELECT c.id, c.program_id, c.title, c.description, c.type, c.category, c.language,
		       c.status, c.source, c.external_id, c.metadata, c.published_at, c.created_at, c.updated_at,
		       p.title
		FROM contents c
		LEFT JOIN programs p ON c.program_id = p.id
		WHERE c.id = $1
	`

	var c model.Content
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ProgramID, &c.Title, &c.Description, &c.Type, &c.Category, &c.Language,
		&c.Status, &c.Source, &c.ExternalID, &c.Metadata, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.ProgramTitle,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content with program: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) GetByExternalID(ctx context.Context, source shared.Source, externalID string) (*model.Content, error) {
	query := fmt.Sprintf(`SELECT %s FROM contents WHERE source = $1 AND external_id = $2`, contentColumns)

	c, err := scanContent(r.pool.QueryRow(ctx, query, source, externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content by external id: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete content: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ContentFilter, page shared.Pagination) ([]model.Content, int, error) {
	page = page.Normalize()
	whereClause, args := buildContentWhere(filter)

	total, err := r.count(ctx, whereClause, args)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM contents
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, contentColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contents: %w", err)
	}
	defer rows.Close()

	contents := make([]model.Content, 0, page.Limit)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return contents, total, nil
}

func (r *postgresRepository) Count(ctx context.Context, filter model.ContentFilter) (int, error) {
	whereClause, args := buildContentWhere(filter)
	return r.count(ctx, whereClause, args)
}

func (r *postgresRepository) count(ctx context.Context, whereClause string, args []interface{}) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM contents %s`, whereClause)

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count contents: %w", err)
	}
	return total, nil
}

func buildContentWhere(filter model.ContentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(cond string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.ProgramID != nil {
		add("program_id = $%d", *filter.ProgramID)
	}
	if filter.Type != nil {
		add("type = $%d", *filter.Type)
	}
	if filter.Category != nil {
		add("category = $%d", *filter.Category)
	}
	if filter.Language != nil {
		add("language = $%d", *filter.Language)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.Source != nil {
		add("source = $%d", *filter.Source)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	where := "WHERE " + conditions[0]
	for _, c := range conditions[1:] {
		where += " AND " + c
	}
	return where, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (*model.Content, error) {
	var c model.Content
	err := row.Scan(
		&c.ID, &c.ProgramID, &c.Title, &c.Description, &c.Type, &c.Category, &c.Language,
		&c.Status, &c.Source, &c.ExternalID, &c.Metadata, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
