package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/program/model"
	"catalog-backend/internal/shared"
)

const programColumns = `id, title, description, type, category, language, status, metadata, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Save(ctx context.Context, p *model.Program) error {
	query := `
		INSERT INTO programs (id, title, description, type, category, language, status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			category = EXCLUDED.category,
			language = EXCLUDED.language,
			status = EXCLUDED.status,
			metadata = EXCLUDED.metadata,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Type, p.Category, p.Language, p.Status, p.Metadata, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save program: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Program, error) {
	query := fmt.Sprintf(`SELECT %s FROM programs WHERE id = $1`, programColumns)

	p, err := scanProgram(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return p, nil
}

// GetByIDWithContents returns the program with every content row attached,
// draft and archived included. The discovery reader has the published-only
// variant.
func (r *postgresRepository) GetByIDWithContents(ctx context.Context, id string) (*model.Program, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	query := `
		SELECT id, title, type, status, published_at
		FROM contents
		WHERE program_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get program contents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.ProgramContent
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

func (r *postgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	// contents carry ON DELETE CASCADE on program_id
	tag, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete program: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ProgramFilter, page shared.Pagination) ([]model.Program, int, error) {
	page = page.Normalize()
	whereClause, args := buildProgramWhere(filter)

	total, err := r.count(ctx, whereClause, args)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM programs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, programColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	programs := make([]model.Program, 0, page.Limit)
	for rows.Next() {
		p, err := scanProgram(rows)
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

func (r *postgresRepository) Count(ctx context.Context, filter model.ProgramFilter) (int, error) {
	whereClause, args := buildProgramWhere(filter)
	return r.count(ctx, whereClause, args)
}

func (r *postgresRepository) count(ctx context.Context, whereClause string, args []interface{}) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM programs %s`, whereClause)

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count programs: %w", err)
	}
	return total, nil
}

// buildProgramWhere builds the WHERE clause with numbered args from the
// non-nil filter fields.
func buildProgramWhere(filter model.ProgramFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(cond string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
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

func scanProgram(row rowScanner) (*model.Program, error) {
	var p model.Program
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Type, &p.Category,
		&p.Language, &p.Status, &p.Metadata, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
