package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/discovery/model"
	"catalog-backend/pkg/logger"
)

// FTSProbe checks once per process whether the generated search_vector
// columns exist. When they do not (older schema, stripped-down test
// database) the readers fall back to ILIKE matching with zero rank.
type FTSProbe struct {
	pool *pgxpool.Pool

	once      sync.Once
	available bool
}

func NewFTSProbe(pool *pgxpool.Pool) *FTSProbe {
	return &FTSProbe{pool: pool}
}

func (p *FTSProbe) Available(ctx context.Context) bool {
	p.once.Do(func() {
		const query = `
			SELECT COUNT(*)
			FROM information_schema.columns
			WHERE table_name IN ('programs', 'contents') AND column_name = 'search_vector'
		`
		var n int
		if err := p.pool.QueryRow(ctx, query).Scan(&n); err != nil {
			logger.Warn("[Discovery] search_vector probe failed, using ILIKE fallback", err)
			return
		}
		p.available = n == 2
	})
	return p.available
}

// whereBuilder accumulates numbered conditions the way the write-side
// repositories build filters.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

// add appends a condition whose %d verb receives the next arg number.
func (b *whereBuilder) add(cond string, values ...interface{}) {
	nums := make([]interface{}, 0, len(values))
	for _, v := range values {
		b.args = append(b.args, v)
		nums = append(nums, len(b.args))
	}
	b.conditions = append(b.conditions, fmt.Sprintf(cond, nums...))
}

// addStatic appends a condition with no bound argument.
func (b *whereBuilder) addStatic(cond string) {
	b.conditions = append(b.conditions, cond)
}

func (b *whereBuilder) clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	where := "WHERE " + b.conditions[0]
	for _, c := range b.conditions[1:] {
		where += " AND " + c
	}
	return where
}

// textSearch appends the text constraint and returns the rank expression to
// order by. With FTS available the query is matched against the generated
// vector and ranked; otherwise title/description substring matching with a
// constant zero rank.
func (b *whereBuilder) textSearch(query string, fts bool) string {
	if fts {
		b.add("search_vector @@ websearch_to_tsquery('simple', $%d)", query)
		return fmt.Sprintf("ts_rank_cd(search_vector, websearch_to_tsquery('simple', $%d))", len(b.args))
	}
	pattern := "%" + query + "%"
	b.add("(title ILIKE $%d OR description ILIKE $%d)", pattern, pattern)
	return "0"
}

// orderClause maps the requested sort onto SQL. publishedAtColumn is empty
// for tables without a publication timestamp; those sort by created_at
// instead. Relevance ignores the direction and ranks descending; without a
// text query it degrades to newest first.
func orderClause(params model.SearchParams, rankExpr, publishedAtColumn string) string {
	dir := "DESC"
	if params.SortOrder == model.SortAsc {
		dir = "ASC"
	}

	switch params.SortBy {
	case model.SortByTitle:
		return fmt.Sprintf("ORDER BY title %s", dir)
	case model.SortByCreatedAt:
		return fmt.Sprintf("ORDER BY created_at %s", dir)
	case model.SortByPublishedAt:
		if publishedAtColumn == "" {
			return fmt.Sprintf("ORDER BY created_at %s", dir)
		}
		return fmt.Sprintf("ORDER BY %s %s NULLS LAST", publishedAtColumn, dir)
	default: // relevance
		if params.HasQuery() && rankExpr != "0" {
			return fmt.Sprintf("ORDER BY %s DESC", rankExpr)
		}
		return "ORDER BY created_at DESC"
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
