package explanation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a Postgres-backed explanation store.
func NewRepoPG(pool *pgxpool.Pool) Repo { return &repoPG{pool: pool} }

const explanationCols = `term, definition, source, related_terms`

func (r *repoPG) FindByTerm(ctx context.Context, term string) (*Explanation, error) {
	var e Explanation
	err := r.pool.QueryRow(ctx,
		`SELECT `+explanationCols+` FROM explanations WHERE term = $1`, term).
		Scan(&e.Term, &e.Definition, &e.Source, &e.RelatedTerms)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
