package explanation

import "context"

// Repo looks up curated explanations. A nil result with nil error means
// the term is not in the store.
type Repo interface {
	FindByTerm(ctx context.Context, term string) (*Explanation, error)
}
