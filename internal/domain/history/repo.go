package history

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores diagnosis records. Lookups return nil without error
// when no record matches. Listings are ordered newest first.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	ListByUser(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*Record, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Count(ctx context.Context) (int, error)

	// SymptomsByUser returns every symptom across the user's records,
	// one entry per occurrence.
	SymptomsByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}
