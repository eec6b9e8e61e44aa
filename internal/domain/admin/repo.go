package admin

import (
	"context"

	"github.com/google/uuid"
)

// DiseaseRepository stores the disease catalog. Lookups return nil without
// error when no row matches.
type DiseaseRepository interface {
	Create(ctx context.Context, d *Disease) error
	GetByID(ctx context.Context, id uuid.UUID) (*Disease, error)
	List(ctx context.Context, skip, limit int) ([]*Disease, error)
	Update(ctx context.Context, d *Disease) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}

// SymptomRepository stores the symptom catalog.
type SymptomRepository interface {
	Create(ctx context.Context, s *Symptom) error
	GetByID(ctx context.Context, id uuid.UUID) (*Symptom, error)
	List(ctx context.Context, skip, limit int) ([]*Symptom, error)
	Update(ctx context.Context, s *Symptom) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}
