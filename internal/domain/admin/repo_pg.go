package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type diseaseRepoPG struct{ pool *pgxpool.Pool }

// NewDiseaseRepoPG creates a Postgres-backed disease store.
func NewDiseaseRepoPG(pool *pgxpool.Pool) DiseaseRepository { return &diseaseRepoPG{pool: pool} }

const diseaseCols = `id, name, description, symptoms, treatment, severity, category, created_by, created_at, updated_at`

func scanDisease(row pgx.Row) (*Disease, error) {
	var d Disease
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Symptoms, &d.Treatment,
		&d.Severity, &d.Category, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *diseaseRepoPG) Create(ctx context.Context, d *Disease) error {
	d.ID = uuid.New()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO diseases (id, name, description, symptoms, treatment, severity, category, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		d.ID, d.Name, d.Description, d.Symptoms, d.Treatment, d.Severity, d.Category, d.CreatedBy, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *diseaseRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Disease, error) {
	return scanDisease(r.pool.QueryRow(ctx, `SELECT `+diseaseCols+` FROM diseases WHERE id = $1`, id))
}

func (r *diseaseRepoPG) List(ctx context.Context, skip, limit int) ([]*Disease, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+diseaseCols+` FROM diseases ORDER BY created_at LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var diseases []*Disease
	for rows.Next() {
		var d Disease
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Symptoms, &d.Treatment,
			&d.Severity, &d.Category, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		diseases = append(diseases, &d)
	}
	return diseases, rows.Err()
}

func (r *diseaseRepoPG) Update(ctx context.Context, d *Disease) error {
	d.UpdatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		UPDATE diseases SET name=$2, description=$3, symptoms=$4, treatment=$5, severity=$6, category=$7, updated_at=$8
		WHERE id = $1`,
		d.ID, d.Name, d.Description, d.Symptoms, d.Treatment, d.Severity, d.Category, d.UpdatedAt)
	return err
}

func (r *diseaseRepoPG) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM diseases WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *diseaseRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM diseases`).Scan(&total)
	return total, err
}

type symptomRepoPG struct{ pool *pgxpool.Pool }

// NewSymptomRepoPG creates a Postgres-backed symptom store.
func NewSymptomRepoPG(pool *pgxpool.Pool) SymptomRepository { return &symptomRepoPG{pool: pool} }

const symptomCols = `id, name, description, category, created_at, updated_at`

func scanSymptom(row pgx.Row) (*Symptom, error) {
	var s Symptom
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *symptomRepoPG) Create(ctx context.Context, s *Symptom) error {
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO symptoms (id, name, description, category, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.Name, s.Description, s.Category, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *symptomRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Symptom, error) {
	return scanSymptom(r.pool.QueryRow(ctx, `SELECT `+symptomCols+` FROM symptoms WHERE id = $1`, id))
}

func (r *symptomRepoPG) List(ctx context.Context, skip, limit int) ([]*Symptom, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+symptomCols+` FROM symptoms ORDER BY created_at LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var symptoms []*Symptom
	for rows.Next() {
		var s Symptom
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		symptoms = append(symptoms, &s)
	}
	return symptoms, rows.Err()
}

func (r *symptomRepoPG) Update(ctx context.Context, s *Symptom) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		UPDATE symptoms SET name=$2, description=$3, category=$4, updated_at=$5
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Category, s.UpdatedAt)
	return err
}

func (r *symptomRepoPG) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM symptoms WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *symptomRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM symptoms`).Scan(&total)
	return total, err
}
