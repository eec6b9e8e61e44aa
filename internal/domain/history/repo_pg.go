package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a Postgres-backed diagnosis history store.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const recordCols = `id, user_id, symptoms, predicted_diseases, timestamp`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Symptoms, &rec.PredictedDiseases, &rec.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repoPG) Save(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	rec.Timestamp = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO diagnosis_history (id, user_id, symptoms, predicted_diseases, timestamp)
		VALUES ($1,$2,$3,$4,$5)`,
		rec.ID, rec.UserID, rec.Symptoms, rec.PredictedDiseases, rec.Timestamp)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return scanRecord(r.pool.QueryRow(ctx, `SELECT `+recordCols+` FROM diagnosis_history WHERE id = $1`, id))
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordCols+` FROM diagnosis_history
		WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`,
		userID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Symptoms, &rec.PredictedDiseases, &rec.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM diagnosis_history WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM diagnosis_history WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM diagnosis_history`).Scan(&total)
	return total, err
}

func (r *repoPG) SymptomsByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT unnest(symptoms) FROM diagnosis_history WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var symptoms []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symptoms = append(symptoms, s)
	}
	return symptoms, rows.Err()
}
