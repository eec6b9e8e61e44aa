package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// repoMem is the in-memory diagnosis history store used when no database
// is configured.
type repoMem struct {
	mu      sync.RWMutex
	records []*Record
}

// NewRepoMem creates an empty in-memory diagnosis history store.
func NewRepoMem() Repository { return &repoMem{} }

func (r *repoMem) Save(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = uuid.New()
	rec.Timestamp = time.Now().UTC()
	stored := *rec
	r.records = append(r.records, &stored)
	return nil
}

func (r *repoMem) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ID == id {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

// byUserNewestFirst returns the user's records newest first. Records saved
// at the same instant keep most-recently-saved-first order.
func (r *repoMem) byUserNewestFirst(userID uuid.UUID) []*Record {
	var out []*Record
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (r *repoMem) ListByUser(_ context.Context, userID uuid.UUID, skip, limit int) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.byUserNewestFirst(userID)
	if skip >= len(matched) {
		return nil, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]*Record, 0, end-skip)
	for _, rec := range matched[skip:end] {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (r *repoMem) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *repoMem) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, rec := range r.records {
		if rec.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (r *repoMem) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *repoMem) SymptomsByUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var symptoms []string
	for _, rec := range r.records {
		if rec.UserID == userID {
			symptoms = append(symptoms, rec.Symptoms...)
		}
	}
	return symptoms, nil
}
