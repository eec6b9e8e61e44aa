package admin

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// diseaseRepoMem is the in-memory disease store used when no database is
// configured. Insertion order is preserved for listings.
type diseaseRepoMem struct {
	mu       sync.RWMutex
	diseases []*Disease
}

// NewDiseaseRepoMem creates an empty in-memory disease store.
func NewDiseaseRepoMem() DiseaseRepository { return &diseaseRepoMem{} }

func (r *diseaseRepoMem) Create(_ context.Context, d *Disease) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = uuid.New()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	stored := *d
	r.diseases = append(r.diseases, &stored)
	return nil
}

func (r *diseaseRepoMem) GetByID(_ context.Context, id uuid.UUID) (*Disease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.diseases {
		if d.ID == id {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *diseaseRepoMem) List(_ context.Context, skip, limit int) ([]*Disease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if skip >= len(r.diseases) {
		return nil, nil
	}
	end := skip + limit
	if end > len(r.diseases) {
		end = len(r.diseases)
	}
	out := make([]*Disease, 0, end-skip)
	for _, d := range r.diseases[skip:end] {
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (r *diseaseRepoMem) Update(_ context.Context, d *Disease) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.diseases {
		if existing.ID == d.ID {
			d.UpdatedAt = time.Now().UTC()
			stored := *d
			r.diseases[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *diseaseRepoMem) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.diseases {
		if d.ID == id {
			r.diseases = append(r.diseases[:i], r.diseases[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *diseaseRepoMem) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.diseases), nil
}

// symptomRepoMem is the in-memory symptom store.
type symptomRepoMem struct {
	mu       sync.RWMutex
	symptoms []*Symptom
}

// NewSymptomRepoMem creates an empty in-memory symptom store.
func NewSymptomRepoMem() SymptomRepository { return &symptomRepoMem{} }

func (r *symptomRepoMem) Create(_ context.Context, s *Symptom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	stored := *s
	r.symptoms = append(r.symptoms, &stored)
	return nil
}

func (r *symptomRepoMem) GetByID(_ context.Context, id uuid.UUID) (*Symptom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.symptoms {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *symptomRepoMem) List(_ context.Context, skip, limit int) ([]*Symptom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if skip >= len(r.symptoms) {
		return nil, nil
	}
	end := skip + limit
	if end > len(r.symptoms) {
		end = len(r.symptoms)
	}
	out := make([]*Symptom, 0, end-skip)
	for _, s := range r.symptoms[skip:end] {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *symptomRepoMem) Update(_ context.Context, s *Symptom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.symptoms {
		if existing.ID == s.ID {
			s.UpdatedAt = time.Now().UTC()
			stored := *s
			r.symptoms[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *symptomRepoMem) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.symptoms {
		if s.ID == id {
			r.symptoms = append(r.symptoms[:i], r.symptoms[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *symptomRepoMem) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.symptoms), nil
}
