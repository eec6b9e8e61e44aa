package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// repoMem is the in-memory user store used when no database is
// configured. Insertion order is preserved for listings.
type repoMem struct {
	mu    sync.RWMutex
	users []*User
}

// NewRepoMem creates an empty in-memory user store.
func NewRepoMem() Repository { return &repoMem{} }

func (r *repoMem) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.New()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	stored := *u
	r.users = append(r.users, &stored)
	return nil
}

func (r *repoMem) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *repoMem) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *repoMem) List(_ context.Context, skip, limit int) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if skip >= len(r.users) {
		return nil, nil
	}
	end := skip + limit
	if end > len(r.users) {
		end = len(r.users)
	}
	out := make([]*User, 0, end-skip)
	for _, u := range r.users[skip:end] {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *repoMem) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.users {
		if existing.ID == u.ID {
			u.UpdatedAt = time.Now().UTC()
			stored := *u
			r.users[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *repoMem) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *repoMem) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}
