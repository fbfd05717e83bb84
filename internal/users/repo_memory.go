package users

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory repository for tests and local runs.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]User
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{byID: map[int64]User{}} }

func (r *MemoryRepo) Create(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return User{}, ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	return u, nil
}

func (r *MemoryRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryRepo) FindByID(ctx context.Context, id int64) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}
