package articles

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory repository for tests and local runs.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]Article
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{byID: map[int64]Article{}} }

func (r *MemoryRepo) Create(ctx context.Context, a Article) (Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	r.byID[a.ID] = a
	return a, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Article, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id int64) (Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return Article{}, ErrArticleNotFound
	}
	return a, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id int64, mutate func(*Article) error) (Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return Article{}, ErrArticleNotFound
	}
	if err := mutate(&a); err != nil {
		return Article{}, err
	}
	r.byID[id] = a
	return a, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64, check func(Article) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return ErrArticleNotFound
	}
	if err := check(a); err != nil {
		return err
	}
	delete(r.byID, id)
	return nil
}
