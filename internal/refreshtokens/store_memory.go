package refreshtokens

import (
	"context"
	"sync"
)

// MemoryStore keeps bindings in process memory. Both indexes are updated
// under one lock so a token never outlives its user's binding.
type MemoryStore struct {
	mu      sync.RWMutex
	byUser  map[int64]string
	byToken map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byUser: map[int64]string{}, byToken: map[string]int64{}}
}

func (s *MemoryStore) FindByToken(ctx context.Context, token string) (Binding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byToken[token]
	if !ok {
		return Binding{}, ErrUnknownRefreshToken
	}
	return Binding{UserID: userID, RefreshToken: token}, nil
}

func (s *MemoryStore) Save(ctx context.Context, b Binding) error {
	if err := validate(b); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.byUser[b.UserID]; ok {
		delete(s.byToken, prev)
	}
	if prevUser, ok := s.byToken[b.RefreshToken]; ok {
		delete(s.byUser, prevUser)
	}
	s.byUser[b.UserID] = b.RefreshToken
	s.byToken[b.RefreshToken] = b.UserID
	return nil
}

func (s *MemoryStore) DeleteByUserID(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok, ok := s.byUser[userID]; ok {
		delete(s.byToken, tok)
		delete(s.byUser, userID)
	}
	return nil
}
