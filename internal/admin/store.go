package admin

import (
	"context"
	"sync"

	"pomen/pkg/platform/sentinel"
)

// InMemoryStore holds moderator accounts seeded at startup.
type InMemoryStore struct {
	mu         sync.RWMutex
	moderators map[string]*Moderator
}

// NewInMemoryStore creates an empty moderator store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{moderators: make(map[string]*Moderator)}
}

// Seed adds a moderator account, hashing the given password.
func (s *InMemoryStore) Seed(username, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moderators[username] = &Moderator{Username: username, PasswordHash: hash}
	return nil
}

// FindByUsername looks up a moderator account.
func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (*Moderator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mod, ok := s.moderators[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *mod
	return &copied, nil
}
