package tribute

import (
	"context"
	"sync"

	"pomen/internal/tribute/models"
	id "pomen/pkg/domain"
	"pomen/pkg/platform/sentinel"
)

// InMemory implements the tribute store with a mutex-guarded map. Used by
// unit tests and dev mode.
type InMemory struct {
	mu       sync.RWMutex
	tributes map[id.TributeID]*models.Tribute
	order    []id.TributeID
}

// NewInMemory creates an empty in-memory tribute store.
func NewInMemory() *InMemory {
	return &InMemory{
		tributes: make(map[id.TributeID]*models.Tribute),
	}
}

// Create stores a copy of the tribute.
func (s *InMemory) Create(ctx context.Context, t *models.Tribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tributes[t.ID] = t.Clone()
	s.order = append(s.order, t.ID)
	return nil
}

// FindByID returns a copy of the tribute or sentinel.ErrNotFound.
func (s *InMemory) FindByID(ctx context.Context, tributeID id.TributeID) (*models.Tribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tributes[tributeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return t.Clone(), nil
}

// Update persists status changes by full replacement.
func (s *InMemory) Update(ctx context.Context, t *models.Tribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tributes[t.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.tributes[t.ID] = t.Clone()
	return nil
}

// ListForPerson returns the person's tributes in submission order,
// optionally restricted to publicly visible ones.
func (s *InMemory) ListForPerson(ctx context.Context, personID id.PersonID, visibleOnly bool) ([]*models.Tribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Tribute
	for _, tributeID := range s.order {
		t := s.tributes[tributeID]
		if t.PersonID != personID {
			continue
		}
		if visibleOnly && !t.IsVisible() {
			continue
		}
		out = append(out, t.Clone())
	}
	return out, nil
}

// CountForPerson returns the true tribute row count for a person. Exposed
// for drift inspection only; the registry's tribute_count is never
// reconciled from it.
func (s *InMemory) CountForPerson(ctx context.Context, personID id.PersonID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, t := range s.tributes {
		if t.PersonID == personID {
			count++
		}
	}
	return count, nil
}
