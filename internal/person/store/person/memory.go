package person

import (
	"context"
	"sort"
	"sync"

	"pomen/internal/person/models"
	id "pomen/pkg/domain"
	"pomen/pkg/platform/sentinel"
)

// InMemory implements the person registry store with a mutex-guarded map.
// Used by unit tests and dev mode; production uses PostgresStore.
//
// Insertion order is tracked so that match results within one confidence
// tier come back in a stable, documented order.
type InMemory struct {
	mu      sync.RWMutex
	persons map[id.PersonID]*models.DeceasedPerson
	order   []id.PersonID
}

// NewInMemory creates an empty in-memory person store.
func NewInMemory() *InMemory {
	return &InMemory{
		persons: make(map[id.PersonID]*models.DeceasedPerson),
	}
}

// Create stores a copy of the record. The caller keeps ownership of p.
func (s *InMemory) Create(ctx context.Context, p *models.DeceasedPerson) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persons[p.ID] = p.Clone()
	s.order = append(s.order, p.ID)
	return nil
}

// FindByID returns a copy of the record or sentinel.ErrNotFound.
func (s *InMemory) FindByID(ctx context.Context, personID id.PersonID) (*models.DeceasedPerson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.persons[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

// ListWithTributes returns persons with at least one tribute, most recent
// date of death first, capped at limit.
func (s *InMemory) ListWithTributes(ctx context.Context, limit int) ([]*models.DeceasedPerson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.DeceasedPerson
	for _, personID := range s.order {
		if p := s.persons[personID]; p.TributeCount > 0 {
			out = append(out, p.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateOfDeath.After(out[j].DateOfDeath)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// IncrementTributeCount atomically adds one to the counter. The write lock
// serializes concurrent increments for the same id, so none are lost.
func (s *InMemory) IncrementTributeCount(ctx context.Context, personID id.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.persons[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.TributeCount++
	return nil
}

// BackfillPhoto sets the photo only if none has been accepted yet. Checking
// and writing under one lock gives the compare-and-set semantics the
// workflow relies on; a late backfill observing a non-empty photo is a no-op.
func (s *InMemory) BackfillPhoto(ctx context.Context, personID id.PersonID, photoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.persons[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if p.PhotoURL == "" {
		p.PhotoURL = photoURL
	}
	return nil
}

// All returns a snapshot of every record in insertion order. The matcher
// scans this; a snapshot that is stale relative to concurrent writers is
// acceptable because the UI re-searches on demand.
func (s *InMemory) All(ctx context.Context) ([]*models.DeceasedPerson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.DeceasedPerson, 0, len(s.order))
	for _, personID := range s.order {
		out = append(out, s.persons[personID].Clone())
	}
	return out, nil
}
