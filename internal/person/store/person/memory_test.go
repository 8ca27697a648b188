package person

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pomen/internal/person/models"
	id "pomen/pkg/domain"
	"pomen/pkg/platform/sentinel"
)

type PersonStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *PersonStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestPersonStoreSuite(t *testing.T) {
	suite.Run(t, new(PersonStoreSuite))
}

func (s *PersonStoreSuite) newPerson(first, last, died string) *models.DeceasedPerson {
	dod, err := time.Parse("2006-01-02", died)
	s.Require().NoError(err)
	p, err := models.NewDeceasedPerson(id.NewPersonID(), first, last, dod, time.Now())
	s.Require().NoError(err)
	return p
}

func (s *PersonStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds person by ID", func() {
		p := s.newPerson("Milica", "Petrović", "2025-01-10")
		s.Require().NoError(s.store.Create(s.ctx, p))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("Milica", found.FirstName)
		s.Equal(0, found.TributeCount)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewPersonID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("hands out copies, not aliases", func() {
		p := s.newPerson("Petar", "Lukić", "2025-02-01")
		s.Require().NoError(s.store.Create(s.ctx, p))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		found.FirstName = "mutated"

		again, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("Petar", again.FirstName)
	})
}

func (s *PersonStoreSuite) TestListWithTributes() {
	older := s.newPerson("Ana", "Jovanović", "2025-01-05")
	newer := s.newPerson("Marko", "Nikolić", "2025-03-01")
	noTributes := s.newPerson("Ivan", "Ilić", "2025-02-01")
	for _, p := range []*models.DeceasedPerson{older, newer, noTributes} {
		s.Require().NoError(s.store.Create(s.ctx, p))
	}
	s.Require().NoError(s.store.IncrementTributeCount(s.ctx, older.ID))
	s.Require().NoError(s.store.IncrementTributeCount(s.ctx, newer.ID))

	s.Run("excludes zero-tribute persons and sorts most recent first", func() {
		listed, err := s.store.ListWithTributes(s.ctx, 10)
		s.Require().NoError(err)
		s.Require().Len(listed, 2)
		s.Equal(newer.ID, listed[0].ID)
		s.Equal(older.ID, listed[1].ID)
	})

	s.Run("caps at limit", func() {
		listed, err := s.store.ListWithTributes(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Len(listed, 1)
		s.Equal(newer.ID, listed[0].ID)
	})
}

// TestConcurrentIncrements is the no-lost-updates property: N concurrent
// increments against a fresh record must land exactly N.
func (s *PersonStoreSuite) TestConcurrentIncrements() {
	p := s.newPerson("Jovan", "Popović", "2025-01-15")
	s.Require().NoError(s.store.Create(s.ctx, p))

	const goroutines = 100
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.IncrementTributeCount(s.ctx, p.ID)
		}()
	}
	wg.Wait()

	found, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(goroutines, found.TributeCount)
}

func (s *PersonStoreSuite) TestIncrementUnknownID() {
	err := s.store.IncrementTributeCount(s.ctx, id.NewPersonID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PersonStoreSuite) TestBackfillPhoto() {
	s.Run("first accepted photo wins", func() {
		p := s.newPerson("Vera", "Simić", "2025-01-20")
		s.Require().NoError(s.store.Create(s.ctx, p))

		s.Require().NoError(s.store.BackfillPhoto(s.ctx, p.ID, "https://cdn.example/one.jpg"))
		s.Require().NoError(s.store.BackfillPhoto(s.ctx, p.ID, "https://cdn.example/two.jpg"))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("https://cdn.example/one.jpg", found.PhotoURL)
	})

	s.Run("no-op when photo already present at creation", func() {
		p := s.newPerson("Luka", "Matić", "2025-01-22")
		p.PhotoURL = "https://cdn.example/original.jpg"
		s.Require().NoError(s.store.Create(s.ctx, p))

		s.Require().NoError(s.store.BackfillPhoto(s.ctx, p.ID, "https://cdn.example/late.jpg"))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("https://cdn.example/original.jpg", found.PhotoURL)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		err := s.store.BackfillPhoto(s.ctx, id.NewPersonID(), "https://cdn.example/x.jpg")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PersonStoreSuite) TestAllKeepsInsertionOrder() {
	first := s.newPerson("Prva", "Osoba", "2025-01-01")
	second := s.newPerson("Druga", "Osoba", "2025-01-02")
	third := s.newPerson("Treća", "Osoba", "2025-01-03")
	for _, p := range []*models.DeceasedPerson{first, second, third} {
		s.Require().NoError(s.store.Create(s.ctx, p))
	}

	all, err := s.store.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(first.ID, all[0].ID)
	s.Equal(second.ID, all[1].ID)
	s.Equal(third.ID, all[2].ID)
}
