// Package service orchestrates the person registry: validation, error
// translation, metrics, and logging around the store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	personmetrics "pomen/internal/person/metrics"
	"pomen/internal/person/models"
	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
	"pomen/pkg/platform/sentinel"
	"pomen/pkg/requestcontext"
)

// defaultRecentLimit caps the recently-mourned listing when the caller asks
// for zero or a negative limit.
const defaultRecentLimit = 20

// Store is the person registry persistence contract. InMemory and
// PostgresStore in internal/person/store/person implement it.
type Store interface {
	Create(ctx context.Context, p *models.DeceasedPerson) error
	FindByID(ctx context.Context, personID id.PersonID) (*models.DeceasedPerson, error)
	ListWithTributes(ctx context.Context, limit int) ([]*models.DeceasedPerson, error)
	IncrementTributeCount(ctx context.Context, personID id.PersonID) error
	BackfillPhoto(ctx context.Context, personID id.PersonID, photoURL string) error
	All(ctx context.Context) ([]*models.DeceasedPerson, error)
}

// CreatePersonInput carries the submitted fields for a new registry entry.
type CreatePersonInput struct {
	FirstName    string
	LastName     string
	DateOfDeath  time.Time
	DateOfBirth  *time.Time
	PlaceOfDeath string
	PhotoURL     string
}

// Service exposes registry operations to the workflow and handlers.
type Service struct {
	persons Store
	logger  *slog.Logger
	metrics *personmetrics.Metrics
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the prometheus metrics; nil disables recording.
func WithMetrics(m *personmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs the person service.
func New(persons Store, opts ...Option) *Service {
	s := &Service{
		persons: persons,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePerson validates input and stores a new record with tribute count 0.
func (s *Service) CreatePerson(ctx context.Context, in CreatePersonInput) (*models.DeceasedPerson, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || in.LastName == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "first and last name are required")
	}
	if in.DateOfDeath.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "date of death is required")
	}

	p, err := models.NewDeceasedPerson(id.NewPersonID(), in.FirstName, in.LastName, in.DateOfDeath, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if in.DateOfBirth != nil {
		dob := models.TruncateToDay(*in.DateOfBirth)
		p.DateOfBirth = &dob
	}
	p.PlaceOfDeath = strings.TrimSpace(in.PlaceOfDeath)
	p.PhotoURL = strings.TrimSpace(in.PhotoURL)

	if err := s.persons.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person record")
	}

	if s.metrics != nil {
		s.metrics.PersonsCreated.Inc()
	}
	s.logger.InfoContext(ctx, "person record created",
		"person_id", p.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return p, nil
}

// GetPerson retrieves a record by id.
func (s *Service) GetPerson(ctx context.Context, personID id.PersonID) (*models.DeceasedPerson, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person id is required")
	}
	p, err := s.persons.FindByID(ctx, personID)
	if err != nil {
		return nil, translateStoreErr(err, "failed to load person")
	}
	return p, nil
}

// RecentlyMourned lists persons with at least one tribute, most recent date
// of death first.
func (s *Service) RecentlyMourned(ctx context.Context, limit int) ([]*models.DeceasedPerson, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	listed, err := s.persons.ListWithTributes(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list recently mourned")
	}
	return listed, nil
}

// RecordTribute applies the atomic counter increment. The counter is a
// denormalized value that is never reconciled against the tribute store; a
// lost increment stays lost.
func (s *Service) RecordTribute(ctx context.Context, personID id.PersonID) error {
	if personID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "person id is required")
	}
	if err := s.persons.IncrementTributeCount(ctx, personID); err != nil {
		return translateStoreErr(err, "failed to increment tribute count")
	}
	if s.metrics != nil {
		s.metrics.TributeIncrements.Inc()
	}
	return nil
}

// BackfillPhoto sets the photo if none has been accepted yet; otherwise it is
// a no-op.
func (s *Service) BackfillPhoto(ctx context.Context, personID id.PersonID, photoURL string) error {
	if personID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "person id is required")
	}
	photoURL = strings.TrimSpace(photoURL)
	if photoURL == "" {
		return dErrors.New(dErrors.CodeBadRequest, "photo url is required")
	}
	if err := s.persons.BackfillPhoto(ctx, personID, photoURL); err != nil {
		return translateStoreErr(err, "failed to backfill photo")
	}
	return nil
}

func translateStoreErr(err error, message string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "person not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, message)
}
