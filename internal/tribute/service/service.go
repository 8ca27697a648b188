// Package service orchestrates tribute persistence, moderation, and payment
// state. Visibility (approved AND paid) is enforced here, not by the
// identity core.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pomen/internal/tribute/models"
	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
	"pomen/pkg/platform/sentinel"
	"pomen/pkg/requestcontext"
)

// Store is the tribute persistence contract.
type Store interface {
	Create(ctx context.Context, t *models.Tribute) error
	FindByID(ctx context.Context, tributeID id.TributeID) (*models.Tribute, error)
	Update(ctx context.Context, t *models.Tribute) error
	ListForPerson(ctx context.Context, personID id.PersonID, visibleOnly bool) ([]*models.Tribute, error)
	CountForPerson(ctx context.Context, personID id.PersonID) (int, error)
}

// CreateTributeInput carries a submission's snapshot fields and content.
// Content must already have passed the upstream moderation filter.
type CreateTributeInput struct {
	PersonID    id.PersonID
	FirstName   string
	LastName    string
	DateOfDeath time.Time
	Content     string
}

// Service exposes tribute operations to the workflow and handlers.
type Service struct {
	tributes Store
	logger   *slog.Logger
}

// New constructs the tribute service.
func New(tributes Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{tributes: tributes, logger: logger}
}

// Create persists a new pending, unpaid tribute and returns its id.
// Submitter metadata comes from the request context when middleware set it.
func (s *Service) Create(ctx context.Context, in CreateTributeInput) (id.TributeID, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return id.TributeID{}, dErrors.New(dErrors.CodeBadRequest, "tribute content is required")
	}

	t, err := models.NewTribute(id.NewTributeID(), in.PersonID, in.FirstName, in.LastName, in.DateOfDeath, in.Content, requestcontext.Now(ctx))
	if err != nil {
		return id.TributeID{}, err
	}
	t.SubmitterIP = requestcontext.ClientIP(ctx)
	t.SubmitterUserAgent = requestcontext.UserAgent(ctx)

	if err := s.tributes.Create(ctx, t); err != nil {
		return id.TributeID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tribute")
	}

	s.logger.InfoContext(ctx, "tribute created",
		"tribute_id", t.ID.String(),
		"person_id", t.PersonID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return t.ID, nil
}

// Approve transitions a pending tribute to approved.
func (s *Service) Approve(ctx context.Context, tributeID id.TributeID) error {
	return s.transition(ctx, tributeID, func(t *models.Tribute, now time.Time) error {
		return t.Approve(now)
	})
}

// Reject transitions a pending tribute to rejected.
func (s *Service) Reject(ctx context.Context, tributeID id.TributeID) error {
	return s.transition(ctx, tributeID, func(t *models.Tribute, now time.Time) error {
		return t.Reject(now)
	})
}

// MarkPaid records a settled payment for the tribute.
func (s *Service) MarkPaid(ctx context.Context, tributeID id.TributeID) error {
	return s.transition(ctx, tributeID, func(t *models.Tribute, now time.Time) error {
		return t.MarkPaid(now)
	})
}

// VisibleForPerson lists the tributes that may be rendered publicly for a
// person: approved and paid, in submission order.
func (s *Service) VisibleForPerson(ctx context.Context, personID id.PersonID) ([]*models.Tribute, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person id is required")
	}
	listed, err := s.tributes.ListForPerson(ctx, personID, true)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tributes")
	}
	return listed, nil
}

// AllForPerson lists a person's tributes regardless of visibility, for the
// moderation queue.
func (s *Service) AllForPerson(ctx context.Context, personID id.PersonID) ([]*models.Tribute, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person id is required")
	}
	listed, err := s.tributes.ListForPerson(ctx, personID, false)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tributes")
	}
	return listed, nil
}

// CountForPerson returns the true tribute row count. The registry's
// denormalized counter is never updated from this value.
func (s *Service) CountForPerson(ctx context.Context, personID id.PersonID) (int, error) {
	count, err := s.tributes.CountForPerson(ctx, personID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count tributes")
	}
	return count, nil
}

func (s *Service) transition(ctx context.Context, tributeID id.TributeID, apply func(*models.Tribute, time.Time) error) error {
	if tributeID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "tribute id is required")
	}
	t, err := s.tributes.FindByID(ctx, tributeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "tribute not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tribute")
	}
	if err := apply(t, requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.tributes.Update(ctx, t); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update tribute")
	}
	return nil
}
