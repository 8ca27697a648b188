// Package submission drives the condolence submission workflow: search the
// registry for the named person, let the submitter bind to a candidate or
// declare a new person, then persist the tribute and apply the best-effort
// counter and photo updates.
//
// One Submission serves one submitter and is not safe for concurrent use;
// within a submission every step completes before the next starts. Any
// number of submissions may run in parallel against the shared registry;
// the store's atomic increment and conditional photo write carry the
// cross-submission guarantees.
package submission

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	personmodels "pomen/internal/person/models"
	personservice "pomen/internal/person/service"
	submissionmetrics "pomen/internal/submission/metrics"
	tributeservice "pomen/internal/tribute/service"
	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
	"pomen/pkg/requestcontext"
)

// State of a submission. Submitted and Failed are terminal.
type State string

const (
	StateIdle        State = "idle"
	StateSearching   State = "searching"
	StateReviewing   State = "reviewing"
	StateBound       State = "bound"
	StateDeclaredNew State = "declared_new"
	StateSubmitted   State = "submitted"
	StateFailed      State = "failed"
)

// Fields are the identity fields of a submission. First name, last name,
// and date of death drive matching; the rest is carried onto a newly created
// person record.
type Fields struct {
	FirstName    string
	LastName     string
	DateOfDeath  time.Time
	DateOfBirth  *time.Time
	PlaceOfDeath string
}

func (f Fields) identityEquals(other Fields) bool {
	return f.FirstName == other.FirstName &&
		f.LastName == other.LastName &&
		f.DateOfDeath.Equal(other.DateOfDeath)
}

// MatchFinder is the matcher contract the workflow depends on.
type MatchFinder interface {
	FindMatches(ctx context.Context, firstName, lastName string, dateOfDeath time.Time) ([]personmodels.Match, error)
}

// PersonDirectory is the slice of the person service the workflow uses.
type PersonDirectory interface {
	CreatePerson(ctx context.Context, in personservice.CreatePersonInput) (*personmodels.DeceasedPerson, error)
	GetPerson(ctx context.Context, personID id.PersonID) (*personmodels.DeceasedPerson, error)
	RecordTribute(ctx context.Context, personID id.PersonID) error
	BackfillPhoto(ctx context.Context, personID id.PersonID, photoURL string) error
}

// TributeCreator is the outbound boundary to the tribute store.
type TributeCreator interface {
	Create(ctx context.Context, in tributeservice.CreateTributeInput) (id.TributeID, error)
}

// EventPublisher emits domain events; implementations must tolerate being
// nil-valued (events are best-effort).
type EventPublisher interface {
	PersonCreated(ctx context.Context, personID id.PersonID)
	TributeSubmitted(ctx context.Context, personID id.PersonID, tributeID id.TributeID)
}

// CacheInvalidator drops the recently-mourned listing after a tribute lands.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// Workflow holds the shared dependencies; NewSubmission mints the
// per-submitter state machines.
type Workflow struct {
	matcher MatchFinder
	persons PersonDirectory
	trib    TributeCreator
	events  EventPublisher
	cache   CacheInvalidator
	logger  *slog.Logger
	metrics *submissionmetrics.Metrics
	tracer  trace.Tracer
}

// Option configures optional workflow dependencies.
type Option func(*Workflow)

// WithEvents sets the domain event publisher.
func WithEvents(events EventPublisher) Option {
	return func(w *Workflow) { w.events = events }
}

// WithCacheInvalidator sets the recently-mourned cache hook.
func WithCacheInvalidator(cache CacheInvalidator) Option {
	return func(w *Workflow) { w.cache = cache }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithMetrics sets the prometheus metrics; nil disables recording.
func WithMetrics(m *submissionmetrics.Metrics) Option {
	return func(w *Workflow) { w.metrics = m }
}

// New constructs the workflow service.
func New(matcher MatchFinder, persons PersonDirectory, trib TributeCreator, opts ...Option) *Workflow {
	w := &Workflow{
		matcher: matcher,
		persons: persons,
		trib:    trib,
		logger:  slog.Default(),
		tracer:  otel.Tracer("pomen/submission"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewSubmission starts a fresh state machine in Idle.
func (w *Workflow) NewSubmission() *Submission {
	return &Submission{workflow: w, state: StateIdle}
}

// Result reports a completed submission.
type Result struct {
	PersonID      id.PersonID
	TributeID     id.TributeID
	CreatedPerson bool
}

// Submission is one submitter's pass through the workflow.
type Submission struct {
	workflow *Workflow
	state    State
	fields   Fields
	matches  []personmodels.Match
	boundTo  id.PersonID
}

// State returns the current machine state.
func (s *Submission) State() State {
	return s.state
}

// Matches returns the candidates found by the last search.
func (s *Submission) Matches() []personmodels.Match {
	return s.matches
}

// SetFields records the submitted fields. Editing any of the three identity
// fields after leaving Idle resets the machine: matches are discarded and
// any binding or declaration is cleared, so a stale choice can never survive
// an identity change.
func (s *Submission) SetFields(f Fields) {
	if s.state != StateIdle && !f.identityEquals(s.fields) {
		s.reset()
	}
	s.fields = f
}

func (s *Submission) reset() {
	s.state = StateIdle
	s.matches = nil
	s.boundTo = id.PersonID{}
}

// Search validates the identity fields and runs the matcher. An empty result
// auto-transitions to DeclaredNew: no candidates means this is a new
// person, with no confirmation required. A non-empty result enters Reviewing
// with no default selection.
func (s *Submission) Search(ctx context.Context) ([]personmodels.Match, error) {
	ctx, span := s.workflow.tracer.Start(ctx, "submission.Search")
	defer span.End()

	if s.state != StateIdle {
		return nil, dErrors.Newf(dErrors.CodeConflict, "cannot search from state %s", s.state)
	}
	if s.fields.FirstName == "" || s.fields.LastName == "" || s.fields.DateOfDeath.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "first name, last name, and date of death are required")
	}

	s.state = StateSearching
	matches, err := s.workflow.matcher.FindMatches(ctx, s.fields.FirstName, s.fields.LastName, s.fields.DateOfDeath)
	if err != nil {
		s.state = StateIdle
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "match search failed")
	}
	s.matches = matches
	span.SetAttributes(attribute.Int("matches.count", len(matches)))

	if len(matches) == 0 {
		s.state = StateDeclaredNew
	} else {
		s.state = StateReviewing
	}
	return matches, nil
}

// Bind selects one of the reviewed candidates as the existing person.
func (s *Submission) Bind(personID id.PersonID) error {
	if s.state != StateReviewing {
		return dErrors.Newf(dErrors.CodeConflict, "cannot bind from state %s", s.state)
	}
	for _, m := range s.matches {
		if m.Person.ID == personID {
			s.boundTo = personID
			s.state = StateBound
			return nil
		}
	}
	return dErrors.New(dErrors.CodeBadRequest, "person is not among the found candidates")
}

// DeclareNew records the submitter's explicit statement that none of the
// candidates is the same person.
func (s *Submission) DeclareNew() error {
	if s.state != StateReviewing {
		return dErrors.Newf(dErrors.CodeConflict, "cannot declare new from state %s", s.state)
	}
	s.boundTo = id.PersonID{}
	s.state = StateDeclaredNew
	return nil
}

// Submit finalizes the workflow from Bound or DeclaredNew:
//
//  1. DeclaredNew creates the person record first; a failure there aborts
//     with no tribute created.
//  2. The tribute is created next. A failure aborts the submission but does
//     not roll back a just-created person; that record stays in the
//     registry with tribute_count 0.
//  3. Counter increment and photo backfill run strictly after tribute
//     creation and are best-effort: their failure is logged and counted but
//     the submission still succeeds.
func (s *Submission) Submit(ctx context.Context, content, photoURL string) (*Result, error) {
	ctx, span := s.workflow.tracer.Start(ctx, "submission.Submit",
		trace.WithAttributes(attribute.String("submission.state", string(s.state))))
	defer span.End()

	if s.state != StateBound && s.state != StateDeclaredNew {
		return nil, dErrors.Newf(dErrors.CodeConflict, "cannot submit from state %s", s.state)
	}
	// Checked up front so an empty condolence never creates a person record.
	if strings.TrimSpace(content) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tribute content is required")
	}

	w := s.workflow
	result := &Result{}

	personID := s.boundTo
	if s.state == StateDeclaredNew {
		person, err := w.persons.CreatePerson(ctx, personservice.CreatePersonInput{
			FirstName:    s.fields.FirstName,
			LastName:     s.fields.LastName,
			DateOfDeath:  s.fields.DateOfDeath,
			DateOfBirth:  s.fields.DateOfBirth,
			PlaceOfDeath: s.fields.PlaceOfDeath,
		})
		if err != nil {
			s.fail(ctx, "person creation failed", err)
			return nil, err
		}
		personID = person.ID
		result.CreatedPerson = true
		if w.events != nil {
			w.events.PersonCreated(ctx, personID)
		}
	}
	result.PersonID = personID

	tributeID, err := w.trib.Create(ctx, tributeservice.CreateTributeInput{
		PersonID:    personID,
		FirstName:   s.fields.FirstName,
		LastName:    s.fields.LastName,
		DateOfDeath: s.fields.DateOfDeath,
		Content:     content,
	})
	if err != nil {
		// A person created above stays in the registry with count 0.
		s.fail(ctx, "tribute creation failed", err, "person_id", personID.String(), "orphaned_person", result.CreatedPerson)
		return nil, err
	}
	result.TributeID = tributeID
	span.SetAttributes(attribute.String("tribute.id", tributeID.String()))

	if w.events != nil {
		w.events.TributeSubmitted(ctx, personID, tributeID)
	}

	// Best-effort from here on: the tribute exists, so the submission
	// succeeds regardless of these outcomes.
	if err := w.persons.RecordTribute(ctx, personID); err != nil {
		s.softFail(ctx, "counter", personID, err)
	} else if w.cache != nil {
		w.cache.Invalidate(ctx)
	}

	if photoURL != "" {
		if err := w.persons.BackfillPhoto(ctx, personID, photoURL); err != nil {
			s.softFail(ctx, "backfill", personID, err)
		}
	}

	s.state = StateSubmitted
	if w.metrics != nil {
		w.metrics.ObserveOutcome("submitted")
	}
	w.logger.InfoContext(ctx, "submission completed",
		"person_id", personID.String(),
		"tribute_id", tributeID.String(),
		"created_person", result.CreatedPerson,
		"request_id", requestcontext.RequestID(ctx),
	)
	return result, nil
}

func (s *Submission) fail(ctx context.Context, msg string, err error, attrs ...any) {
	s.state = StateFailed
	if s.workflow.metrics != nil {
		s.workflow.metrics.ObserveOutcome("failed")
	}
	attrs = append(attrs, "error", err.Error(), "request_id", requestcontext.RequestID(ctx))
	s.workflow.logger.ErrorContext(ctx, msg, attrs...)
}

func (s *Submission) softFail(ctx context.Context, stage string, personID id.PersonID, err error) {
	if s.workflow.metrics != nil {
		s.workflow.metrics.ObserveSoftFailure(stage)
	}
	s.workflow.logger.WarnContext(ctx, "best-effort step failed after tribute creation",
		"stage", stage,
		"person_id", personID.String(),
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
}
