package submission

//go:generate mockgen -source=workflow.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pomen/internal/person/matcher"
	personservice "pomen/internal/person/service"
	personstore "pomen/internal/person/store/person"
	"pomen/internal/submission/mocks"
	tributeservice "pomen/internal/tribute/service"
	tributestore "pomen/internal/tribute/store/tribute"
	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
)

type WorkflowSuite struct {
	suite.Suite
	ctx      context.Context
	persons  *personstore.InMemory
	tributes *tributestore.InMemory
	workflow *Workflow
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	s.ctx = context.Background()
	s.persons = personstore.NewInMemory()
	s.tributes = tributestore.NewInMemory()

	personSvc := personservice.New(s.persons)
	s.workflow = New(
		matcher.New(s.persons),
		personSvc,
		tributeservice.New(s.tributes, nil),
	)
}

func (s *WorkflowSuite) fields() Fields {
	return Fields{
		FirstName:   "Dragana",
		LastName:    "Jovanović",
		DateOfDeath: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	}
}

func (s *WorkflowSuite) seedPerson(first, last string, dod time.Time) id.PersonID {
	p, err := personservice.New(s.persons).CreatePerson(s.ctx, personservice.CreatePersonInput{
		FirstName:   first,
		LastName:    last,
		DateOfDeath: dod,
	})
	s.Require().NoError(err)
	return p.ID
}

func (s *WorkflowSuite) TestSearchValidation() {
	s.Run("missing fields rejected", func() {
		sub := s.workflow.NewSubmission()
		sub.SetFields(Fields{FirstName: "Dragana"})

		_, err := sub.Search(s.ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(StateIdle, sub.State())
	})

	s.Run("search twice conflicts", func() {
		sub := s.workflow.NewSubmission()
		sub.SetFields(s.fields())

		_, err := sub.Search(s.ctx)
		s.Require().NoError(err)

		_, err = sub.Search(s.ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *WorkflowSuite) TestEmptyResultDeclaresNew() {
	sub := s.workflow.NewSubmission()
	sub.SetFields(s.fields())

	matches, err := sub.Search(s.ctx)
	s.Require().NoError(err)
	s.Empty(matches)
	s.Equal(StateDeclaredNew, sub.State(), "no candidates skips the review step")
}

func (s *WorkflowSuite) TestSubmitCreatesPersonAndTribute() {
	sub := s.workflow.NewSubmission()
	f := s.fields()
	f.PlaceOfDeath = "Niš"
	sub.SetFields(f)

	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)

	result, err := sub.Submit(s.ctx, "Večna ti slava.", "")
	s.Require().NoError(err)
	s.Equal(StateSubmitted, sub.State())
	s.True(result.CreatedPerson)
	s.False(result.PersonID.IsNil())
	s.False(result.TributeID.IsNil())

	p, err := s.persons.FindByID(s.ctx, result.PersonID)
	s.Require().NoError(err)
	s.Equal(1, p.TributeCount)
	s.Equal("Niš", p.PlaceOfDeath)

	t, err := s.tributes.FindByID(s.ctx, result.TributeID)
	s.Require().NoError(err)
	s.Equal(result.PersonID, t.PersonID)
}

func (s *WorkflowSuite) TestBindToExistingPerson() {
	f := s.fields()
	personID := s.seedPerson(f.FirstName, f.LastName, f.DateOfDeath)

	sub := s.workflow.NewSubmission()
	sub.SetFields(f)

	matches, err := sub.Search(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(StateReviewing, sub.State())

	s.Require().NoError(sub.Bind(personID))
	s.Equal(StateBound, sub.State())

	result, err := sub.Submit(s.ctx, "Saučešće porodici.", "")
	s.Require().NoError(err)
	s.False(result.CreatedPerson)
	s.Equal(personID, result.PersonID)

	p, err := s.persons.FindByID(s.ctx, personID)
	s.Require().NoError(err)
	s.Equal(1, p.TributeCount)
}

func (s *WorkflowSuite) TestBindRejectsUnknownCandidate() {
	f := s.fields()
	s.seedPerson(f.FirstName, f.LastName, f.DateOfDeath)

	sub := s.workflow.NewSubmission()
	sub.SetFields(f)
	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)

	err = sub.Bind(id.NewPersonID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	s.Equal(StateReviewing, sub.State())
}

func (s *WorkflowSuite) TestDeclareNewAfterReview() {
	f := s.fields()
	s.seedPerson(f.FirstName, f.LastName, f.DateOfDeath)

	sub := s.workflow.NewSubmission()
	sub.SetFields(f)
	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(sub.DeclareNew())
	s.Equal(StateDeclaredNew, sub.State())

	result, err := sub.Submit(s.ctx, "Počivaj u miru.", "")
	s.Require().NoError(err)
	s.True(result.CreatedPerson, "declaring new creates a second record despite the match")

	all, err := s.persons.All(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *WorkflowSuite) TestIdentityEditResetsState() {
	f := s.fields()
	s.seedPerson(f.FirstName, f.LastName, f.DateOfDeath)

	sub := s.workflow.NewSubmission()
	sub.SetFields(f)
	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)
	s.Equal(StateReviewing, sub.State())

	edited := f
	edited.LastName = "Petrović"
	sub.SetFields(edited)
	s.Equal(StateIdle, sub.State())
	s.Empty(sub.Matches(), "stale candidates must not survive an identity edit")

	// Non-identity edits keep the state.
	_, err = sub.Search(s.ctx)
	s.Require().NoError(err)
	withPlace := edited
	withPlace.PlaceOfDeath = "Beograd"
	sub.SetFields(withPlace)
	s.NotEqual(StateIdle, sub.State())
}

func (s *WorkflowSuite) TestSubmitFromWrongState() {
	sub := s.workflow.NewSubmission()
	sub.SetFields(s.fields())

	_, err := sub.Submit(s.ctx, "Saučešće.", "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *WorkflowSuite) TestTributeFailureLeavesOrphanPerson() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	creator := mocks.NewMockTributeCreator(ctrl)
	creator.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(id.TributeID{}, dErrors.New(dErrors.CodeInternal, "tribute store unavailable"))

	wf := New(matcher.New(s.persons), personservice.New(s.persons), creator)
	sub := wf.NewSubmission()
	sub.SetFields(s.fields())

	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)

	_, err = sub.Submit(s.ctx, "Saučešće.", "")
	s.Require().Error(err)
	s.Equal(StateFailed, sub.State())

	// The person record created before the failure is kept, with no tribute
	// and a zero counter.
	all, listErr := s.persons.All(s.ctx)
	s.Require().NoError(listErr)
	s.Require().Len(all, 1)
	s.Equal(0, all[0].TributeCount)
}

func (s *WorkflowSuite) TestPersonCreationFailureCreatesNothing() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	directory := mocks.NewMockPersonDirectory(ctrl)
	directory.EXPECT().
		CreatePerson(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeInternal, "registry unavailable"))

	creator := mocks.NewMockTributeCreator(ctrl)

	wf := New(matcher.New(s.persons), directory, creator)
	sub := wf.NewSubmission()
	sub.SetFields(s.fields())

	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)

	_, err = sub.Submit(s.ctx, "Saučešće.", "")
	s.Require().Error(err)
	s.Equal(StateFailed, sub.State())
}

func (s *WorkflowSuite) TestCounterFailureIsSoft() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	f := s.fields()
	personID := s.seedPerson(f.FirstName, f.LastName, f.DateOfDeath)

	directory := mocks.NewMockPersonDirectory(ctrl)
	directory.EXPECT().
		RecordTribute(gomock.Any(), personID).
		Return(dErrors.New(dErrors.CodeInternal, "registry unavailable"))

	wf := New(matcher.New(s.persons), directory, tributeservice.New(s.tributes, nil))
	sub := wf.NewSubmission()
	sub.SetFields(f)

	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(sub.Bind(personID))

	result, err := sub.Submit(s.ctx, "Saučešće.", "")
	s.Require().NoError(err, "a lost counter increment must not fail the submission")
	s.Equal(StateSubmitted, sub.State())
	s.False(result.TributeID.IsNil())
}

func (s *WorkflowSuite) TestBackfillFailureIsSoft() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	f := s.fields()
	personID := s.seedPerson(f.FirstName, f.LastName, f.DateOfDeath)

	directory := mocks.NewMockPersonDirectory(ctrl)
	directory.EXPECT().RecordTribute(gomock.Any(), personID).Return(nil)
	directory.EXPECT().
		BackfillPhoto(gomock.Any(), personID, "https://cdn.pomen.rs/p.jpg").
		Return(dErrors.New(dErrors.CodeInternal, "registry unavailable"))

	wf := New(matcher.New(s.persons), directory, tributeservice.New(s.tributes, nil))
	sub := wf.NewSubmission()
	sub.SetFields(f)

	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(sub.Bind(personID))

	_, err = sub.Submit(s.ctx, "Saučešće.", "https://cdn.pomen.rs/p.jpg")
	s.Require().NoError(err, "a skipped photo backfill must not fail the submission")
	s.Equal(StateSubmitted, sub.State())
}

func (s *WorkflowSuite) TestSubmitEmitsEvents() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	events := mocks.NewMockEventPublisher(ctrl)
	events.EXPECT().PersonCreated(gomock.Any(), gomock.Any())
	events.EXPECT().TributeSubmitted(gomock.Any(), gomock.Any(), gomock.Any())

	cache := mocks.NewMockCacheInvalidator(ctrl)
	cache.EXPECT().Invalidate(gomock.Any())

	wf := New(
		matcher.New(s.persons),
		personservice.New(s.persons),
		tributeservice.New(s.tributes, nil),
		WithEvents(events),
		WithCacheInvalidator(cache),
	)
	sub := wf.NewSubmission()
	sub.SetFields(s.fields())

	_, err := sub.Search(s.ctx)
	s.Require().NoError(err)

	_, err = sub.Submit(s.ctx, "Saučešće.", "")
	s.Require().NoError(err)
}
