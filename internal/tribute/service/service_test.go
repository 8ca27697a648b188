package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	tributestore "pomen/internal/tribute/store/tribute"
	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
)

type TributeServiceSuite struct {
	suite.Suite
	store   *tributestore.InMemory
	service *Service
	ctx     context.Context
}

func TestTributeServiceSuite(t *testing.T) {
	suite.Run(t, new(TributeServiceSuite))
}

func (s *TributeServiceSuite) SetupTest() {
	s.store = tributestore.NewInMemory()
	s.service = New(s.store, nil)
	s.ctx = context.Background()
}

func (s *TributeServiceSuite) create(personID id.PersonID) id.TributeID {
	tributeID, err := s.service.Create(s.ctx, CreateTributeInput{
		PersonID:    personID,
		FirstName:   "Milica",
		LastName:    "Petrović",
		DateOfDeath: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Content:     "Počivaj u miru.",
	})
	s.Require().NoError(err)
	return tributeID
}

func (s *TributeServiceSuite) TestCreate() {
	s.Run("creates pending and unpaid", func() {
		tributeID := s.create(id.NewPersonID())
		s.False(tributeID.IsNil())

		t, err := s.store.FindByID(s.ctx, tributeID)
		s.Require().NoError(err)
		s.False(t.IsVisible())
	})

	s.Run("rejects empty content", func() {
		_, err := s.service.Create(s.ctx, CreateTributeInput{
			PersonID: id.NewPersonID(),
			Content:  "   ",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("rejects missing person reference", func() {
		_, err := s.service.Create(s.ctx, CreateTributeInput{
			Content: "Počivaj u miru.",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *TributeServiceSuite) TestModerationTransitions() {
	s.Run("approve then approve again conflicts", func() {
		tributeID := s.create(id.NewPersonID())
		s.Require().NoError(s.service.Approve(s.ctx, tributeID))

		err := s.service.Approve(s.ctx, tributeID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("reject after approve conflicts", func() {
		tributeID := s.create(id.NewPersonID())
		s.Require().NoError(s.service.Approve(s.ctx, tributeID))

		err := s.service.Reject(s.ctx, tributeID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown tribute maps to not found", func() {
		err := s.service.Approve(s.ctx, id.NewTributeID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *TributeServiceSuite) TestVisibilityRequiresApprovalAndPayment() {
	personID := id.NewPersonID()
	tributeID := s.create(personID)

	visible, err := s.service.VisibleForPerson(s.ctx, personID)
	s.Require().NoError(err)
	s.Empty(visible, "pending unpaid tribute must be hidden")

	s.Require().NoError(s.service.Approve(s.ctx, tributeID))
	visible, err = s.service.VisibleForPerson(s.ctx, personID)
	s.Require().NoError(err)
	s.Empty(visible, "approved but unpaid tribute must be hidden")

	s.Require().NoError(s.service.MarkPaid(s.ctx, tributeID))
	visible, err = s.service.VisibleForPerson(s.ctx, personID)
	s.Require().NoError(err)
	s.Require().Len(visible, 1)
	s.Equal(tributeID, visible[0].ID)
}

func (s *TributeServiceSuite) TestMarkPaidTwiceConflicts() {
	tributeID := s.create(id.NewPersonID())
	s.Require().NoError(s.service.MarkPaid(s.ctx, tributeID))

	err := s.service.MarkPaid(s.ctx, tributeID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *TributeServiceSuite) TestCountForPerson() {
	personID := id.NewPersonID()
	s.create(personID)
	s.create(personID)
	s.create(id.NewPersonID())

	count, err := s.service.CountForPerson(s.ctx, personID)
	s.Require().NoError(err)
	s.Equal(2, count)
}
