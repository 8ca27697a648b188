package models

import (
	"time"

	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
)

// ModerationStatus is the review state of a tribute's free text.
// Transitions: pending → approved, pending → rejected. Terminal after that.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// PaymentStatus tracks whether the submitter's payment has settled.
// Transitions: unpaid → paid. The payment provider callback is the only
// writer.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Tribute is one submitted condolence.
//
// Invariants:
//   - PersonID is required and set once at creation; every tribute references
//     exactly one person.
//   - FirstName/LastName/DateOfDeath are snapshots of the submitted fields,
//     kept even though the person link exists, so a tribute stays renderable
//     if registry data is ever repaired by hand.
//   - A tribute is publicly visible only when approved AND paid.
type Tribute struct {
	ID                 id.TributeID
	PersonID           id.PersonID
	FirstName          string
	LastName           string
	DateOfDeath        time.Time
	Content            string
	Moderation         ModerationStatus
	Payment            PaymentStatus
	SubmitterIP        string
	SubmitterUserAgent string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewTribute validates required fields and builds a pending, unpaid tribute.
// Content is assumed to have passed the upstream moderation filter already;
// the pending state covers the human review that follows.
func NewTribute(tributeID id.TributeID, personID id.PersonID, firstName, lastName string, dateOfDeath time.Time, content string, now time.Time) (*Tribute, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tribute requires a person reference")
	}
	if content == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tribute content cannot be empty")
	}
	return &Tribute{
		ID:          tributeID,
		PersonID:    personID,
		FirstName:   firstName,
		LastName:    lastName,
		DateOfDeath: dateOfDeath,
		Content:     content,
		Moderation:  ModerationPending,
		Payment:     PaymentUnpaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsVisible reports whether the tribute may be shown publicly.
func (t *Tribute) IsVisible() bool {
	return t.Moderation == ModerationApproved && t.Payment == PaymentPaid
}

// Approve transitions pending → approved.
func (t *Tribute) Approve(now time.Time) error {
	if t.Moderation != ModerationPending {
		return dErrors.Newf(dErrors.CodeConflict, "tribute is already %s", t.Moderation)
	}
	t.Moderation = ModerationApproved
	t.UpdatedAt = now
	return nil
}

// Reject transitions pending → rejected.
func (t *Tribute) Reject(now time.Time) error {
	if t.Moderation != ModerationPending {
		return dErrors.Newf(dErrors.CodeConflict, "tribute is already %s", t.Moderation)
	}
	t.Moderation = ModerationRejected
	t.UpdatedAt = now
	return nil
}

// MarkPaid transitions unpaid → paid. Repeated provider callbacks for the
// same tribute are conflicts, not silent no-ops, so double charges surface.
func (t *Tribute) MarkPaid(now time.Time) error {
	if t.Payment == PaymentPaid {
		return dErrors.New(dErrors.CodeConflict, "tribute is already paid")
	}
	t.Payment = PaymentPaid
	t.UpdatedAt = now
	return nil
}

// Clone returns a copy so stores can hand out records without aliasing.
func (t *Tribute) Clone() *Tribute {
	cp := *t
	return &cp
}
