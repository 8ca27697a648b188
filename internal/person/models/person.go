package models

import (
	"time"

	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
)

// DeceasedPerson is the canonical, deduplicated identity that condolences
// are grouped under.
//
// Invariants:
//   - FirstName, LastName, and DateOfDeath are required and immutable after
//     creation; there is no edit path.
//   - TributeCount is an append-only counter mutated only through the store's
//     atomic increment. It is never recomputed from the tribute store, so it
//     can drift below the true row count if an increment is lost.
//   - PhotoURL starts empty and is set at most once through the conditional
//     backfill; the first accepted photo wins.
//   - LinkedMemorialID is written by the memorial module, never by this core.
type DeceasedPerson struct {
	ID               id.PersonID
	FirstName        string
	LastName         string
	DateOfDeath      time.Time
	DateOfBirth      *time.Time
	PlaceOfDeath     string
	PhotoURL         string
	LinkedMemorialID *id.MemorialID
	TributeCount     int
	CreatedAt        time.Time
}

// NewDeceasedPerson validates required fields and builds a record with a
// zero tribute count. Dates are truncated to calendar days in UTC so that
// equality checks in the matcher are calendar comparisons.
func NewDeceasedPerson(personID id.PersonID, firstName, lastName string, dateOfDeath time.Time, now time.Time) (*DeceasedPerson, error) {
	if firstName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "first name cannot be empty")
	}
	if lastName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "last name cannot be empty")
	}
	if dateOfDeath.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "date of death cannot be zero")
	}
	return &DeceasedPerson{
		ID:           personID,
		FirstName:    firstName,
		LastName:     lastName,
		DateOfDeath:  TruncateToDay(dateOfDeath),
		TributeCount: 0,
		CreatedAt:    now,
	}, nil
}

// HasPhoto reports whether a photo has already been accepted for this person.
func (p *DeceasedPerson) HasPhoto() bool {
	return p.PhotoURL != ""
}

// Clone returns a deep copy so stores can hand out records without aliasing
// their internal state.
func (p *DeceasedPerson) Clone() *DeceasedPerson {
	cp := *p
	if p.DateOfBirth != nil {
		dob := *p.DateOfBirth
		cp.DateOfBirth = &dob
	}
	if p.LinkedMemorialID != nil {
		mid := *p.LinkedMemorialID
		cp.LinkedMemorialID = &mid
	}
	return &cp
}

// TruncateToDay drops the time-of-day component, keeping a UTC calendar date.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameCalendarDay reports whether two timestamps fall on the same UTC
// calendar date.
func SameCalendarDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b))
}

// DaysApart returns the absolute number of whole calendar days between two
// dates.
func DaysApart(a, b time.Time) int {
	diff := TruncateToDay(a).Sub(TruncateToDay(b))
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}
