// Package matcher ranks registry candidates against a submitted name and
// date of death. Identity resolution is equality on normalized names plus
// calendar-date proximity; there is no phonetic, transliteration, or
// edit-distance matching.
package matcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pomen/internal/person/models"
	"pomen/pkg/platform/names"
)

// highTierWindowDays is the inclusive day window for the high-confidence
// tier: same name, date of death within a week.
const highTierWindowDays = 7

// Registry is the read-only slice of the person store the matcher needs.
type Registry interface {
	All(ctx context.Context) ([]*models.DeceasedPerson, error)
}

// Matcher scans the registry and classifies candidates into confidence
// tiers.
type Matcher struct {
	registry Registry
}

// New constructs a Matcher over the given registry.
func New(registry Registry) *Matcher {
	return &Matcher{registry: registry}
}

// FindMatches returns candidates ranked by confidence tier:
//
//	exact:  normalized first and last name match, same calendar date of death
//	high:   normalized first and last name match, dates within 7 days
//	medium: normalized last name matches, same calendar date of death
//
// Each candidate is classified into the strongest tier it satisfies.
// Results are sorted by tier; within one tier, registry insertion order is
// kept (the scan is stable). Candidates matching no tier are excluded.
//
// The registry snapshot may be stale relative to concurrent writers; callers
// re-search on demand, so that staleness is acceptable.
func (m *Matcher) FindMatches(ctx context.Context, firstName, lastName string, dateOfDeath time.Time) ([]models.Match, error) {
	queryFirst := names.Normalize(firstName)
	queryLast := names.Normalize(lastName)

	candidates, err := m.registry.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan registry: %w", err)
	}

	var matches []models.Match
	for _, candidate := range candidates {
		match, ok := classify(candidate, queryFirst, queryLast, dateOfDeath)
		if ok {
			matches = append(matches, match)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence.Rank() < matches[j].Confidence.Rank()
	})
	return matches, nil
}

func classify(candidate *models.DeceasedPerson, queryFirst, queryLast string, queryDate time.Time) (models.Match, bool) {
	firstMatches := names.Normalize(candidate.FirstName) == queryFirst
	lastMatches := names.Normalize(candidate.LastName) == queryLast
	sameDate := models.SameCalendarDay(candidate.DateOfDeath, queryDate)

	switch {
	case firstMatches && lastMatches && sameDate:
		return models.Match{
			Person:     candidate,
			Confidence: models.ConfidenceExact,
			Reason:     "same first name, last name, and date of death",
		}, true
	case firstMatches && lastMatches:
		if days := models.DaysApart(candidate.DateOfDeath, queryDate); days <= highTierWindowDays {
			return models.Match{
				Person:     candidate,
				Confidence: models.ConfidenceHigh,
				Reason:     fmt.Sprintf("same name, date of death differs by %d days", days),
			}, true
		}
	case lastMatches && sameDate:
		return models.Match{
			Person:     candidate,
			Confidence: models.ConfidenceMedium,
			Reason:     "same last name and date of death",
		}, true
	}
	return models.Match{}, false
}
