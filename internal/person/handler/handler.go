// Package handler exposes the public person registry endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pomen/internal/person/cache"
	"pomen/internal/person/models"
	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
	"pomen/pkg/platform/httputil"
	"pomen/pkg/requestcontext"
)

// maxRecentLimit caps the landing-page listing regardless of what the
// client asks for.
const maxRecentLimit = 100

// Service defines the person operations the handler needs.
type Service interface {
	GetPerson(ctx context.Context, personID id.PersonID) (*models.DeceasedPerson, error)
	RecentlyMourned(ctx context.Context, limit int) ([]*models.DeceasedPerson, error)
}

// Handler handles person registry endpoints.
type Handler struct {
	persons Service
	recent  *cache.RecentCache
	logger  *slog.Logger
}

// New creates a person Handler. recent may be nil when Redis is not
// configured.
func New(persons Service, recent *cache.RecentCache, logger *slog.Logger) *Handler {
	return &Handler{persons: persons, recent: recent, logger: logger}
}

// Register registers the person routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/persons/{personID}", h.handleGetPerson)
	r.Get("/persons/recent", h.handleRecentlyMourned)
}

// personResponse is the wire shape of a registry record.
type personResponse struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	DateOfDeath  string  `json:"date_of_death"`
	DateOfBirth  *string `json:"date_of_birth,omitempty"`
	PlaceOfDeath string  `json:"place_of_death,omitempty"`
	PhotoURL     string  `json:"photo_url,omitempty"`
	MemorialID   *string `json:"memorial_id,omitempty"`
	TributeCount int     `json:"tribute_count"`
}

func toPersonResponse(p *models.DeceasedPerson) personResponse {
	resp := personResponse{
		ID:           p.ID.String(),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		DateOfDeath:  p.DateOfDeath.Format(time.DateOnly),
		PlaceOfDeath: p.PlaceOfDeath,
		PhotoURL:     p.PhotoURL,
		TributeCount: p.TributeCount,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Format(time.DateOnly)
		resp.DateOfBirth = &dob
	}
	if p.LinkedMemorialID != nil {
		mid := p.LinkedMemorialID.String()
		resp.MemorialID = &mid
	}
	return resp
}

func (h *Handler) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	p, err := h.persons.GetPerson(ctx, personID)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to load person",
				"person_id", personID.String(),
				"error", err.Error(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(p))
}

// handleRecentlyMourned serves the landing-page listing, cache first. The
// default limit is cached; explicit limits bypass the cache.
func (h *Handler) handleRecentlyMourned(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = min(parsed, maxRecentLimit)
	}

	if limit == 0 {
		if listed, ok := h.recent.Get(ctx); ok {
			h.writeRecent(w, listed)
			return
		}
	}

	listed, err := h.persons.RecentlyMourned(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list recently mourned",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	if limit == 0 {
		h.recent.Set(ctx, listed)
	}
	h.writeRecent(w, listed)
}

func (h *Handler) writeRecent(w http.ResponseWriter, listed []*models.DeceasedPerson) {
	responses := make([]personResponse, 0, len(listed))
	for _, p := range listed {
		responses = append(responses, toPersonResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"persons": responses})
}
