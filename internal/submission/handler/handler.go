// Package handler exposes the public condolence submission endpoints. Each
// request drives a fresh workflow pass, so the API stays stateless: the
// search endpoint returns candidates, and the submit endpoint replays the
// search before applying the submitter's decision.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pomen/internal/person/models"
	"pomen/internal/submission"
	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
	"pomen/pkg/platform/httputil"
	"pomen/pkg/requestcontext"
)

// Submitter decisions accepted by the submit endpoint.
const (
	decisionBind = "bind"
	decisionNew  = "new"
)

// Handler handles condolence submission endpoints.
type Handler struct {
	workflow *submission.Workflow
	logger   *slog.Logger
}

// New creates a submission Handler.
func New(workflow *submission.Workflow, logger *slog.Logger) *Handler {
	return &Handler{workflow: workflow, logger: logger}
}

// Register registers the submission routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/condolences/search", h.handleSearch)
	r.Post("/condolences", h.handleSubmit)
}

type identityRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfDeath string `json:"date_of_death"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Place       string `json:"place_of_death,omitempty"`
}

func (req identityRequest) toFields() (submission.Fields, error) {
	f := submission.Fields{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PlaceOfDeath: req.Place,
	}
	if req.DateOfDeath != "" {
		dod, err := time.Parse(time.DateOnly, req.DateOfDeath)
		if err != nil {
			return f, dErrors.New(dErrors.CodeBadRequest, "date_of_death must be YYYY-MM-DD")
		}
		f.DateOfDeath = dod
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
		if err != nil {
			return f, dErrors.New(dErrors.CodeBadRequest, "date_of_birth must be YYYY-MM-DD")
		}
		f.DateOfBirth = &dob
	}
	return f, nil
}

type matchResponse struct {
	PersonID     string `json:"person_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DateOfDeath  string `json:"date_of_death"`
	PhotoURL     string `json:"photo_url,omitempty"`
	TributeCount int    `json:"tribute_count"`
	Confidence   string `json:"confidence"`
	Reason       string `json:"reason"`
}

func toMatchResponses(matches []models.Match) []matchResponse {
	responses := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, matchResponse{
			PersonID:     m.Person.ID.String(),
			FirstName:    m.Person.FirstName,
			LastName:     m.Person.LastName,
			DateOfDeath:  m.Person.DateOfDeath.Format(time.DateOnly),
			PhotoURL:     m.Person.PhotoURL,
			TributeCount: m.Person.TributeCount,
			Confidence:   string(m.Confidence),
			Reason:       m.Reason,
		})
	}
	return responses
}

// handleSearch runs the candidate search. no_match reports that the
// submitter can proceed directly without reviewing anyone.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	fields, err := req.toFields()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sub := h.workflow.NewSubmission()
	sub.SetFields(fields)
	matches, err := sub.Search(ctx)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.ErrorContext(ctx, "candidate search failed",
				"error", err.Error(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"matches":  toMatchResponses(matches),
		"no_match": len(matches) == 0,
	})
}

type submitRequest struct {
	identityRequest
	Content  string `json:"content"`
	PhotoURL string `json:"photo_url,omitempty"`
	Decision string `json:"decision"`
	PersonID string `json:"person_id,omitempty"`
}

type submitResponse struct {
	PersonID      string `json:"person_id"`
	TributeID     string `json:"tribute_id"`
	CreatedPerson bool   `json:"created_person"`
}

// handleSubmit replays the search and applies the decision. A bind decision
// must name one of the candidates the replayed search still finds; if the
// registry changed in between, the submitter gets a 400 and searches again.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	fields, err := req.identityRequest.toFields()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sub := h.workflow.NewSubmission()
	sub.SetFields(fields)
	if _, err := sub.Search(ctx); err != nil {
		httputil.WriteError(w, err)
		return
	}

	switch req.Decision {
	case decisionBind:
		personID, err := id.ParsePersonID(req.PersonID)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
			return
		}
		if err := sub.Bind(personID); err != nil {
			httputil.WriteError(w, err)
			return
		}
	case decisionNew:
		// The search may already have auto-declared when nothing matched.
		if sub.State() == submission.StateReviewing {
			if err := sub.DeclareNew(); err != nil {
				httputil.WriteError(w, err)
				return
			}
		}
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, `decision must be "bind" or "new"`))
		return
	}

	result, err := sub.Submit(ctx, req.Content, req.PhotoURL)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.ErrorContext(ctx, "submission failed",
				"error", err.Error(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, submitResponse{
		PersonID:      result.PersonID.String(),
		TributeID:     result.TributeID.String(),
		CreatedPerson: result.CreatedPerson,
	})
}
