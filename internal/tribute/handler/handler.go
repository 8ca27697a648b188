// Package handler exposes the tribute endpoints: the public listing of
// visible condolences plus the moderation and payment surface behind
// moderator auth.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pomen/internal/admin"
	"pomen/internal/tribute/models"
	id "pomen/pkg/domain"
	dErrors "pomen/pkg/domain-errors"
	"pomen/pkg/platform/httputil"
	"pomen/pkg/requestcontext"
)

// Service defines the tribute operations the handler needs.
type Service interface {
	Approve(ctx context.Context, tributeID id.TributeID) error
	Reject(ctx context.Context, tributeID id.TributeID) error
	MarkPaid(ctx context.Context, tributeID id.TributeID) error
	VisibleForPerson(ctx context.Context, personID id.PersonID) ([]*models.Tribute, error)
	AllForPerson(ctx context.Context, personID id.PersonID) ([]*models.Tribute, error)
}

// Handler handles tribute endpoints.
type Handler struct {
	tributes Service
	auth     *admin.Service
	logger   *slog.Logger
}

// New creates a tribute Handler.
func New(tributes Service, auth *admin.Service, logger *slog.Logger) *Handler {
	return &Handler{tributes: tributes, auth: auth, logger: logger}
}

// Register registers the tribute routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/persons/{personID}/tributes", h.handleListVisible)
	r.Post("/admin/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(admin.RequireModerator(h.auth, h.logger))
		r.Get("/admin/persons/{personID}/tributes", h.handleListAll)
		r.Post("/admin/tributes/{tributeID}/approve", h.transitionHandler(h.tributes.Approve, "approve"))
		r.Post("/admin/tributes/{tributeID}/reject", h.transitionHandler(h.tributes.Reject, "reject"))
		r.Post("/admin/tributes/{tributeID}/pay", h.transitionHandler(h.tributes.MarkPaid, "pay"))
	})
}

type tributeResponse struct {
	ID          string `json:"id"`
	PersonID    string `json:"person_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfDeath string `json:"date_of_death"`
	Content     string `json:"content"`
	Moderation  string `json:"moderation_status,omitempty"`
	Payment     string `json:"payment_status,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toTributeResponse(t *models.Tribute, includeStatus bool) tributeResponse {
	resp := tributeResponse{
		ID:          t.ID.String(),
		PersonID:    t.PersonID.String(),
		FirstName:   t.FirstName,
		LastName:    t.LastName,
		DateOfDeath: t.DateOfDeath.Format(time.DateOnly),
		Content:     t.Content,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if includeStatus {
		resp.Moderation = string(t.Moderation)
		resp.Payment = string(t.Payment)
	}
	return resp
}

func (h *Handler) handleListVisible(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.tributes.VisibleForPerson, false)
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.tributes.AllForPerson, true)
}

func (h *Handler) list(
	w http.ResponseWriter,
	r *http.Request,
	lister func(context.Context, id.PersonID) ([]*models.Tribute, error),
	includeStatus bool,
) {
	ctx := r.Context()

	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	listed, err := lister(ctx, personID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tributes",
			"person_id", personID.String(),
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	responses := make([]tributeResponse, 0, len(listed))
	for _, t := range listed {
		responses = append(responses, toTributeResponse(t, includeStatus))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tributes": responses})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// transitionHandler wraps the approve/reject/pay operations, which differ
// only in the service call and the audit verb.
func (h *Handler) transitionHandler(apply func(context.Context, id.TributeID) error, verb string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tributeID, err := id.ParseTributeID(chi.URLParam(r, "tributeID"))
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tribute id"))
			return
		}

		if err := apply(ctx, tributeID); err != nil {
			httputil.WriteError(w, err)
			return
		}

		h.logger.InfoContext(ctx, "tribute transition applied",
			"verb", verb,
			"tribute_id", tributeID.String(),
			"moderator", admin.ModeratorFromContext(ctx),
			"request_id", requestcontext.RequestID(ctx),
		)
		w.WriteHeader(http.StatusNoContent)
	}
}
