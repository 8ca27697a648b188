package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "pomen/pkg/domain-errors"
	"pomen/pkg/platform/httputil"
	"pomen/pkg/requestcontext"
)

type contextKeyModerator struct{}

// ModeratorFromContext returns the authenticated moderator username, or ""
// outside an authenticated request.
func ModeratorFromContext(ctx context.Context) string {
	username, _ := ctx.Value(contextKeyModerator{}).(string)
	return username
}

// TokenValidator is implemented by *Service.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// RequireModerator rejects requests without a valid moderator bearer token
// and stores the moderator username in the context.
func RequireModerator(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "moderator token required"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "moderator token rejected",
					"error", err.Error(),
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, err)
				return
			}

			ctx = context.WithValue(ctx, contextKeyModerator{}, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
