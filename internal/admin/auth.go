// Package admin authenticates moderators for the moderation endpoints.
// Moderators log in with a username and password and receive a short-lived
// HMAC-signed JWT.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	dErrors "pomen/pkg/domain-errors"
	"pomen/pkg/platform/sentinel"
	"pomen/pkg/requestcontext"
)

const roleModerator = "moderator"

// Moderator is a staff account allowed to approve, reject, and mark
// tributes paid.
type Moderator struct {
	Username     string
	PasswordHash []byte
}

// Store is the moderator account lookup contract.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*Moderator, error)
}

// Claims carried in a moderator token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and validates moderator tokens.
type Service struct {
	moderators Store
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
	logger     *slog.Logger
}

// New constructs the admin auth service.
func New(moderators Store, signingKey, issuer string, tokenTTL time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		moderators: moderators,
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// Login verifies the credentials and returns a signed token. Unknown users
// and wrong passwords return the same unauthorized error.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "username and password are required")
	}

	mod, err := s.moderators.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load moderator")
	}
	if err := bcrypt.CompareHashAndPassword(mod.PasswordHash, []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "moderator login rejected",
			"username", username,
			"request_id", requestcontext.RequestID(ctx),
		)
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	now := requestcontext.Now(ctx)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: mod.Username,
		Role:     roleModerator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// ValidateToken parses and verifies a moderator token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Role != roleModerator {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "insufficient role")
	}
	return claims, nil
}

// HashPassword returns a bcrypt hash for seeding moderator accounts.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
