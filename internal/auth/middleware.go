package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/httputil"
	"github.com/redmonkez12/fintrack-api/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const IdentityContextKey ContextKey = "identity"

const (
	msgTokenRequired       = "Authentication token is required"
	msgInvalidHeaderFormat = "Invalid authorization header format"
	msgInvalidToken        = "Invalid or expired token"
)

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth validates the bearer token and attaches the identity to the request context
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.RespondError(w, r, apperror.Unauthorized(msgTokenRequired))
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.Contains(token, " ") {
			httputil.RespondError(w, r, apperror.Unauthorized(msgInvalidHeaderFormat))
			return
		}

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, ErrTokenExpired) {
				reason = "expired"
			}
			logger.Warn("token rejected", "reason", reason, "error", err.Error())
			httputil.RespondError(w, r, apperror.Unauthorized(msgInvalidToken))
			return
		}

		identity := claims.Identity()
		ctx := WithIdentity(r.Context(), identity)
		ctx = logging.WithLogger(ctx, logger.WithFields(map[string]any{"user_id": identity.UserID}))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// IdentityFromContext extracts the authenticated identity from the request context
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(Identity)
	return identity, ok
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := IdentityFromContext(ctx)
	return identity.UserID, ok
}
