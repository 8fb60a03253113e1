package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/fintrack-api/internal/user"
)

// TokenService defines the interface for token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID uuid.UUID, email string) (string, time.Time, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore is the credential store the service depends on.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Update(ctx context.Context, id uuid.UUID, fields user.UpdateFields) (*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// PasswordHasher hashes and verifies passwords. Verify reports false for any
// mismatch or unreadable digest; the error is reserved for context failures.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, encodedHash string) (bool, error)
}

// EventRecorder counts authentication outcomes.
type EventRecorder interface {
	AuthEvent(operation, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) AuthEvent(string, string) {}
