package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token has expired")
)

const (
	TokenFormatJWT    = "jwt"
	TokenFormatPaseto = "paseto"

	// MinSecretLength is the minimum signing secret length in bytes.
	MinSecretLength = 32
)

// TokenClaims represents the verified contents of an access token
type TokenClaims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Identity is the authenticated subject attached to a request.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

func (c *TokenClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email}
}

// NewTokenService builds the token service for the configured format.
func NewTokenService(format string, secret []byte, ttl time.Duration) (TokenService, error) {
	var (
		svc TokenService
		err error
	)

	switch format {
	case TokenFormatJWT, "":
		svc, err = NewJWTService(secret, ttl)
	case TokenFormatPaseto:
		svc, err = NewPasetoService(secret, ttl)
	default:
		return nil, fmt.Errorf("unsupported token format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func checkTokenSettings(secret []byte, ttl time.Duration) error {
	if len(secret) < MinSecretLength {
		return fmt.Errorf("token secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	if ttl <= 0 {
		return errors.New("token lifetime must be positive")
	}
	return nil
}
