package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	pasetoHeader = "v4.local."
	// nonce (32) + authentication tag (32)
	pasetoMinPayload = 64

	pasetoKeyInfo = "fintrack-api paseto v4.local"
)

// PasetoService handles PASETO token creation and validation
// Uses v4.local (symmetric encryption with XChaCha20 and BLAKE2b)
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	ttl          time.Duration
	now          func() time.Time
}

// NewPasetoService derives a 32-byte v4.local key from secret with HKDF-SHA256.
func NewPasetoService(secret []byte, ttl time.Duration) (*PasetoService, error) {
	if err := checkTokenSettings(secret, ttl); err != nil {
		return nil, err
	}

	keyBytes := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(pasetoKeyInfo)), keyBytes); err != nil {
		return nil, fmt.Errorf("failed to derive symmetric key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &PasetoService{
		symmetricKey: key,
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// CreateToken generates a new PASETO v4.local token for the user
func (s *PasetoService) CreateToken(userID uuid.UUID, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(expiresAt)
	token.SetSubject(userID.String())
	token.SetString("email", email)

	return token.V4Encrypt(s.symmetricKey, nil), expiresAt, nil
}

// VerifyToken decrypts and authenticates a PASETO v4.local token and returns the claims
func (s *PasetoService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	if !wellFormedPaseto(tokenStr) {
		return nil, ErrTokenMalformed
	}

	// Expiry is checked against the injected clock below
	token, err := paseto.NewParserWithoutExpiryCheck().ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return nil, ErrTokenSignatureInvalid
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, ErrTokenMalformed
	}
	if !s.now().Before(expiresAt) {
		return nil, ErrTokenExpired
	}

	subject, err := token.GetSubject()
	if err != nil {
		return nil, ErrTokenMalformed
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	email, err := token.GetString("email")
	if err != nil || email == "" {
		return nil, ErrTokenMalformed
	}

	issuedAt, err := token.GetIssuedAt()
	if err != nil {
		return nil, ErrTokenMalformed
	}

	return &TokenClaims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

func wellFormedPaseto(tokenStr string) bool {
	body, ok := strings.CutPrefix(tokenStr, pasetoHeader)
	if !ok {
		return false
	}

	payload, _, _ := strings.Cut(body, ".")
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return false
	}

	return len(raw) > pasetoMinPayload
}
