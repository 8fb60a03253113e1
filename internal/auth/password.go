package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	HashBcrypt   = "bcrypt"
	HashArgon2id = "argon2id"

	DefaultBcryptCost = 12

	// MaxPasswordBytes is bcrypt's input limit, applied to both algorithms.
	MaxPasswordBytes = 72
)

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Argon2id parameters - tuned for security vs performance balance
// Time: 3, Memory: 64MB, Threads: 4, KeyLen: 32 bytes
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16

	argon2Prefix = "$argon2id$"
)

// Hasher produces salted adaptive password digests. Hashing is CPU bound, so
// at most a fixed number of operations run at once.
type Hasher struct {
	algorithm  string
	bcryptCost int
	sem        *semaphore.Weighted
}

func NewHasher(algorithm string, bcryptCost, concurrency int) (*Hasher, error) {
	switch algorithm {
	case HashBcrypt, HashArgon2id:
	default:
		return nil, fmt.Errorf("unsupported password hash algorithm %q", algorithm)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, bcryptCost)
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("hash concurrency must be positive, got %d", concurrency)
	}

	return &Hasher{
		algorithm:  algorithm,
		bcryptCost: bcryptCost,
		sem:        semaphore.NewWeighted(int64(concurrency)),
	}, nil
}

// Hash returns a digest in the configured algorithm's standard encoding
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	if h.algorithm == HashArgon2id {
		return hashArgon2id(password)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify checks password against a bcrypt or argon2id digest, whichever the
// digest is. Unreadable digests never match.
func (h *Hasher) Verify(ctx context.Context, password, encodedHash string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	switch {
	case strings.HasPrefix(encodedHash, argon2Prefix):
		return verifyArgon2id(encodedHash, password), nil
	case strings.HasPrefix(encodedHash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil, nil
	default:
		return false, nil
	}
}

func hashArgon2id(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		argon2Time,
		argon2Memory,
		argon2Threads,
		argon2KeyLen,
	)

	// Encode as: $argon2id$v=19$m=65536,t=3,p=4$salt$hash
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyArgon2id(encodedHash, password string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	// argon2.IDKey panics on zero parameters
	if memory == 0 || time == 0 || threads == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(decodedHash) == 0 {
		return false
	}

	inputHash := argon2.IDKey(
		[]byte(password),
		salt,
		time,
		memory,
		threads,
		uint32(len(decodedHash)),
	)

	return subtle.ConstantTimeCompare(decodedHash, inputHash) == 1
}
