package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/logging"
	"github.com/redmonkez12/fintrack-api/internal/user"
)

const (
	msgUserNotFound      = "User not found"
	msgInvalidPassword   = "Invalid password"
	msgEmailRegistered   = "Email already registered"
	msgPasswordTooLong   = "Password must not exceed 72 bytes"
	outcomeSuccess       = "success"
	outcomeNotFound      = "not_found"
	outcomeInvalid       = "invalid_credentials"
	outcomeDuplicate     = "duplicate_email"
	outcomeInvalidInput  = "invalid_input"
	outcomeInternalError = "error"
)

// LoginResult is returned by a successful login
type LoginResult struct {
	User      user.Profile `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// RegisterInput holds the fields of a new account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateInput holds a partial profile update. Nil fields are unchanged.
type UpdateInput struct {
	Name        *string
	Email       *string
	NewPassword *string
}

// Service handles authentication business logic
type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenService
	events EventRecorder
	logger *logging.Logger
}

func NewService(users UserStore, hasher PasswordHasher, tokens TokenService, events EventRecorder, logger *logging.Logger) *Service {
	if events == nil {
		events = noopRecorder{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		events: events,
		logger: logger,
	}
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies credentials and issues an access token
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "login"
	email = NormalizeEmail(email)
	logger := s.log(ctx).WithFields(map[string]any{"operation": op, "email": email})

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, s.reject(logger, op, outcomeNotFound, apperror.NotFound(msgUserNotFound))
		}
		return nil, s.internal(logger, op, fmt.Errorf("failed to get user by email: %w", err))
	}
	logger = logger.WithFields(map[string]any{"user_id": u.ID})

	ok, err := s.hasher.Verify(ctx, password, u.PasswordHash)
	if err != nil {
		return nil, s.internal(logger, op, err)
	}
	if !ok {
		return nil, s.reject(logger, op, outcomeInvalid, apperror.Unauthorized(msgInvalidPassword))
	}

	token, expiresAt, err := s.tokens.CreateToken(u.ID, u.Email)
	if err != nil {
		return nil, s.internal(logger, op, err)
	}

	logger.Info("user logged in successfully")
	s.events.AuthEvent(op, outcomeSuccess)

	return &LoginResult{
		User:      u.Profile(),
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.Profile, error) {
	const op = "register"
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	logger := s.log(ctx).WithFields(map[string]any{"operation": op, "email": email})

	if err := s.ensureEmailAvailable(ctx, email); err != nil {
		return nil, s.fail(logger, op, err)
	}

	passwordHash, err := s.hashPassword(ctx, logger, op, in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, name, email, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, s.reject(logger, op, outcomeDuplicate, apperror.BadRequest(msgEmailRegistered))
		}
		return nil, s.internal(logger, op, fmt.Errorf("failed to create user: %w", err))
	}

	logger.Info("user registered successfully", "user_id", created.ID)
	s.events.AuthEvent(op, outcomeSuccess)

	profile := created.Profile()
	return &profile, nil
}

// Me returns the profile of the authenticated user
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	const op = "me"
	logger := s.log(ctx).WithFields(map[string]any{"operation": op, "user_id": userID})

	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, s.fail(logger, op, err)
	}

	profile := u.Profile()
	return &profile, nil
}

// Update applies a partial profile update
func (s *Service) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (*user.Profile, error) {
	const op = "update"
	logger := s.log(ctx).WithFields(map[string]any{"operation": op, "user_id": userID})

	current, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, s.fail(logger, op, err)
	}

	var fields user.UpdateFields

	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email != current.Email {
			logger = logger.WithFields(map[string]any{"email": email})
			if err := s.ensureEmailAvailable(ctx, email); err != nil {
				return nil, s.fail(logger, op, err)
			}
			fields.Email = &email
		}
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		fields.Name = &name
	}

	if in.NewPassword != nil {
		passwordHash, err := s.hashPassword(ctx, logger, op, *in.NewPassword)
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = &passwordHash
	}

	if fields.IsEmpty() {
		profile := current.Profile()
		return &profile, nil
	}

	updated, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return nil, s.reject(logger, op, outcomeNotFound, apperror.NotFound(msgUserNotFound))
		case errors.Is(err, user.ErrDuplicateEmail):
			return nil, s.reject(logger, op, outcomeDuplicate, apperror.BadRequest(msgEmailRegistered))
		default:
			return nil, s.internal(logger, op, fmt.Errorf("failed to update user: %w", err))
		}
	}

	logger.Info("user profile updated", "password_changed", fields.PasswordHash != nil)
	s.events.AuthEvent(op, outcomeSuccess)

	profile := updated.Profile()
	return &profile, nil
}

// Delete removes the account and returns its last state
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	const op = "delete"
	logger := s.log(ctx).WithFields(map[string]any{"operation": op, "user_id": userID})

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, s.fail(logger, op, err)
	}

	deleted, err := s.users.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, s.reject(logger, op, outcomeNotFound, apperror.NotFound(msgUserNotFound))
		}
		return nil, s.internal(logger, op, fmt.Errorf("failed to delete user: %w", err))
	}

	logger.Info("user account deleted")
	s.events.AuthEvent(op, outcomeSuccess)

	profile := deleted.Profile()
	return &profile, nil
}

func (s *Service) getUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Internal(fmt.Errorf("failed to get user by id: %w", err))
	}
	return u, nil
}

func (s *Service) hashPassword(ctx context.Context, logger *logging.Logger, op, password string) (string, error) {
	passwordHash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return "", s.reject(logger, op, outcomeInvalidInput, apperror.Validation(msgPasswordTooLong))
		}
		return "", s.internal(logger, op, err)
	}
	return passwordHash, nil
}

func (s *Service) ensureEmailAvailable(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return apperror.BadRequest(msgEmailRegistered)
	case errors.Is(err, user.ErrNotFound):
		return nil
	default:
		return apperror.Internal(fmt.Errorf("failed to get user by email: %w", err))
	}
}

// fail logs and counts an already classified error
func (s *Service) fail(logger *logging.Logger, op string, err error) error {
	switch apperror.KindOf(err) {
	case apperror.KindInternal:
		return s.internal(logger, op, err)
	case apperror.KindNotFound:
		return s.reject(logger, op, outcomeNotFound, err)
	case apperror.KindBadRequest:
		return s.reject(logger, op, outcomeDuplicate, err)
	default:
		return s.reject(logger, op, apperror.KindOf(err).String(), err)
	}
}

func (s *Service) reject(logger *logging.Logger, op, outcome string, err error) error {
	logger.Warn(op+" failed", "reason", outcome)
	s.events.AuthEvent(op, outcome)
	return err
}

func (s *Service) internal(logger *logging.Logger, op string, err error) error {
	logger.Error(op+" failed: internal error", "error", err.Error())
	s.events.AuthEvent(op, outcomeInternalError)
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.Internal(err)
}

func (s *Service) log(ctx context.Context) *logging.Logger {
	if logger, ok := logging.LoggerFromContext(ctx); ok {
		return logger
	}
	return s.logger
}
