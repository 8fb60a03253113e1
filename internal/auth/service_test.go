package auth

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/logging"
	"github.com/redmonkez12/fintrack-api/internal/user"
)

type recordedEvent struct {
	operation string
	outcome   string
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *fakeRecorder) AuthEvent(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{operation, outcome})
}

func (r *fakeRecorder) last() recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return recordedEvent{}
	}
	return r.events[len(r.events)-1]
}

// failingStore fails every call with err.
type failingStore struct {
	err error
}

func (f failingStore) Create(context.Context, string, string, string) (*user.User, error) {
	return nil, f.err
}
func (f failingStore) GetByEmail(context.Context, string) (*user.User, error) { return nil, f.err }
func (f failingStore) GetByID(context.Context, uuid.UUID) (*user.User, error) { return nil, f.err }
func (f failingStore) Update(context.Context, uuid.UUID, user.UpdateFields) (*user.User, error) {
	return nil, f.err
}
func (f failingStore) Delete(context.Context, uuid.UUID) (*user.User, error) { return nil, f.err }

// raceStore simulates a concurrent writer: the existence check finds no
// user, but the write hits the unique constraint.
type raceStore struct {
	*user.MemoryRepository
}

func (raceStore) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (raceStore) Create(context.Context, string, string, string) (*user.User, error) {
	return nil, user.ErrDuplicateEmail
}
func (raceStore) Update(context.Context, uuid.UUID, user.UpdateFields) (*user.User, error) {
	return nil, user.ErrDuplicateEmail
}

type testEnv struct {
	service  *Service
	store    *user.MemoryRepository
	tokens   *JWTService
	recorder *fakeRecorder
	logs     *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hasher, err := NewHasher(HashBcrypt, bcrypt.MinCost, 4)
	require.NoError(t, err)
	tokens, err := NewJWTService(testSecret, 24*time.Hour)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	store := user.NewMemoryRepository()
	recorder := &fakeRecorder{}
	logger := logging.NewWithWriter(logs, false, slog.LevelDebug)

	return &testEnv{
		service:  NewService(store, hasher, tokens, recorder, logger),
		store:    store,
		tokens:   tokens,
		recorder: recorder,
		logs:     logs,
	}
}

func (e *testEnv) register(t *testing.T, name, email, password string) *user.Profile {
	t.Helper()
	profile, err := e.service.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return profile
}

func requireKind(t *testing.T, err error, kind apperror.Kind, message string) {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	env := newTestEnv(t)

	profile := env.register(t, " Ann ", "  Ann@X.com ", "secret123")
	assert.Equal(t, "ann@x.com", profile.Email)
	assert.Equal(t, "Ann", profile.Name)

	stored, err := env.store.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
	assert.Equal(t, recordedEvent{"register", "success"}, env.recorder.last())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ann", "ann@x.com", "secret123")

	_, err := env.service.Register(context.Background(), RegisterInput{Name: "Ann", Email: "ANN@x.com", Password: "secret123"})
	requireKind(t, err, apperror.KindBadRequest, "Email already registered")
	assert.Equal(t, recordedEvent{"register", "duplicate_email"}, env.recorder.last())
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	profile := env.register(t, "Ann", "Ann@X.com", "secret123")

	result, err := env.service.Login(context.Background(), "ANN@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, result.User.ID)
	assert.Equal(t, "Bearer", result.TokenType)

	claims, err := env.tokens.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, recordedEvent{"login", "success"}, env.recorder.last())
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Login(context.Background(), "ghost@x.com", "secret123")
	requireKind(t, err, apperror.KindNotFound, "User not found")
	assert.Equal(t, recordedEvent{"login", "not_found"}, env.recorder.last())
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ann", "ann@x.com", "secret123")

	_, err := env.service.Login(context.Background(), "ann@x.com", "secret124")
	requireKind(t, err, apperror.KindUnauthorized, "Invalid password")
	assert.Equal(t, recordedEvent{"login", "invalid_credentials"}, env.recorder.last())
}

func TestMeAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profile := env.register(t, "Ann", "ann@x.com", "secret123")

	me, err := env.service.Me(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, *profile, *me)

	deleted, err := env.service.Delete(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, deleted.ID)

	_, err = env.service.Me(ctx, profile.ID)
	requireKind(t, err, apperror.KindNotFound, "User not found")

	_, err = env.service.Delete(ctx, profile.ID)
	requireKind(t, err, apperror.KindNotFound, "User not found")
}

func TestUpdateFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profile := env.register(t, "Ann", "ann@x.com", "secret123")

	name := " Annie "
	email := " ANNIE@x.com"
	newPassword := "newsecret1"

	updated, err := env.service.Update(ctx, profile.ID, UpdateInput{Name: &name, Email: &email, NewPassword: &newPassword})
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.Equal(t, "annie@x.com", updated.Email)

	_, err = env.service.Login(ctx, "annie@x.com", "secret123")
	requireKind(t, err, apperror.KindUnauthorized, "Invalid password")

	_, err = env.service.Login(ctx, "annie@x.com", "newsecret1")
	require.NoError(t, err)
}

func TestUpdateSameEmailSkipsExistenceCheck(t *testing.T) {
	env := newTestEnv(t)
	profile := env.register(t, "Ann", "ann@x.com", "secret123")

	same := "Ann@x.com"
	updated, err := env.service.Update(context.Background(), profile.ID, UpdateInput{Email: &same})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", updated.Email)
}

func TestUpdateEmailTaken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ann", "ann@x.com", "secret123")
	bob := env.register(t, "Bob", "bob@x.com", "secret123")

	taken := "ann@x.com"
	_, err := env.service.Update(context.Background(), bob.ID, UpdateInput{Email: &taken})
	requireKind(t, err, apperror.KindBadRequest, "Email already registered")
}

func TestUniqueConstraintViolationIsBadRequest(t *testing.T) {
	hasher, err := NewHasher(HashBcrypt, bcrypt.MinCost, 1)
	require.NoError(t, err)
	tokens, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	memory := user.NewMemoryRepository()
	existing, err := memory.Create(ctx, "Bob", "bob@x.com", "hash")
	require.NoError(t, err)

	recorder := &fakeRecorder{}
	svc := NewService(raceStore{memory}, hasher, tokens, recorder, logging.NewNop())

	_, err = svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret123"})
	requireKind(t, err, apperror.KindBadRequest, "Email already registered")
	assert.Equal(t, recordedEvent{"register", "duplicate_email"}, recorder.last())

	email := "ann@x.com"
	_, err = svc.Update(ctx, existing.ID, UpdateInput{Email: &email})
	requireKind(t, err, apperror.KindBadRequest, "Email already registered")
	assert.Equal(t, recordedEvent{"update", "duplicate_email"}, recorder.last())
}

func TestOverlongPasswordIsValidationError(t *testing.T) {
	env := newTestEnv(t)
	password := strings.Repeat("é", 40)

	_, err := env.service.Register(context.Background(), RegisterInput{Name: "Ann", Email: "ann@x.com", Password: password})
	requireKind(t, err, apperror.KindValidation, "Password must not exceed 72 bytes")
	assert.Equal(t, recordedEvent{"register", "invalid_input"}, env.recorder.last())

	profile := env.register(t, "Bob", "bob@x.com", "secret123")
	_, err = env.service.Update(context.Background(), profile.ID, UpdateInput{NewPassword: &password})
	requireKind(t, err, apperror.KindValidation, "Password must not exceed 72 bytes")
}

func TestUpdateMissingUser(t *testing.T) {
	env := newTestEnv(t)
	name := "Ghost"

	_, err := env.service.Update(context.Background(), uuid.New(), UpdateInput{Name: &name})
	requireKind(t, err, apperror.KindNotFound, "User not found")
}

func TestAdapterFailuresBecomeInternal(t *testing.T) {
	hasher, err := NewHasher(HashBcrypt, bcrypt.MinCost, 1)
	require.NoError(t, err)
	tokens, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	cause := errors.New("connection refused")
	recorder := &fakeRecorder{}
	svc := NewService(failingStore{err: cause}, hasher, tokens, recorder, logging.NewNop())
	ctx := context.Background()

	_, err = svc.Login(ctx, "ann@x.com", "secret123")
	requireKind(t, err, apperror.KindInternal, "Internal Server Error")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, recordedEvent{"login", "error"}, recorder.last())

	_, err = svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret123"})
	requireKind(t, err, apperror.KindInternal, "")

	_, err = svc.Me(ctx, uuid.New())
	requireKind(t, err, apperror.KindInternal, "")
}

func TestServiceNeverLogsSecrets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "Ann", "ann@x.com", "supersecret-password")
	_, _ = env.service.Login(ctx, "ann@x.com", "wrong-password-value")
	result, err := env.service.Login(ctx, "ann@x.com", "supersecret-password")
	require.NoError(t, err)

	stored, err := env.store.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)

	logs := env.logs.String()
	assert.NotEmpty(t, logs)
	assert.NotContains(t, logs, "supersecret-password")
	assert.NotContains(t, logs, "wrong-password-value")
	assert.NotContains(t, logs, stored.PasswordHash)
	assert.NotContains(t, logs, result.Token)
	assert.NotContains(t, logs, string(testSecret))
}
