package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/logging"
)

type failingStore struct {
	MemoryRepository
	err error
}

func (s *failingStore) ListByUser(context.Context, uuid.UUID) ([]Record, error) {
	return nil, s.err
}

func (s *failingStore) GetByID(context.Context, uuid.UUID, uuid.UUID) (*Record, error) {
	return nil, s.err
}

func newTestService(t *testing.T) (*Service, *MemoryRepository) {
	t.Helper()

	repo := NewMemoryRepository()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return NewService(repo, logging.NewNop()), repo
}

func TestServiceCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	owner, other := uuid.New(), uuid.New()

	first, err := svc.Create(ctx, owner, CreateInput{Amount: 100, Description: "salary", Type: TypeIncome})
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner, CreateInput{Amount: 3.5, Description: "coffee", Type: TypeExpense})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, CreateInput{Amount: 1, Description: "gum", Type: TypeExpense})
	require.NoError(t, err)

	records, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
	assert.Equal(t, owner, records[0].UserID)
}

func TestServiceOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	owner, intruder := uuid.New(), uuid.New()

	rec, err := svc.Create(ctx, owner, CreateInput{Amount: 10, Description: "book", Type: TypeExpense})
	require.NoError(t, err)

	description := "stolen"
	checks := map[string]func() error{
		"get": func() error {
			_, err := svc.Get(ctx, rec.ID, intruder)
			return err
		},
		"update": func() error {
			_, err := svc.Update(ctx, rec.ID, intruder, UpdateFields{Description: &description})
			return err
		},
		"delete": func() error {
			_, err := svc.Delete(ctx, rec.ID, intruder)
			return err
		},
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			err := check()
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindNotFound, appErr.Kind)
			assert.Equal(t, "Record not found", appErr.Message)
		})
	}

	got, err := svc.Get(ctx, rec.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "book", got.Description)
}

func TestServiceUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	owner := uuid.New()

	rec, err := svc.Create(ctx, owner, CreateInput{Amount: 10, Description: "book", Type: TypeExpense})
	require.NoError(t, err)

	amount := 12.75
	updated, err := svc.Update(ctx, rec.ID, owner, UpdateFields{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 12.75, updated.Amount)
	assert.Equal(t, "book", updated.Description)
	assert.Equal(t, TypeExpense, updated.Type)
	assert.True(t, updated.UpdatedAt.After(rec.UpdatedAt))

	unchanged, err := svc.Update(ctx, rec.ID, owner, UpdateFields{})
	require.NoError(t, err)
	assert.Equal(t, updated.UpdatedAt, unchanged.UpdatedAt)
}

func TestServiceDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	owner := uuid.New()

	rec, err := svc.Create(ctx, owner, CreateInput{Amount: 10, Description: "book", Type: TypeExpense})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, rec.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, deleted.ID)

	_, err = svc.Get(ctx, rec.ID, owner)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestServiceStoreFailureIsInternal(t *testing.T) {
	svc := NewService(&failingStore{err: errors.New("connection reset")}, logging.NewNop())

	_, err := svc.List(context.Background(), uuid.New())
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))

	_, err = svc.Get(context.Background(), uuid.New(), uuid.New())
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInternal, appErr.Kind)
	assert.Equal(t, "Internal Server Error", appErr.Message)
}

func TestMemoryRepositoryDeleteByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	owner, other := uuid.New(), uuid.New()

	_, err := repo.Create(ctx, Record{UserID: owner, Amount: 1, Description: "a", Type: TypeIncome})
	require.NoError(t, err)
	kept, err := repo.Create(ctx, Record{UserID: other, Amount: 2, Description: "b", Type: TypeIncome})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByUser(ctx, owner))

	records, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = repo.GetByID(ctx, kept.ID, other)
	assert.NoError(t, err)
}
