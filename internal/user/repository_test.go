package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/fintrack-api/internal/database"
)

var userColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(database.NewBunDB(sqlDB)), mock
}

func TestRepositoryGetByEmail(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "users" AS "u" WHERE (email = 'ann@x.com')`)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Ann", "ann@x.com", "$2a$12$hash", now, now))

	u, err := repo.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "$2a$12$hash", u.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "users" AS "u" WHERE (id = `)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"users_email_key\""})

	_, err := repo.Create(context.Background(), "Ann", "ann@x.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateSetsOnlyGivenFields(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	name := "Annie"

	mock.ExpectQuery(`UPDATE "users".* SET updated_at = .*name = 'Annie'.*RETURNING`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Annie", "ann@x.com", "hash", now, now))

	u, err := repo.Update(context.Background(), id, UpdateFields{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Annie", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepository(t)
	email := "taken@x.com"

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "users"`)).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Update(context.Background(), uuid.New(), UpdateFields{Email: &email})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM "users"`)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteReturnsRow(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM "users"`)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Ann", "ann@x.com", "hash", now, now))

	u, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "ann@x.com", u.Email)
}
