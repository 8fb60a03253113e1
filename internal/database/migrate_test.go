package database

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, name := range files {
		raw, err := fs.ReadFile(migrations, name)
		require.NoError(t, err)

		body := string(raw)
		assert.Contains(t, body, "-- +goose Up", name)
		assert.Contains(t, body, "-- +goose Down", name)
	}

	records, err := fs.ReadFile(migrations, migrationsDir+"/00002_create_records.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(records), "ON DELETE CASCADE"))
}

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	err = Migrate(context.Background(), sqlDB, "sideways")
	assert.ErrorContains(t, err, `unknown migration direction "sideways"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
