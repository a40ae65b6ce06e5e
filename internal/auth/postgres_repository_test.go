package auth

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/user-api/internal/database"
)

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewPostgresRepository(database.NewBunDB(sqlDB)), mock
}

func TestPostgresRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`INSERT INTO "tokens"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), "some-refresh-token")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Exists(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "tokens"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.Exists(context.Background(), "some-refresh-token")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "tokens"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.Exists(context.Background(), "some-refresh-token")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "tokens"`).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.Exists(context.Background(), "some-refresh-token")
		assert.Error(t, err)
	})
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Run("deletes the record", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(`DELETE FROM "tokens"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), "some-refresh-token")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("idempotent when nothing matches", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(`DELETE FROM "tokens"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(context.Background(), "some-refresh-token"))
	})
}

func TestHashToken(t *testing.T) {
	// Stored keys are digests, never the raw token string
	digest := hashToken("some-refresh-token")
	assert.Len(t, digest, 64)
	assert.NotContains(t, digest, "some-refresh-token")
	assert.Equal(t, digest, hashToken("some-refresh-token"))
	assert.NotEqual(t, digest, hashToken("another-token"))
}
