package sessions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tpforum/internal/common"
	"github.com/dmitrijs2005/tpforum/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	expires := time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC)
	created := expires.Add(-30 * 24 * time.Hour)

	q := `(?s)^INSERT\s+INTO\s+user_sessions\s*\(id,\s*user_id,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+created_at\s*$`
	mock.ExpectQuery(q).
		WithArgs("sid", int64(1), expires).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery(q).WillReturnError(errors.New("fk violation"))

	s := &models.Session{ID: "sid", UserID: 1, ExpiresAt: expires}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, created, s.CreatedAt)

	err := repo.Create(context.Background(), &models.Session{ID: "x", UserID: 9, ExpiresAt: expires})
	assert.ErrorContains(t, err, "fk violation")
}

func TestFind(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	expires := time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC)

	q := `(?s)^SELECT\s+id,\s*user_id,\s*expires_at,\s*created_at\s+FROM\s+user_sessions\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("sid").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "expires_at", "created_at"}).AddRow("sid", int64(1), expires, expires))
	mock.ExpectQuery(q).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(q).WithArgs("broken").WillReturnError(errors.New("boom"))

	got, err := repo.Find(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, expires, got.ExpiresAt)

	_, err = repo.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Find(context.Background(), "broken")
	assert.ErrorContains(t, err, "db error")
	require.NoError(t, mock.ExpectationsWereMet())
}
