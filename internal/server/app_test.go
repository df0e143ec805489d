package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tpforum/internal/dbx"
	"github.com/dmitrijs2005/tpforum/internal/logging"
	"github.com/dmitrijs2005/tpforum/internal/server/avatars"
	"github.com/dmitrijs2005/tpforum/internal/server/config"
	"github.com/dmitrijs2005/tpforum/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tpforum/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/tpforum/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository       { return nil }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository { return nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.HealthAddr = "127.0.0.1:0"
	return cfg
}

func newTestApp(cfg *config.Config) *App {
	app := NewApp(cfg)
	app.logger = logging.Nop{}
	return app
}

// stubStorage swaps the storage seams and returns the mock behind the
// opened database.
func stubStorage(t *testing.T, rm *fakeRepoManager) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	origOpen, origRM := openDB, newRepoManager
	t.Cleanup(func() { openDB, newRepoManager = origOpen, origRM })

	openDB = func(context.Context, string) (*sql.DB, error) { return db, nil }
	newRepoManager = func() repomanager.RepositoryManager { return rm }
	return mock
}

func TestRun_DBInitError(t *testing.T) {
	origOpen := openDB
	t.Cleanup(func() { openDB = origOpen })
	openDB = func(context.Context, string) (*sql.DB, error) { return nil, errors.New("connection refused") }

	err := newTestApp(testConfig()).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestRun_MigrationError_ClosesDB(t *testing.T) {
	rm := &fakeRepoManager{migrateErr: errors.New("bad sql")}
	mock := stubStorage(t, rm)
	mock.ExpectClose()

	err := newTestApp(testConfig()).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	rm := &fakeRepoManager{}
	mock := stubStorage(t, rm)
	mock.ExpectClose()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestApp(testConfig()).Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
	assert.True(t, rm.migrated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_ServerFailureStopsApp(t *testing.T) {
	rm := &fakeRepoManager{}
	mock := stubStorage(t, rm)
	mock.ExpectClose()

	cfg := testConfig()
	cfg.HTTPAddr = "127.0.0.1:99999"

	done := make(chan error, 1)
	go func() { done <- newTestApp(cfg).Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after server failure")
	}
}

func TestAvatarResolver_PassthroughWithoutBucket(t *testing.T) {
	app := newTestApp(testConfig())

	r, err := app.avatarResolver(context.Background())
	require.NoError(t, err)
	assert.IsType(t, avatars.Passthrough{}, r)
}

func TestAvatarResolver_S3WhenBucketSet(t *testing.T) {
	orig := newS3Presigner
	t.Cleanup(func() { newS3Presigner = orig })

	var got avatars.S3Config
	newS3Presigner = func(_ context.Context, c avatars.S3Config) (avatars.URLResolver, error) {
		got = c
		return avatars.Passthrough{}, nil
	}

	cfg := testConfig()
	cfg.S3Bucket = "avatars"
	cfg.S3Region = "eu-north-1"
	cfg.AvatarURLValidity = 5 * time.Minute

	_, err := newTestApp(cfg).avatarResolver(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "avatars", got.Bucket)
	assert.Equal(t, "eu-north-1", got.Region)
	assert.Equal(t, cfg.S3RootUser, got.RootUser)
	assert.Equal(t, 5*time.Minute, got.Expires)
}
