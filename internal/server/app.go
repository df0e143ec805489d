// Package server initializes and runs the auth server: it opens Postgres,
// applies migrations, builds the user service and runs the HTTP endpoint next
// to the gRPC health service until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tpforum/internal/logging"
	"github.com/dmitrijs2005/tpforum/internal/server/avatars"
	"github.com/dmitrijs2005/tpforum/internal/server/config"
	"github.com/dmitrijs2005/tpforum/internal/server/httpapi"
	"github.com/dmitrijs2005/tpforum/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tpforum/internal/server/services"

	gs "github.com/dmitrijs2005/tpforum/internal/server/grpc"
)

// Seams replaced in tests.
var (
	openDB         = repomanager.OpenPostgres
	newRepoManager = repomanager.NewPostgresRepositoryManager
	newS3Presigner = func(ctx context.Context, c avatars.S3Config) (avatars.URLResolver, error) {
		return avatars.NewS3Presigner(ctx, c)
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) *App {
	return &App{config: c, logger: logging.NewJSON(os.Stdout, slog.LevelInfo)}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) avatarResolver(ctx context.Context) (avatars.URLResolver, error) {
	if app.config.S3Bucket == "" {
		app.logger.Info(ctx, "S3 bucket not configured, avatar URLs are returned as stored")
		return avatars.Passthrough{}, nil
	}
	return newS3Presigner(ctx, avatars.S3Config{
		RootUser:     app.config.S3RootUser,
		RootPassword: app.config.S3RootPassword,
		Bucket:       app.config.S3Bucket,
		Region:       app.config.S3Region,
		BaseEndpoint: app.config.S3BaseEndpoint,
		Expires:      app.config.AvatarURLValidity,
	})
}

func (app *App) initStorage(ctx context.Context) (*sql.DB, repomanager.RepositoryManager, error) {
	db, err := openDB(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations error: %w", err)
	}
	return db, rm, nil
}

// Run blocks until ctx is cancelled, a shutdown signal arrives or one of the
// servers fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	db, rm, err := app.initStorage(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	resolver, err := app.avatarResolver(ctx)
	if err != nil {
		return fmt.Errorf("avatar storage init error: %w", err)
	}

	us := services.NewUserService(db, rm, resolver, app.config, app.logger)
	h := httpapi.NewHandler(us, app.logger.With("module", "http_api"))
	limiter := httpapi.NewIPRateLimiter(app.config.RateLimit, app.config.RateBurst)

	httpServer := httpapi.NewServer(app.config.HTTPAddr, httpapi.NewRouter(h, limiter), app.logger)
	healthServer := gs.NewHealthServer(app.config.HealthAddr, app.logger)

	var (
		wg      sync.WaitGroup
		errOnce sync.Once
		runErr  error
	)
	fail := func(err error) {
		if err == nil {
			return
		}
		app.logger.Error(ctx, err.Error())
		errOnce.Do(func() { runErr = err })
		cancelFunc()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		fail(httpServer.Run(ctx, nil))
		healthServer.SetServing(false)
	}()
	go func() {
		defer wg.Done()
		fail(healthServer.Run(ctx))
	}()

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return runErr
}
