package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/tpforum/internal/client/authflow"
	"github.com/dmitrijs2005/tpforum/internal/client/client"
	"github.com/dmitrijs2005/tpforum/internal/client/config"
	"github.com/dmitrijs2005/tpforum/internal/client/session"
	"github.com/dmitrijs2005/tpforum/internal/client/shell"
	"github.com/dmitrijs2005/tpforum/internal/client/storage"
	"github.com/dmitrijs2005/tpforum/internal/filex"
	"github.com/dmitrijs2005/tpforum/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const sessionDBName = "session.db"

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	health client.HealthChecker
	dialog *authflow.Dialog
	shell  *shell.Shell
	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := storage.Open(ctx, filepath.Join(dataDir, sessionDBName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	auth, err := client.NewHTTPClient(c.AuthEndpointURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	health, err := client.NewGRPCHealthClient(c.HealthAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewSQLiteStore(db)
	a := &App{
		config: c,
		log:    log,
		db:     db,
		health: health,
		shell:  shell.New(store, shell.SampleContent(), log),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.dialog = authflow.NewDialog(auth, store, authflow.NotifierFunc(a.notify), log)

	return a, nil
}

// Close releases the health connection and the session database.
func (a *App) Close() error {
	var err error
	if a.health != nil {
		err = a.health.Close()
	}
	if a.db != nil {
		if cerr := a.db.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) notify(n authflow.Notification) {
	if n.Description == "" {
		printlnFn(n.Title)
		return
	}
	printlnFn(fmt.Sprintf("%s %s", n.Title, n.Description))
}

func (a *App) isLoggedIn() bool {
	return a.shell.State().Authenticated()
}

// Run restores the session, starts the connectivity watcher and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.shell.Bootstrap(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	// A pending auth request must not apply once the user has asked to quit.
	go func() {
		<-ctx.Done()
		a.dialog.Close()
	}()

	printlnFn("Welcome to TP forum (type 'help' for commands)")
	_ = a.Show(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) getStatus() string {
	s := ""
	if st := a.shell.State(); st.User != nil {
		s = st.User.Username + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher polls the health service every interval until
// ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.health.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
