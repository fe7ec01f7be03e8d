package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/client/client"
	"github.com/dmitrijs2005/lifemgmt/internal/client/config"
	"github.com/dmitrijs2005/lifemgmt/internal/client/guard"
	"github.com/dmitrijs2005/lifemgmt/internal/client/notify"
	"github.com/dmitrijs2005/lifemgmt/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lifemgmt/internal/client/services"
	"github.com/dmitrijs2005/lifemgmt/internal/client/session"
	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"github.com/dmitrijs2005/lifemgmt/internal/logging"
)

// sessionCheckTimeout bounds a single background session check.
const sessionCheckTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService services.AuthService
	store       *session.Store
	guard       *guard.Guard
	router      *Router
	queue       *notify.Queue
	token       func() string
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens the local database and wires the session controller.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	tokens := metadata.NewTokenStore(metadata.NewSQLiteRepository(db))

	a := newApp(api, tokens, logger)
	a.config = c
	a.db = db
	return a, nil
}

// newApp wires everything except the database; tests call it directly.
func newApp(api client.Client, tokens services.TokenStore, logger logging.Logger) *App {
	store := session.NewStore()
	queue := notify.NewQueue()
	router := NewRouter(common.LoginViewPath)

	return &App{
		logger:      logger,
		authService: services.NewAuthService(api, store, queue, router, tokens, logger),
		store:       store,
		guard:       guard.New(store, router),
		router:      router,
		queue:       queue,
		token:       api.Token,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// Run restores a stored session, starts the session watcher and serves the
// REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to lifemgmt (type 'help' for commands)")

	a.authService.Restore(ctx)
	if a.isLoggedIn() {
		a.router.Navigate(common.DefaultViewPath, true)
	}

	stop := a.watchGuard()
	defer stop()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartSessionWatcher(watchCtx, a.config.SessionCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

// Close releases the API client and the local database.
func (a *App) Close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "closing api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "closing local database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated
}

// watchGuard re-runs the guard whenever the session changes while a
// protected view is shown.
func (a *App) watchGuard() (stop func()) {
	return a.guard.Watch(func() bool { return IsProtected(a.router.Current()) }, nil)
}

// StartSessionWatcher periodically revalidates the session token until ctx
// is done. A non-positive interval disables the watcher.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, sessionCheckTimeout)
			a.authService.Revalidate(checkCtx)
			cancel()

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := a.router.Current()
	if st := a.store.Snapshot(); st.User != nil {
		s = st.User.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// flushNotifications drops expired notifications, then prints and drops
// the rest.
func (a *App) flushNotifications() {
	a.queue.Prune(time.Now())
	for _, n := range a.queue.Drain() {
		fmt.Fprintf(a.out, "[%s] %s\n", n.Type, n.Message)
	}
}
