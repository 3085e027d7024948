package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/client/config"
	"github.com/dmitrijs2005/edustream/internal/client/models"
	"github.com/dmitrijs2005/edustream/internal/client/services"
	"github.com/dmitrijs2005/edustream/internal/client/session"
	"github.com/dmitrijs2005/edustream/internal/cryptox"
	"github.com/dmitrijs2005/edustream/internal/filex"
	"github.com/dmitrijs2005/edustream/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type sessionManager interface {
	Login(ctx context.Context, email, password string, remember bool) (*models.User, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	CheckAuthStatus(ctx context.Context) bool
	State() services.State
	Wait()
}

type profileSource interface {
	User(ctx context.Context) (*models.User, error)
}

type cartService interface {
	Add(ctx context.Context, c models.Course) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	Items(ctx context.Context) ([]models.Course, error)
	Total(ctx context.Context) (float64, error)
	Checkout(ctx context.Context) (*models.Order, error)
}

type catalogService interface {
	List(ctx context.Context) ([]models.Course, error)
	Find(ctx context.Context, id string) (*models.Course, error)
}

type dashboardService interface {
	Summary(ctx context.Context) (*models.Dashboard, error)
	Order(ctx context.Context, id string) (*models.Order, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config    *config.Config
	session   sessionManager
	profile   profileSource
	cart      cartService
	catalog   catalogService
	dashboard dashboardService
	pinger    pinger
	logger    logging.Logger
	db        *sql.DB

	reader *bufio.Reader
	out    io.Writer

	mu       sync.RWMutex
	mode     Mode
	userName string
}

// NewApp opens the local store and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	dbPath, err := filex.EnsureParentDir(c.LocalDBPath)
	if err != nil {
		return nil, err
	}

	key, err := cryptox.LoadOrCreateKey(dbPath + ".key")
	if err != nil {
		logger.Error(ctx, "error loading local key", "error", err)
		return nil, err
	}
	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewStore(db).WithSealer(sealer)
	gw := client.NewGateway(c.ServerEndpointAddr, c.RequestTimeout, store, logger)
	sm := services.NewSessionManager(gw, gw, store, logger)
	gw.SetLogoutHook(func(ctx context.Context) {
		_ = sm.Logout(ctx)
	})

	a := &App{
		config:    c,
		session:   sm,
		profile:   store,
		cart:      services.NewCartService(store, gw, sm, logger),
		catalog:   services.NewCatalogService(gw),
		dashboard: services.NewDashboardService(gw),
		pinger:    gw,
		logger:    logger.With("module", "cli"),
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	sm.OnLogout(func() { a.setUserName("") })

	return a, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) currentUserName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userName
}

// Run restores the stored session, starts the connectivity watcher and
// blocks in the REPL until the user leaves or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	a.printf("Welcome to EduStream (type 'help' for commands)\n")
	a.restoreSession(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	a.session.Wait()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "closing local store failed", "error", err)
		}
	}
}

func (a *App) restoreSession(ctx context.Context) {
	if !a.session.CheckAuthStatus(ctx) {
		return
	}
	u, err := a.profile.User(ctx)
	if err != nil || u == nil {
		return
	}
	a.setUserName(u.Email)
	a.printf("Signed in as %s\n", u.Email)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

func (a *App) getStatus() string {
	s := ""
	if n := a.currentUserName(); n != "" {
		s = n + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and switches
// the mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.pinger.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
