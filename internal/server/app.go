// Package server wires configuration, storage, services and the HTTP
// transport together and runs them until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/edustream/internal/logging"
	"github.com/dmitrijs2005/edustream/internal/server/auth"
	"github.com/dmitrijs2005/edustream/internal/server/config"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/edustream/internal/server/rest"
	"github.com/dmitrijs2005/edustream/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp opens the database, applies migrations and builds the HTTP handler.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration, c.RefreshGraceDuration)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	us := services.NewUserService(db, rm, issuer, hasher, logger)
	cs := services.NewCourseService(db, rm, logger)
	ors := services.NewOrderService(db, rm, c.StrictPricing, logger)
	ds := services.NewDashboardService(ors, logger)

	h := rest.NewHandler(logger, us, cs, ors, ds)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		handler: rest.NewRouter(h, c.AllowedOrigins),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "strict_pricing", app.config.StrictPricing)

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.handler).Run(gctx)
	})

	err := g.Wait()

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(context.Background(), "db close failed", "error", cerr)
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
