// Package server initializes and runs the application: database, migrations,
// services, and the HTTP server, with graceful shutdown on OS signals.
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

	_ "github.com/jackc/pgx/v5/stdlib"

	"shelflog/internal/common"
	"shelflog/internal/logging"
	"shelflog/internal/server/config"
	"shelflog/internal/server/repositories/repomanager"
	"shelflog/internal/server/services"
	"shelflog/internal/server/web"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	userSvc    *services.UserService
	sessionSvc *services.SessionService
	bookSvc    *services.BookService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	if cfg.SecretKey == "" {
		// sessions will not survive a restart
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("error generating secret key: %w", err)
		}
		cfg.SecretKey = key
		logger.Warn(ctx, "No secret key configured, generated a random one")
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db connection error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		userSvc:    services.NewUserService(db, rm),
		sessionSvc: services.NewSessionService(db, rm, cfg.SecretKey, cfg.SessionValidityDuration),
		bookSvc:    services.NewBookService(db, rm),
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := web.NewServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.userSvc,
		app.sessionSvc,
		app.bookSvc,
		app.config.SecureCookies,
		app.config.SessionValidityDuration,
	)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
