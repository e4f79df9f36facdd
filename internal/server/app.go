// Package server initializes and runs the authentication server. It wires
// configuration, storage, hashing, and the HTTP API together, and handles
// graceful shutdown. Every construction failure here is fatal: the process
// must not start serving traffic over a half-wired stack.
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

	"github.com/akorchagin/authgate/internal/logging"
	"github.com/akorchagin/authgate/internal/server/config"
	"github.com/akorchagin/authgate/internal/server/httpapi"
	"github.com/akorchagin/authgate/internal/server/repositories/repomanager"
	"github.com/akorchagin/authgate/internal/server/secrets"
	"github.com/akorchagin/authgate/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	tokenService *services.TokenService
	authService  *services.AuthService
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// The pool is the only shared mutable resource; bound it here and let
	// every component draw from it.
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(context.Background(), c.StoreTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokenHasher, err := secrets.NewTokenHasher([]byte(c.TokenHashKey))
	if err != nil {
		return nil, fmt.Errorf("token hasher init error: %w", err)
	}
	passwordHasher := secrets.NewPasswordHasher(c.BcryptCost)

	ts := services.NewTokenService(db, rm, tokenHasher, logger, c)
	as := services.NewAuthService(db, rm, passwordHasher, ts, logger, c)

	return &App{config: c, logger: logger, db: db, tokenService: ts, authService: as}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.authService, app.tokenService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

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
		app.logger.Error(ctx, err.Error())
	}
}
