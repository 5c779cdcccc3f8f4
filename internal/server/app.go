// Package server initializes and runs the application: it opens the
// database, applies migrations, builds the services, and starts the HTTP
// server with graceful shutdown on OS signals.
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

	"github.com/dsmirnov87/taskvault/internal/logging"
	"github.com/dsmirnov87/taskvault/internal/server/auth"
	"github.com/dsmirnov87/taskvault/internal/server/config"
	"github.com/dsmirnov87/taskvault/internal/server/httpapi"
	"github.com/dsmirnov87/taskvault/internal/server/repositories/repomanager"
	"github.com/dsmirnov87/taskvault/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenManager([]byte(c.SecretKey),
		c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)

	us := services.NewUserService(db, rm, tokens)
	ts := services.NewTaskService(db, rm)

	srv := httpapi.NewServer(c.EndpointAddr, logger, tokens, us, ts)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
