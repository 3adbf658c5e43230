// Package server initializes and runs the cipherdrop server: it wires the
// database-backed repositories, the content store and the domain services,
// starts the HTTP API and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avolkovs/cipherdrop/internal/logging"
	"github.com/avolkovs/cipherdrop/internal/server/config"
	"github.com/avolkovs/cipherdrop/internal/server/httpapi"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/repomanager"
	"github.com/avolkovs/cipherdrop/internal/server/services"
	"github.com/avolkovs/cipherdrop/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
	store  storage.ContentStore
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()

	store, err := storage.NewContentStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db := m.Conn()

	as := services.NewAuthService(db, m, c)
	fs := services.NewFileService(db, m, c)
	ts := services.NewTokenService(db, m, c)

	srv := httpapi.NewServer(logger, c, as, fs, ts, store)

	return &App{config: c, logger: logger, server: srv, store: store}, nil
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

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "error closing content store", "error", err)
	}
}
