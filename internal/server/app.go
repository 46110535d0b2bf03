// Package server wires the configuration, the record store and the web
// presentation layer together and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/signbook/internal/logging"
	"github.com/dmitrijs2005/signbook/internal/repositories/repomanager"
	"github.com/dmitrijs2005/signbook/internal/server/config"
	"github.com/dmitrijs2005/signbook/internal/server/web"
	"github.com/dmitrijs2005/signbook/internal/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  repomanager.RepositoryManager
	web    *web.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	store, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rs := services.NewRecordService(store.Records(), logger)

	ws, err := web.NewServer(web.Options{
		Addr:            c.HTTPAddr,
		MaxUploadSize:   c.MaxUploadSize,
		RateLimit:       c.RateLimit,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}, rs, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("web init error: %w", err)
	}

	return &App{config: c, logger: logger, store: store, web: ws}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.web.Run(ctx); err != nil {
		app.logger.Error(ctx, "web server stopped", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run blocks until a termination signal arrives, ctx is cancelled or the
// web server fails. The store is closed before Run returns.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", backendName(app.config.DatabaseDSN))

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startWebServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "closing store failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	return runErr
}

func backendName(dsn string) string {
	b, err := repomanager.DetectBackend(dsn)
	if err != nil {
		return "unknown"
	}
	return string(b)
}
