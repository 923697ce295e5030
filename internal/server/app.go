// Package server initializes and runs the main application server.
// It opens the credential store, runs migrations, loads the signing key
// pair, and starts the HTTP server with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/antonk9218/authd/internal/logging"
	"github.com/antonk9218/authd/internal/server/auth"
	"github.com/antonk9218/authd/internal/server/config"
	"github.com/antonk9218/authd/internal/server/httpapi"
	"github.com/antonk9218/authd/internal/server/repositories/repomanager"
	"github.com/antonk9218/authd/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	privateKey, err := auth.LoadPrivateKey(cfg.PrivateKeyFile, cfg.PrivateKeyPassphrase)
	if err != nil {
		return nil, err
	}
	publicKey, err := auth.LoadPublicKey(cfg.PublicKeyFile)
	if err != nil {
		return nil, err
	}
	issuer := auth.NewIssuer(privateKey, publicKey, cfg.TokenValidity)

	accountService := services.NewAccountService(db, rm, issuer, cfg.LockDuration, logger)
	httpServer := httpapi.NewServer(cfg.EndpointAddr, logger, accountService)

	return &App{config: cfg, logger: logger, httpServer: httpServer}, nil
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
	if err := app.httpServer.Run(ctx); err != nil {
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

}
