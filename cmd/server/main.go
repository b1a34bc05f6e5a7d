package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"folio/internal/config"
	"folio/internal/content"
	"folio/internal/db"
	"folio/internal/db/mock"
	applog "folio/internal/log"
	"folio/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc       = config.Load
	configureLoggingFunc = applog.Configure
	newMockDatabaseFunc  = mock.New
	configureDatabase    = db.Configure
	loadContentFunc      = loadContent
	newServerFunc        = func(cfg server.Config) (serverLifecycle, error) { return server.New(cfg) }
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		applog.Error(context.Background(), "failed to read .env file", "error", err)
	}
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := configureLoggingFunc(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		applog.Error(ctx, "invalid logging configuration", "level", cfg.Logging.Level, "format", cfg.Logging.Format, "error", err)
		return 1
	}

	var database *gorm.DB
	switch {
	case cfg.Database.UseMock:
		applog.Info(ctx, "using in-memory mock database")
		database, err = newMockDatabaseFunc(ctx)
	case strings.TrimSpace(cfg.Database.URL) != "":
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	repo, err := loadContentFunc(ctx, cfg.Content)
	if err != nil {
		var loadErr *content.DataLoadError
		if errors.As(err, &loadErr) && len(loadErr.Problems) > 0 {
			applog.Error(ctx, "portfolio content is invalid", "document", loadErr.Document, "problems", strings.Join(loadErr.Problems, "; "))
			return 1
		}
		applog.Error(ctx, "failed to load portfolio content", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr:            cfg.Server.Addr,
		StaticDir:       cfg.Server.StaticDir,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Session:         cfg.Session,
		Contact:         cfg.Contact,
		Notifications:   cfg.Notifications,
		Database:        database,
		Content:         repo,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err().Error())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	return 0
}

func loadContent(ctx context.Context, cfg config.ContentConfig) (*content.Repository, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return content.Default(ctx)
	}
	applog.Info(ctx, "loading portfolio content", "dir", cfg.Dir)
	return content.Load(ctx, os.DirFS(cfg.Dir))
}
