package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jarda-app/jarda/internal/advisory"
	"github.com/jarda-app/jarda/internal/config"
	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
	"github.com/jarda-app/jarda/internal/domain/site"
	"github.com/jarda-app/jarda/internal/snapshot"
	"github.com/jarda-app/jarda/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := snapshot.NewDB(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	bus := newBus(cfg, logger)

	store := snapshot.NewStore(db, bus, snapshot.DefaultSeed(), logger)
	if err := store.Load(context.Background()); err != nil {
		logger.Error("failed to load snapshots", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	siteRepo := snapshot.NewSiteRepository(store)
	sessionRepo := snapshot.NewSessionRepository(store)
	templateRepo := snapshot.NewTemplateRepository(store)

	checker := newChecker(cfg, logger)

	templateSvc := item.NewService(templateRepo, logger)
	siteSvc := site.NewService(siteRepo, sessionRepo, logger)
	sessionSvc := session.NewService(sessionRepo, siteRepo, templateRepo, checker, logger)

	router := transport.NewRouter(transport.Services{
		Sites:    siteSvc,
		Sessions: sessionSvc,
		Template: templateSvc,
	}, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// newBus picks the change bus: Redis pub/sub when configured, otherwise
// in-process only.
func newBus(cfg config.Config, logger *slog.Logger) snapshot.Bus {
	if cfg.Redis.Addr == "" {
		return snapshot.NewMemoryBus()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	logger.Info("cross-process sync enabled", "redis", cfg.Redis.Addr)
	return snapshot.NewRedisBus(client, cfg.Redis.Channel, logger)
}

// newChecker picks the anomaly advisory: the remote client when an API key
// is configured, otherwise the always-negative stand-in.
func newChecker(cfg config.Config, logger *slog.Logger) advisory.Checker {
	if cfg.Advisory.APIKey == "" {
		logger.Warn("advisory API key missing, anomaly checks disabled")
		return advisory.Disabled{}
	}
	return advisory.NewClient(advisory.ClientConfig{
		Endpoint: cfg.Advisory.Endpoint,
		APIKey:   cfg.Advisory.APIKey,
		Model:    cfg.Advisory.Model,
		Timeout:  cfg.Advisory.Timeout,
	}, logger)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
