package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"meeting-minutes-go/internal/analyzer"
	"meeting-minutes-go/internal/config"
	"meeting-minutes-go/internal/document"
	"meeting-minutes-go/internal/logger"
	"meeting-minutes-go/internal/media"
	"meeting-minutes-go/internal/pipeline"
	"meeting-minutes-go/internal/server"
	"meeting-minutes-go/internal/store"
	"meeting-minutes-go/internal/transcriber"
	"meeting-minutes-go/internal/watcher"
	"meeting-minutes-go/pkg/executor"
)

func main() {
	ctx := context.Background()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "Meeting minutes service starting")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	st, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to connect record store: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	prober := media.New(cfg, exec, log)
	trans := transcriber.New(cfg, exec, log)
	an := analyzer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	renderer := document.New(cfg.Paths.Outputs, log)

	orch := pipeline.New(cfg, st, prober, trans, an, renderer, log)

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()
	orch.StartWorkers(workerCtx)

	srv := server.New(cfg, st, orch, prober, log)

	if cfg.Paths.Inbox != "" {
		w, err := watcher.New(cfg.Paths.Inbox, srv.IngestFile, log, cfg.Pipeline.Workers)
		if err != nil {
			log.Error(ctx, "Failed to create inbox watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()
		go func() {
			if err := w.Start(workerCtx); err != nil && err != context.Canceled {
				log.Error(ctx, "Inbox watcher stopped: %v", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "HTTP server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "HTTP shutdown error: %v", err)
	}

	orch.Shutdown()
	cancelWorkers()
	log.Info(ctx, "Meeting minutes service stopped")
}

// newStore connects Redis when configured and falls back to the
// in-memory store for dev runs.
func newStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Store, error) {
	if cfg.Redis.URL == "" {
		log.Warn(ctx, "No Redis configured, records are kept in memory only")
		return store.NewMemory(), nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info(ctx, "Connected to Redis record store")
	return store.NewRedis(rdb), nil
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Outputs,
		cfg.Paths.Temp,
	}
	if cfg.Paths.Inbox != "" {
		dirs = append(dirs, cfg.Paths.Inbox)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
