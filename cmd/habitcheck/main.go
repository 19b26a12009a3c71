package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"habitcheck/internal/amqp"
	"habitcheck/internal/cache"
	"habitcheck/internal/config"
	"habitcheck/internal/core"
	httpserver "habitcheck/internal/http"
	"habitcheck/internal/log"
	"habitcheck/internal/middleware/ratelimit"
	"habitcheck/internal/services"
	"habitcheck/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Setup(cfg.LogFormat, log.ParseLevel(cfg.LogLevel))

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return err
	}

	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Warn("AMQP unavailable, events disabled", "error", err)
		} else {
			publisher = client
		}
	}

	summaryCache := cache.NewLRUCache[core.Summary](4, cfg.SummaryCacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(summaryCache)
	cacheManager.StartCleanup(time.Minute)
	defer cacheManager.Stop()

	expenses := services.NewExpenseService(repo, publisher)
	defer func() {
		if err := expenses.Close(); err != nil {
			slog.Error("Failed to close services", "error", err)
		}
	}()
	stats := services.NewStatsService(repo, summaryCache)

	limiter := ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute})

	srv := httpserver.NewServer(":"+cfg.Port, expenses, stats, repo, limiter)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 64 << 10

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
