package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/api"
	"github.com/baharkarakas/payment-reconciler/internal/auth"
	"github.com/baharkarakas/payment-reconciler/internal/config"
	"github.com/baharkarakas/payment-reconciler/internal/db"
	"github.com/baharkarakas/payment-reconciler/internal/logger"
	"github.com/baharkarakas/payment-reconciler/internal/metrics"
	"github.com/baharkarakas/payment-reconciler/internal/okx"
	"github.com/baharkarakas/payment-reconciler/internal/repository/postgres"
	"github.com/baharkarakas/payment-reconciler/internal/services"
	"github.com/baharkarakas/payment-reconciler/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.IOTimeout)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(cfg.CallbackWorkers)
	defer wp.Stop()

	if cfg.WebhookSecret == "" {
		log.Warn("WEBHOOK_SECRET is empty; callbacks are signed with an empty key")
	}
	dispatcher := services.NewDispatcher(repos.Orders, cfg.WebhookSecret, cfg.IOTimeout, cfg.OrderLocation, log)
	reconciler := services.NewReconciler(services.ReconcilerDeps{
		Feed:       ledgerFeed(cfg, log),
		Watermarks: repos.Watermarks,
		Recorder:   services.NewRecorder(repos.Transfers, log),
		Matcher:    services.NewMatcher(repos.Matching, log),
		Notifier:   dispatcher,
		Sweeper:    services.NewSweeper(repos.Orders, dispatcher, wp, cfg.RedeliveryGrace, log),
	}, cfg.PollInterval, log)

	var loops sync.WaitGroup
	loops.Add(1)
	go func() {
		defer loops.Done()
		reconciler.Run(ctx)
	}()

	deps := api.RouterDeps{
		Orders:    services.NewOrderService(repos.Orders, cfg.OrderWindow, cfg.OrderLocation, log),
		Transfers: services.NewTransferService(repos.Transfers),
		DB:        pool,
		RateRPS:   cfg.RateRPS,
	}
	if cfg.JWTSecret != "" {
		deps.Tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, 0)
	} else {
		log.Warn("JWT_SECRET is empty; /api/v1 is unauthenticated")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	// the loop finishes its current iteration before returning
	loops.Wait()
	log.Info("stopped")
}

// ledgerFeed returns nil when no feed credentials are configured, which
// leaves the reconciler sweeping only.
func ledgerFeed(cfg config.Config, log *slog.Logger) services.LedgerFeed {
	if !cfg.FeedEnabled() {
		log.Warn("OKX credentials not set; ledger polling disabled")
		return nil
	}
	return okx.NewClient(cfg.OKXBaseURL, okx.Credentials{
		APIKey:     cfg.OKXAPIKey,
		SecretKey:  cfg.OKXSecretKey,
		Passphrase: cfg.OKXPassphrase,
	}, cfg.OKXSimulated, cfg.IOTimeout)
}
