package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gigpay/gigpay-backend/internal/api"
	"github.com/gigpay/gigpay-backend/internal/auth"
	"github.com/gigpay/gigpay-backend/internal/config"
	"github.com/gigpay/gigpay-backend/internal/db"
	"github.com/gigpay/gigpay-backend/internal/logger"
	"github.com/gigpay/gigpay-backend/internal/metrics"
	"github.com/gigpay/gigpay-backend/internal/repository/postgres"
	"github.com/gigpay/gigpay-backend/internal/services"
	"github.com/gigpay/gigpay-backend/internal/stripe"
	"github.com/gigpay/gigpay-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	processor := stripe.NewClient(cfg.StripeAPIURL, cfg.StripeAPIKey)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, 15*time.Minute)

	userSvc := services.NewUserService(repos.Users, processor, tm, wp)
	paymentSvc := services.NewPaymentService(repos.Users, repos.Transfers, processor)
	gigSvc := services.NewGigService(repos.Gigs)
	webhookSvc := services.NewWebhookService(repos.Users, cfg.StripeWebhookSecret)

	rec := services.NewReconciler(paymentSvc, time.Minute, 2*time.Minute)
	go rec.Run(ctx)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		TM:         tm,
		UserSvc:    userSvc,
		PaymentSvc: paymentSvc,
		GigSvc:     gigSvc,
		WebhookSvc: webhookSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
