package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stockroomhq/stockroom-backend/api/routes"
	"github.com/stockroomhq/stockroom-backend/internal/cron"
	"github.com/stockroomhq/stockroom-backend/internal/finance"
	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	"github.com/stockroomhq/stockroom-backend/internal/purchases"
	"github.com/stockroomhq/stockroom-backend/internal/sales"
	"github.com/stockroomhq/stockroom-backend/internal/sessions"
	"github.com/stockroomhq/stockroom-backend/internal/settings"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
	"github.com/stockroomhq/stockroom-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	loc, err := cfg.App.Location()
	if err != nil {
		logg.Error(context.Background(), "failed to load timezone", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	cronMetrics := metrics.NewCronJobMetrics(registry)

	sessionRepo := sessions.NewRepository(dbClient.DB())
	sessionService, err := sessions.NewService(sessions.ServiceParams{
		Repo:        sessionRepo,
		Logger:      logg,
		PasswordCfg: cfg.Password,
		SessionCfg:  cfg.Session,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.ServiceParams{
		Repo:   inventory.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	salesService, err := sales.NewService(sales.ServiceParams{
		Repo:   sales.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	purchasesService, err := purchases.NewService(purchases.ServiceParams{
		Repo:   purchases.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create purchases service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.ServiceParams{
		Repo:   settings.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	financeService, err := finance.NewService(finance.ServiceParams{
		Repo:     finance.NewRepository(dbClient.DB()),
		Settings: settingsService,
		Logger:   logg,
		Location: loc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create finance service", err)
		os.Exit(1)
	}

	serverCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	if cfg.Session.SweepEnabled {
		sweepJob, err := cron.NewSessionSweepJob(cron.SessionSweepJobParams{
			Logger:     logg,
			Repository: sessionRepo,
			TTL:        cfg.Session.TTL,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create session sweep job", err)
			os.Exit(1)
		}
		sweeper, err := cron.NewService(cron.ServiceParams{
			Logger:   logg,
			Registry: cron.NewRegistry(sweepJob),
			Lock:     cron.NewMutexLock(),
			Metrics:  cronMetrics,
			Interval: cfg.Session.SweepInterval,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create sweep service", err)
			os.Exit(1)
		}
		go func() {
			if err := sweeper.Run(serverCtx); err != nil && serverCtx.Err() == nil {
				logg.Error(serverCtx, "sweep service stopped unexpectedly", err)
			}
		}()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:    cfg,
			Logger:    logg,
			Location:  loc,
			Metrics:   httpMetrics,
			Registry:  registry,
			Sessions:  sessionService,
			Inventory: inventoryService,
			Sales:     salesService,
			Purchases: purchasesService,
			Finance:   financeService,
			Settings:  settingsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
