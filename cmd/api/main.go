package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quotewerk/quotewerk-backend/api/routes"
	"github.com/quotewerk/quotewerk-backend/internal/catalog"
	"github.com/quotewerk/quotewerk-backend/internal/marketplace"
	"github.com/quotewerk/quotewerk-backend/internal/quote"
	"github.com/quotewerk/quotewerk-backend/internal/recognition"
	"github.com/quotewerk/quotewerk-backend/internal/sources"
	"github.com/quotewerk/quotewerk-backend/internal/wizard"
	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/db"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
	"github.com/quotewerk/quotewerk-backend/pkg/metrics"
	"github.com/quotewerk/quotewerk-backend/pkg/migrate"
	"github.com/quotewerk/quotewerk-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), logg, cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	recognitionClient, err := recognition.NewClient(cfg.Recognition, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create recognition client", err)
		os.Exit(1)
	}

	linkGen, err := marketplace.NewLinkGenerator(cfg.Marketplace.ShopTemplates)
	if err != nil {
		logg.Error(context.Background(), "failed to parse shop templates", err)
		os.Exit(1)
	}
	estimateClient := marketplace.NewEstimateClient(cfg.Marketplace)

	quoteRepo := quote.NewRepository(dbClient.DB())
	sourceRepo := sources.NewRepository(dbClient.DB())

	wizardSvc, err := wizard.NewService(
		wizard.NewRedisSessionStore(redisClient, cfg.Session.TTL),
		catalogSvc,
		sourceRepo,
		recognitionClient,
		wizard.NewDBPersister(dbClient, quoteRepo, sourceRepo),
		metrics.NewWizardMetrics(prometheus.DefaultRegisterer),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create wizard service", err)
		os.Exit(1)
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
		Handler: routes.NewRouter(routes.Dependencies{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Catalog:        catalogSvc,
			Wizard:         wizardSvc,
			Quotes:         quoteRepo,
			Sources:        sourceRepo,
			ShopLinks:      linkGen,
			PriceEstimates: estimateClient,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
