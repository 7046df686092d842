package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/contactdesk/contactdesk-backend/api/routes"
	"github.com/contactdesk/contactdesk-backend/internal/contacts"
	"github.com/contactdesk/contactdesk-backend/internal/identity"
	"github.com/contactdesk/contactdesk-backend/internal/location"
	"github.com/contactdesk/contactdesk-backend/internal/notify"
	"github.com/contactdesk/contactdesk-backend/internal/photos"
	"github.com/contactdesk/contactdesk-backend/pkg/config"
	"github.com/contactdesk/contactdesk-backend/pkg/geocode"
	"github.com/contactdesk/contactdesk-backend/pkg/kv"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
	"github.com/contactdesk/contactdesk-backend/pkg/metrics"
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

	kvStore, err := newKVStore(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap kv store", err)
		os.Exit(1)
	}

	notifier := notify.NewWithDuration(cfg.Notify.DefaultDuration)

	identityService, err := identity.NewService(context.Background(), identity.ServiceParams{
		KV:       kvStore,
		Notifier: notifier,
		Logger:   logg,
		Config:   cfg.Auth,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	contactStore, err := contacts.NewStore(context.Background(), kvStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to hydrate contact store", err)
		os.Exit(1)
	}

	photoService, err := photos.NewService(notifier, cfg.Photos.MaxBytes)
	if err != nil {
		logg.Error(context.Background(), "failed to create photo service", err)
		os.Exit(1)
	}

	var geocodeClient *geocode.Client
	if cfg.Geocode.APIKey != "" {
		geocodeClient, err = geocode.NewClient(cfg.Geocode.APIKey, geocode.WithBaseURL(cfg.Geocode.BaseURL))
		if err != nil {
			logg.Error(context.Background(), "failed to create geocode client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "geocode api key not set, location picks resolve without addresses")
	}
	locationService := location.NewService(geocodeClient)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	defer func() {
		err := multierr.Combine(
			kvStore.Close(),
		)
		identityService.Close()
		notifier.Close()
		if err != nil {
			logg.Error(context.Background(), "error during shutdown", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"kv_backend": cfg.KV.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			kvStore,
			registry,
			httpMetrics,
			identityService,
			contactStore,
			photoService,
			notifier,
			locationService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func newKVStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	if cfg.KV.IsRedis() {
		return kv.NewRedis(ctx, cfg.Redis)
	}
	return kv.NewSQLite(cfg.SQLite)
}
