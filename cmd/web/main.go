package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/choppi/admin-web/api/controllers"
	"github.com/choppi/admin-web/api/routes"
	"github.com/choppi/admin-web/internal/backend"
	"github.com/choppi/admin-web/internal/session"
	"github.com/choppi/admin-web/pkg/config"
	"github.com/choppi/admin-web/pkg/logger"
	"github.com/choppi/admin-web/pkg/metrics"
	"github.com/choppi/admin-web/pkg/redis"
	"github.com/choppi/admin-web/web"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "web"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "web",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var (
		cache  *redis.Client
		pinger controllers.Pinger
	)
	if cfg.Redis.Enabled() {
		cache, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		pinger = cache
	}

	rnd, err := web.NewRenderer(logg)
	if err != nil {
		logg.Error(context.Background(), "failed to parse templates", err)
		os.Exit(1)
	}

	client := backend.NewClient(cfg.Backend)
	authAPI := backend.NewAuthAPI(client)
	storesAPI := backend.NewStoresAPI(client)
	productsAPI := backend.NewProductsAPI(client)
	storeProductsAPI := backend.NewStoreProductsAPI(client)
	cartAPI := backend.NewCartAPI(client)

	var sessionCache session.Cache
	if cache != nil {
		sessionCache = cache
	}
	sessionManager := session.NewManager(cfg.Session, authAPI, sessionCache, logg)

	proxyMetrics := metrics.NewProxyMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Backend.URL,
	})
	logg.Info(ctx, "starting admin web server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, rnd, sessionManager, pinger, proxyMetrics,
			storesAPI, productsAPI, storeProductsAPI, cartAPI,
		),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "admin web server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs error
	errs = multierr.Append(errs, server.Shutdown(shutdownCtx))
	if cache != nil {
		errs = multierr.Append(errs, cache.Close())
	}
	if errs != nil {
		logg.Error(ctx, "shutdown finished with errors", errs)
		os.Exit(1)
	}
	logg.Info(ctx, "admin web server stopped")
}
