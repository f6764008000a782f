package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"accounts/internal/cards"
	"accounts/internal/customer/handler"
	"accounts/internal/customer/service"
	"accounts/internal/loans"
	"accounts/internal/platform/config"
	"accounts/internal/platform/health"
	"accounts/internal/platform/logger"
	"accounts/internal/platform/metrics"
	"accounts/internal/platform/serviceclient"
	"accounts/internal/platform/tracer"
	request "accounts/pkg/platform/middleware/request"
)

// main wires configuration, discovery, downstream clients and the HTTP router,
// then blocks until SIGINT or SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	log.Info("initializing accounts service",
		"addr", cfg.Server.Addr,
		"environment", cfg.Server.Environment,
		"instance_id", cfg.Instance.InstanceID,
		"discovery_mode", cfg.Discovery.Mode,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthHandler := health.New(cfg.Server.Environment, cfg.Instance.ServiceName, cfg.Instance.InstanceID)

	disc, err := setupDiscovery(ctx, cfg, log, healthHandler)
	if err != nil {
		log.Error("failed to set up service discovery", "error", err)
		os.Exit(1)
	}
	defer disc.Close()

	healthHandler.RegisterCheck(cards.ServiceName, health.ResolvesCheck(disc.resolver, cards.ServiceName))

	reg := prometheus.DefaultRegisterer
	clientCfg := serviceclient.Config{
		Resolver: disc.resolver,
		Timeout:  cfg.Clients.Timeout,
		Metrics:  metrics.New(reg),
		Tracer:   tracer.NewOTel(),
		Logger:   log,
	}
	cardsClient, err := cards.NewHTTPClient(clientCfg)
	if err != nil {
		log.Error("failed to create cards client", "error", err)
		os.Exit(1)
	}
	loansClient, err := loans.NewHTTPClient(clientCfg)
	if err != nil {
		log.Error("failed to create loans client", "error", err)
		os.Exit(1)
	}

	customerService := service.NewService(cardsClient, loansClient, log, service.WithTracer(clientCfg.Tracer))
	router := newRouter(routerDeps{
		log:      log,
		timeout:  cfg.Server.Timeout,
		latency:  request.NewMetrics(reg),
		health:   healthHandler,
		customer: handler.New(customerService, log),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("starting http server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	disc.Start(ctx)

	<-ctx.Done()
	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	disc.Wait()

	log.Info("server stopped")
}
