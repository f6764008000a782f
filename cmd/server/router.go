package main

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"accounts/internal/customer/handler"
	"accounts/internal/platform/health"
	request "accounts/pkg/platform/middleware/request"
)

type routerDeps struct {
	log      *slog.Logger
	timeout  time.Duration
	latency  *request.Metrics
	health   *health.Handler
	customer *handler.Handler
}

// newRouter mounts probes and metrics outside the request timeout so they stay
// responsive while downstream calls are slow.
func newRouter(deps routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(request.Recovery(deps.log))
	r.Use(request.CorrelationID)
	r.Use(request.Logger(deps.log))

	deps.health.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(request.LatencyMiddleware(deps.latency))
		r.Use(request.Timeout(deps.timeout))
		deps.customer.Register(r)
	})

	return r
}
