package discovery

import (
	"context"
	"log/slog"
	"time"
)

// HeartbeatOption configures a Heartbeater.
type HeartbeatOption func(*Heartbeater)

func WithHeartbeatLogger(logger *slog.Logger) HeartbeatOption {
	return func(h *Heartbeater) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func WithHeartbeatInterval(interval time.Duration) HeartbeatOption {
	return func(h *Heartbeater) {
		if interval > 0 {
			h.interval = interval
		}
	}
}

// Heartbeater keeps this process registered as inst for as long as Start runs.
type Heartbeater struct {
	registrar Registrar
	instance  Instance
	logger    *slog.Logger
	interval  time.Duration
}

func NewHeartbeater(registrar Registrar, inst Instance, opts ...HeartbeatOption) *Heartbeater {
	h := &Heartbeater{
		registrar: registrar,
		instance:  inst,
		logger:    slog.Default(),
		interval:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start registers the instance, refreshes it every interval, and deregisters it
// once ctx is cancelled. A failed initial registration is returned immediately;
// failed refreshes are logged and retried on the next tick.
func (h *Heartbeater) Start(ctx context.Context) error {
	if err := h.registrar.Register(ctx, h.instance); err != nil {
		return err
	}
	h.logger.Info("discovery_instance_registered",
		"service", h.instance.Service,
		"instance_id", h.instance.ID,
		"base_url", h.instance.BaseURL(),
	)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.RunOnce(ctx); err != nil {
				h.logger.Warn("discovery_heartbeat_failed",
					"service", h.instance.Service,
					"instance_id", h.instance.ID,
					"error", err,
				)
			}
		case <-ctx.Done():
			h.deregister()
			h.logger.Info("discovery heartbeat stopping", "reason", ctx.Err())
			return ctx.Err()
		}
	}
}

// RunOnce sends a single heartbeat.
func (h *Heartbeater) RunOnce(ctx context.Context) error {
	return h.registrar.Heartbeat(ctx, h.instance)
}

// deregister runs on a fresh context since the worker context is already done.
func (h *Heartbeater) deregister() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.registrar.Deregister(ctx, h.instance); err != nil {
		h.logger.Warn("discovery_deregister_failed",
			"service", h.instance.Service,
			"instance_id", h.instance.ID,
			"error", err,
		)
	}
}
