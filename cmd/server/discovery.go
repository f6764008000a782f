package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"accounts/internal/discovery"
	"accounts/internal/platform/config"
	"accounts/internal/platform/health"
	"accounts/internal/platform/redis"
)

// discoveryRuntime owns the resolver and, in redis mode, the registry
// connection plus the background workers that keep this instance registered.
type discoveryRuntime struct {
	resolver discovery.Resolver
	redis    *redis.Client
	workers  []func(ctx context.Context)
	wg       sync.WaitGroup
}

func setupDiscovery(ctx context.Context, cfg config.Config, log *slog.Logger, hh *health.Handler) (*discoveryRuntime, error) {
	switch cfg.Discovery.Mode {
	case config.DiscoveryStatic:
		resolver, err := discovery.ParseStaticTargets(cfg.Discovery.StaticTargets)
		if err != nil {
			return nil, err
		}
		log.Info("using static service discovery", "services", resolver.Services())
		return &discoveryRuntime{resolver: resolver}, nil

	case config.DiscoveryRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		registry := discovery.NewRedisRegistry(client.Client, cfg.Discovery.InstanceTTL)
		hh.RegisterCheck("redis", client.Health)

		self, err := discovery.InstanceFromURL(cfg.Instance.ServiceName, cfg.Instance.InstanceID, cfg.Instance.AdvertiseURL)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("advertise url: %w", err)
		}
		heartbeater := discovery.NewHeartbeater(registry, self,
			discovery.WithHeartbeatLogger(log),
			discovery.WithHeartbeatInterval(cfg.Discovery.HeartbeatInterval),
		)

		log.Info("using redis service discovery",
			"instance_ttl", cfg.Discovery.InstanceTTL,
			"heartbeat_interval", cfg.Discovery.HeartbeatInterval,
		)
		return &discoveryRuntime{
			resolver: registry,
			redis:    client,
			workers: []func(ctx context.Context){
				func(ctx context.Context) {
					if err := heartbeater.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
						log.Error("discovery heartbeat stopped", "error", err)
					}
				},
				func(ctx context.Context) {
					client.ReportPoolStats(ctx, 15*time.Second)
				},
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown discovery mode %q", cfg.Discovery.Mode)
	}
}

// Start launches the background workers; they stop when ctx is cancelled.
func (d *discoveryRuntime) Start(ctx context.Context) {
	for _, run := range d.workers {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			run(ctx)
		}()
	}
}

// Wait blocks until every worker has returned, including the final deregistration.
func (d *discoveryRuntime) Wait() {
	d.wg.Wait()
}

func (d *discoveryRuntime) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
}
