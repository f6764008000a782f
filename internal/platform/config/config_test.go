package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults to static discovery", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, "accounts", cfg.Instance.ServiceName)
		assert.Equal(t, DiscoveryStatic, cfg.Discovery.Mode)
		assert.Contains(t, cfg.Discovery.StaticTargets, "cards=")
		assert.Equal(t, 5*time.Second, cfg.Clients.Timeout)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("ACCOUNTS_ADDR", ":9090")
		t.Setenv("DISCOVERY_MODE", "redis")
		t.Setenv("REDIS_URL", "redis://registry:6379/1")
		t.Setenv("DISCOVERY_HEARTBEAT_INTERVAL", "5s")
		t.Setenv("DISCOVERY_INSTANCE_TTL", "15s")
		t.Setenv("REDIS_POOL_SIZE", "20")
		t.Setenv("DOWNSTREAM_TIMEOUT", "750ms")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, DiscoveryRedis, cfg.Discovery.Mode)
		assert.Equal(t, "redis://registry:6379/1", cfg.Redis.URL)
		assert.Equal(t, 20, cfg.Redis.PoolSize)
		assert.Equal(t, 15*time.Second, cfg.Discovery.InstanceTTL)
		assert.Equal(t, 750*time.Millisecond, cfg.Clients.Timeout)
	})

	t.Run("ignores unparseable durations", func(t *testing.T) {
		t.Setenv("DOWNSTREAM_TIMEOUT", "soon")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.Clients.Timeout)
	})

	t.Run("rejects unknown discovery mode", func(t *testing.T) {
		t.Setenv("DISCOVERY_MODE", "eureka")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "unknown DISCOVERY_MODE")
	})

	t.Run("rejects non-positive heartbeat interval", func(t *testing.T) {
		t.Setenv("DISCOVERY_MODE", "redis")
		t.Setenv("REDIS_URL", "redis://registry:6379/0")
		t.Setenv("DISCOVERY_HEARTBEAT_INTERVAL", "0s")
		t.Setenv("DISCOVERY_INSTANCE_TTL", "5s")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "DISCOVERY_HEARTBEAT_INTERVAL must be positive")
	})

	t.Run("rejects ttl not longer than heartbeat", func(t *testing.T) {
		t.Setenv("DISCOVERY_MODE", "redis")
		t.Setenv("DISCOVERY_HEARTBEAT_INTERVAL", "10s")
		t.Setenv("DISCOVERY_INSTANCE_TTL", "10s")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "must exceed")
	})
}
