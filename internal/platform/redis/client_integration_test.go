//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts/internal/platform/config"
	"accounts/internal/platform/redis"
	"accounts/pkg/testutil/containers"
)

func TestClientAgainstContainer(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()

	client, err := redis.New(ctx, config.RedisConfig{
		URL:         rc.URL,
		PoolSize:    4,
		DialTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Health(ctx))
	require.NoError(t, client.Set(ctx, "accounts:probe", "1", time.Minute).Err())

	client.RecordPoolStats()
	client.RecordPoolStats()

	assert.Equal(t, 4, client.Options().PoolSize)
	assert.GreaterOrEqual(t, client.PoolStats().TotalConns, uint32(1))
}

func TestHealthFailsAfterClose(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()

	client, err := redis.New(ctx, config.RedisConfig{URL: rc.URL})
	require.NoError(t, err)
	require.NoError(t, client.Close())

	assert.Error(t, client.Health(ctx))
}
