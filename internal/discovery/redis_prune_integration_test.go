//go:build integration

package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts/pkg/testutil/containers"
)

func TestPruneKeepsInstanceReRegisteredAfterRead(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	rc.FlushAll(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reg := NewRedisRegistry(rc.Client, 30*time.Second, WithClock(func() time.Time { return now }))
	inst := Instance{ID: "cards-1", Service: "cards", Scheme: "http", Host: "10.0.0.1", Port: 9000}
	require.NoError(t, reg.Register(ctx, inst))

	// The entry goes stale and a resolver reads it.
	now = now.Add(time.Minute)
	key := serviceKey("cards")
	entries, err := rc.Client.HGetAll(ctx, key).Result()
	require.NoError(t, err)
	live, stale := partitionLive(entries, now, reg.ttl)
	require.Empty(t, live)
	require.Contains(t, stale, "cards-1")

	// The instance heartbeats before the resolver prunes.
	require.NoError(t, reg.Heartbeat(ctx, inst))

	removed, err := reg.pruneStale(ctx, key, stale)
	require.NoError(t, err)
	assert.Zero(t, removed)

	got, err := reg.Resolve(ctx, "cards")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, now, got[0].LastHeartbeat)
}

func TestPruneRemovesUnchangedStaleEntries(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	rc.FlushAll(t)
	ctx := context.Background()

	key := serviceKey("cards")
	require.NoError(t, rc.Client.HSet(ctx, key, "garbage", "{not json", "cards-2", "{}").Err())

	reg := NewRedisRegistry(rc.Client, 30*time.Second)
	removed, err := reg.pruneStale(ctx, key, map[string]string{"garbage": "{not json", "cards-2": "changed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	fields, err := rc.Client.HKeys(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"cards-2"}, fields)
}
