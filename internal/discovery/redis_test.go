package discovery

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeInstance(t *testing.T, inst Instance) string {
	t.Helper()
	b, err := json.Marshal(inst)
	require.NoError(t, err)
	return string(b)
}

func TestPartitionLive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 30 * time.Second

	entries := map[string]string{
		"cards-b": encodeInstance(t, Instance{ID: "cards-b", Service: "cards", Host: "b", Port: 1, LastHeartbeat: now.Add(-5 * time.Second)}),
		"cards-a": encodeInstance(t, Instance{ID: "cards-a", Service: "cards", Host: "a", Port: 1, LastHeartbeat: now.Add(-ttl)}),
		"cards-c": encodeInstance(t, Instance{ID: "cards-c", Service: "cards", Host: "c", Port: 1, LastHeartbeat: now.Add(-ttl - time.Second)}),
		"garbage": "{not json",
	}

	live, stale := partitionLive(entries, now, ttl)

	require.Len(t, live, 2)
	assert.Equal(t, "cards-a", live[0].ID, "heartbeat exactly at ttl is still live")
	assert.Equal(t, "cards-b", live[1].ID)
	require.Len(t, stale, 2)
	assert.Equal(t, entries["cards-c"], stale["cards-c"], "stale entries keep the value that was read")
	assert.Equal(t, "{not json", stale["garbage"])
}

func TestPartitionLiveZeroTTLKeepsEverything(t *testing.T) {
	now := time.Now()
	entries := map[string]string{
		"old": encodeInstance(t, Instance{ID: "old", LastHeartbeat: now.Add(-24 * time.Hour)}),
	}
	live, stale := partitionLive(entries, now, 0)
	assert.Len(t, live, 1)
	assert.Empty(t, stale)
}

func TestServiceKey(t *testing.T) {
	assert.Equal(t, "discovery:services:cards", serviceKey("cards"))
}
