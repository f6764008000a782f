package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisServiceKeyPrefix = "discovery:services:"

// pruneScript deletes a field only while it still holds the value that was
// judged stale, so a concurrent re-registration survives the prune.
// ARGV holds field/value pairs.
var pruneScript = redis.NewScript(`
local removed = 0
for i = 1, #ARGV, 2 do
	if redis.call('HGET', KEYS[1], ARGV[i]) == ARGV[i + 1] then
		removed = removed + redis.call('HDEL', KEYS[1], ARGV[i])
	end
end
return removed
`)

// RegistryOption configures a RedisRegistry.
type RegistryOption func(*RedisRegistry)

// WithClock overrides the time source used for heartbeats and staleness checks.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *RedisRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

// RedisRegistry keeps one Redis hash per service, field = instance id,
// value = JSON-encoded Instance. Entries whose heartbeat is older than ttl are
// invisible to Resolve and are removed lazily, unless re-registered meanwhile.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisRegistry constructs a registry over a configured go-redis client.
func NewRedisRegistry(client *redis.Client, ttl time.Duration, opts ...RegistryOption) *RedisRegistry {
	r := &RedisRegistry{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register writes the instance with a fresh heartbeat timestamp.
//
// Side effects: HSET on the service hash and EXPIRE of the whole hash to 3x ttl,
// so a service whose instances all vanish does not leave a key behind forever.
func (r *RedisRegistry) Register(ctx context.Context, inst Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	inst.LastHeartbeat = r.now().UTC()
	payload, err := json.Marshal(inst)
	if err != nil {
		return fmt.Errorf("encode instance: %w", err)
	}

	key := serviceKey(inst.Service)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, inst.ID, payload)
	pipe.Expire(ctx, key, 3*r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("register %s/%s: %w", inst.Service, inst.ID, err)
	}
	return nil
}

// Heartbeat refreshes the instance timestamp. It re-registers the instance if
// its entry has already been evicted.
func (r *RedisRegistry) Heartbeat(ctx context.Context, inst Instance) error {
	return r.Register(ctx, inst)
}

// Deregister removes the instance. Removing an unknown instance is not an error.
func (r *RedisRegistry) Deregister(ctx context.Context, inst Instance) error {
	if err := r.client.HDel(ctx, serviceKey(inst.Service), inst.ID).Err(); err != nil {
		return fmt.Errorf("deregister %s/%s: %w", inst.Service, inst.ID, err)
	}
	return nil
}

// Resolve returns live instances of service sorted by id.
//
// Errors: ErrNoInstances (wrapped) when nothing live is registered; wraps Redis errors.
func (r *RedisRegistry) Resolve(ctx context.Context, service string) ([]Instance, error) {
	key := serviceKey(service)
	entries, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", service, err)
	}

	live, stale := partitionLive(entries, r.now(), r.ttl)
	if len(stale) > 0 {
		// Best effort: a failed prune is retried on the next resolution.
		_, _ = r.pruneStale(ctx, key, stale)
	}
	if len(live) == 0 {
		return nil, fmt.Errorf("resolve %q: %w", service, ErrNoInstances)
	}
	return live, nil
}

// pruneStale removes the stale entries whose value is unchanged since they
// were read and returns how many were removed.
func (r *RedisRegistry) pruneStale(ctx context.Context, key string, stale map[string]string) (int64, error) {
	args := make([]any, 0, 2*len(stale))
	for field, raw := range stale {
		args = append(args, field, raw)
	}
	return pruneScript.Run(ctx, r.client, []string{key}, args...).Int64()
}

// Health pings the registry backend.
func (r *RedisRegistry) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// partitionLive decodes hash entries and splits them into live instances and
// the stale or undecodable entries, keyed by field with the raw value read.
func partitionLive(entries map[string]string, now time.Time, ttl time.Duration) ([]Instance, map[string]string) {
	live := make([]Instance, 0, len(entries))
	stale := make(map[string]string)
	for field, raw := range entries {
		var inst Instance
		if err := json.Unmarshal([]byte(raw), &inst); err != nil {
			stale[field] = raw
			continue
		}
		if ttl > 0 && now.Sub(inst.LastHeartbeat) > ttl {
			stale[field] = raw
			continue
		}
		live = append(live, inst)
	}
	sort.Slice(live, func(i, j int) bool { return live[i].ID < live[j].ID })
	return live, stale
}

func serviceKey(service string) string {
	return redisServiceKeyPrefix + service
}

var (
	_ Resolver  = (*RedisRegistry)(nil)
	_ Registrar = (*RedisRegistry)(nil)
)
