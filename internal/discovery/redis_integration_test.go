//go:build integration

package discovery_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"accounts/internal/discovery"
	"accounts/pkg/testutil/containers"
)

type RedisRegistrySuite struct {
	suite.Suite
	redis *containers.RedisContainer
	now   time.Time
	reg   *discovery.RedisRegistry
}

func TestRedisRegistrySuite(t *testing.T) {
	suite.Run(t, new(RedisRegistrySuite))
}

func (s *RedisRegistrySuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisRegistrySuite) SetupTest() {
	s.redis.FlushAll(s.T())
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.reg = discovery.NewRedisRegistry(s.redis.Client, 30*time.Second,
		discovery.WithClock(func() time.Time { return s.now }))
}

func (s *RedisRegistrySuite) instance(id, host string) discovery.Instance {
	return discovery.Instance{ID: id, Service: "cards", Scheme: "http", Host: host, Port: 9000}
}

func (s *RedisRegistrySuite) TestRegisterAndResolve() {
	ctx := context.Background()
	s.Require().NoError(s.reg.Register(ctx, s.instance("cards-b", "10.0.0.2")))
	s.Require().NoError(s.reg.Register(ctx, s.instance("cards-a", "10.0.0.1")))

	got, err := s.reg.Resolve(ctx, "cards")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("cards-a", got[0].ID)
	s.Equal("http://10.0.0.2:9000", got[1].BaseURL())
	s.Equal(s.now, got[0].LastHeartbeat)
}

func (s *RedisRegistrySuite) TestResolveUnknownServiceReturnsNoInstances() {
	_, err := s.reg.Resolve(context.Background(), "loans")
	s.ErrorIs(err, discovery.ErrNoInstances)
}

func (s *RedisRegistrySuite) TestStaleInstancesArePrunedAndHeartbeatKeepsAlive() {
	ctx := context.Background()
	s.Require().NoError(s.reg.Register(ctx, s.instance("cards-a", "10.0.0.1")))
	s.Require().NoError(s.reg.Register(ctx, s.instance("cards-b", "10.0.0.2")))

	s.now = s.now.Add(20 * time.Second)
	s.Require().NoError(s.reg.Heartbeat(ctx, s.instance("cards-b", "10.0.0.2")))

	s.now = s.now.Add(20 * time.Second)
	got, err := s.reg.Resolve(ctx, "cards")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("cards-b", got[0].ID)

	exists, err := s.redis.Client.HExists(ctx, "discovery:services:cards", "cards-a").Result()
	s.Require().NoError(err)
	s.False(exists, "stale entry is removed on resolve")
}

func (s *RedisRegistrySuite) TestDeregister() {
	ctx := context.Background()
	inst := s.instance("cards-a", "10.0.0.1")
	s.Require().NoError(s.reg.Register(ctx, inst))
	s.Require().NoError(s.reg.Deregister(ctx, inst))
	s.Require().NoError(s.reg.Deregister(ctx, inst), "deregistering twice is a no-op")

	_, err := s.reg.Resolve(ctx, "cards")
	s.ErrorIs(err, discovery.ErrNoInstances)
}

func (s *RedisRegistrySuite) TestRegisterRejectsInvalidInstance() {
	err := s.reg.Register(context.Background(), discovery.Instance{Service: "cards"})
	s.ErrorIs(err, discovery.ErrInvalidInstance)
}

func (s *RedisRegistrySuite) TestHealth() {
	s.NoError(s.reg.Health(context.Background()))
}
