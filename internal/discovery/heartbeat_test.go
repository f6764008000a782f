package discovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type fakeRegistrar struct {
	mu            sync.Mutex
	registered    int
	heartbeats    int
	deregistered  int
	registerErr   error
	heartbeatErr  error
	heartbeatSeen chan struct{}
}

func (f *fakeRegistrar) Register(_ context.Context, _ Instance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered++
	return f.registerErr
}

func (f *fakeRegistrar) Heartbeat(_ context.Context, _ Instance) error {
	f.mu.Lock()
	f.heartbeats++
	err := f.heartbeatErr
	f.mu.Unlock()
	if f.heartbeatSeen != nil {
		select {
		case f.heartbeatSeen <- struct{}{}:
		default:
		}
	}
	return err
}

func (f *fakeRegistrar) Deregister(_ context.Context, _ Instance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deregistered++
	return nil
}

func (f *fakeRegistrar) counts() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered, f.heartbeats, f.deregistered
}

type HeartbeaterSuite struct {
	suite.Suite
	registrar *fakeRegistrar
	instance  Instance
}

func TestHeartbeaterSuite(t *testing.T) {
	suite.Run(t, new(HeartbeaterSuite))
}

func (s *HeartbeaterSuite) SetupTest() {
	s.registrar = &fakeRegistrar{heartbeatSeen: make(chan struct{}, 1)}
	s.instance = Instance{ID: "accounts-1", Service: "accounts", Host: "localhost", Port: 8080}
}

func (s *HeartbeaterSuite) TestStartRegistersRefreshesAndDeregisters() {
	h := NewHeartbeater(s.registrar, s.instance, WithHeartbeatInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()

	select {
	case <-s.registrar.heartbeatSeen:
	case <-time.After(time.Second):
		s.FailNow("no heartbeat within 1s")
	}
	cancel()

	s.ErrorIs(<-done, context.Canceled)
	registered, heartbeats, deregistered := s.registrar.counts()
	s.Equal(1, registered)
	s.GreaterOrEqual(heartbeats, 1)
	s.Equal(1, deregistered, "instance is removed on shutdown")
}

func (s *HeartbeaterSuite) TestStartFailsWhenInitialRegistrationFails() {
	s.registrar.registerErr = errors.New("redis down")
	h := NewHeartbeater(s.registrar, s.instance)

	err := h.Start(context.Background())
	s.EqualError(err, "redis down")
	_, _, deregistered := s.registrar.counts()
	s.Zero(deregistered)
}

func (s *HeartbeaterSuite) TestHeartbeatFailureDoesNotStopWorker() {
	s.registrar.heartbeatErr = errors.New("timeout")
	h := NewHeartbeater(s.registrar, s.instance, WithHeartbeatInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()

	for range 2 {
		select {
		case <-s.registrar.heartbeatSeen:
		case <-time.After(time.Second):
			s.FailNow("worker stopped heartbeating after a failure")
		}
	}
	cancel()
	s.ErrorIs(<-done, context.Canceled)
}

func (s *HeartbeaterSuite) TestRunOnce() {
	h := NewHeartbeater(s.registrar, s.instance)
	s.Require().NoError(h.RunOnce(context.Background()))
	_, heartbeats, _ := s.registrar.counts()
	s.Equal(1, heartbeats)
}
