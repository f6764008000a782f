// Package discovery resolves logical service names such as "cards" into the
// network addresses of live instances.
//
// Callers depend on Resolver only. StaticResolver serves fixed targets from
// configuration; RedisRegistry is a heartbeat-based registry shared by all
// instances of the platform.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	// ErrNoInstances means the service name resolved to an empty instance list.
	ErrNoInstances = errors.New("no live instances")
	// ErrInvalidInstance means an instance is missing its service, id, or address.
	ErrInvalidInstance = errors.New("invalid service instance")
)

// Instance is one addressable replica of a logical service.
type Instance struct {
	ID            string            `json:"id"`
	Service       string            `json:"service"`
	Scheme        string            `json:"scheme"`
	Host          string            `json:"host"`
	Port          int               `json:"port"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	LastHeartbeat time.Time         `json:"last_heartbeat"`
}

// BaseURL returns scheme://host:port without a trailing slash.
func (i Instance) BaseURL() string {
	scheme := i.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + i.Host + ":" + strconv.Itoa(i.Port)
}

// Validate checks the fields every registry needs to route to the instance.
func (i Instance) Validate() error {
	switch {
	case i.Service == "":
		return fmt.Errorf("%w: service name is required", ErrInvalidInstance)
	case i.ID == "":
		return fmt.Errorf("%w: instance id is required", ErrInvalidInstance)
	case i.Host == "":
		return fmt.Errorf("%w: host is required", ErrInvalidInstance)
	case i.Port <= 0 || i.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidInstance, i.Port)
	}
	return nil
}

// InstanceFromURL builds an Instance from an absolute http(s) URL.
// A missing port defaults to 80 for http and 443 for https.
func InstanceFromURL(service, id, raw string) (Instance, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Instance{}, fmt.Errorf("parse instance url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Instance{}, fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidInstance, raw)
	}

	port := 80
	if u.Scheme == "https" {
		port = 443
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Instance{}, fmt.Errorf("%w: bad port in %q", ErrInvalidInstance, raw)
		}
	}

	inst := Instance{
		ID:      id,
		Service: service,
		Scheme:  u.Scheme,
		Host:    u.Hostname(),
		Port:    port,
	}
	return inst, inst.Validate()
}

// Resolver maps a logical service name to its live instances.
// Implementations return ErrNoInstances (possibly wrapped) for an empty result.
type Resolver interface {
	Resolve(ctx context.Context, service string) ([]Instance, error)
}

// Registrar publishes this process as an instance of a service.
type Registrar interface {
	Register(ctx context.Context, inst Instance) error
	Heartbeat(ctx context.Context, inst Instance) error
	Deregister(ctx context.Context, inst Instance) error
}

// Picker chooses one instance out of a resolved list.
type Picker interface {
	Pick(instances []Instance) (Instance, error)
}

// RoundRobin rotates through instances in the order the resolver returns them.
// Safe for concurrent use.
type RoundRobin struct {
	next atomic.Uint64
}

func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

func (r *RoundRobin) Pick(instances []Instance) (Instance, error) {
	if len(instances) == 0 {
		return Instance{}, ErrNoInstances
	}
	n := r.next.Add(1) - 1
	return instances[n%uint64(len(instances))], nil
}
