// Package discoverytest provides a recording Resolver for tests of code that
// depends on service discovery.
package discoverytest

import (
	"context"
	"fmt"
	"sync"

	"accounts/internal/discovery"
)

// Resolver answers from a fixed table and records every service name it was asked for.
type Resolver struct {
	mu        sync.Mutex
	instances map[string][]discovery.Instance
	err       error
	calls     []string
}

// NewResolver serves instances for service. Pass no instances to simulate an
// empty registry.
func NewResolver(service string, instances ...discovery.Instance) *Resolver {
	r := &Resolver{instances: map[string][]discovery.Instance{}}
	if len(instances) > 0 {
		r.instances[service] = instances
	}
	return r
}

// Add registers more instances under service.
func (r *Resolver) Add(service string, instances ...discovery.Instance) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[service] = append(r.instances[service], instances...)
	return r
}

// FailWith makes every subsequent Resolve return err.
func (r *Resolver) FailWith(err error) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	return r
}

func (r *Resolver) Resolve(_ context.Context, service string) ([]discovery.Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, service)
	if r.err != nil {
		return nil, r.err
	}
	instances := r.instances[service]
	if len(instances) == 0 {
		return nil, fmt.Errorf("resolve %q: %w", service, discovery.ErrNoInstances)
	}
	return append([]discovery.Instance(nil), instances...), nil
}

// Calls returns the service names passed to Resolve, in order.
func (r *Resolver) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// InstanceFor builds an instance pointing at an httptest server URL.
// It panics on a malformed URL, which only happens with a broken test setup.
func InstanceFor(service, id, rawURL string) discovery.Instance {
	inst, err := discovery.InstanceFromURL(service, id, rawURL)
	if err != nil {
		panic(err)
	}
	return inst
}

var _ discovery.Resolver = (*Resolver)(nil)
