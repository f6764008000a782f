package discovery

import (
	"context"
	"fmt"
	"strings"
)

// StaticResolver serves a fixed service -> instances table, typically from configuration.
type StaticResolver struct {
	services map[string][]Instance
}

// NewStaticResolver copies the table so later mutation by the caller is not observed.
func NewStaticResolver(services map[string][]Instance) *StaticResolver {
	copied := make(map[string][]Instance, len(services))
	for name, instances := range services {
		copied[name] = append([]Instance(nil), instances...)
	}
	return &StaticResolver{services: copied}
}

// ParseStaticTargets parses "cards=http://h1:9000,http://h2:9000;loans=http://h3:8090".
// Instance ids are derived as <service>-<n> in declaration order.
func ParseStaticTargets(targets string) (*StaticResolver, error) {
	services := make(map[string][]Instance)
	for _, entry := range strings.Split(targets, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, urls, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("static target %q: expected service=url[,url]", entry)
		}
		if _, dup := services[name]; dup {
			return nil, fmt.Errorf("static target %q declared twice", name)
		}
		for i, raw := range strings.Split(urls, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			inst, err := InstanceFromURL(name, fmt.Sprintf("%s-%d", name, i+1), raw)
			if err != nil {
				return nil, fmt.Errorf("static target %q: %w", name, err)
			}
			services[name] = append(services[name], inst)
		}
	}
	return &StaticResolver{services: services}, nil
}

// Resolve returns a copy of the configured instances for service.
func (r *StaticResolver) Resolve(_ context.Context, service string) ([]Instance, error) {
	instances := r.services[service]
	if len(instances) == 0 {
		return nil, fmt.Errorf("resolve %q: %w", service, ErrNoInstances)
	}
	return append([]Instance(nil), instances...), nil
}

// Services lists the configured service names.
func (r *StaticResolver) Services() []string {
	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	return names
}

var _ Resolver = (*StaticResolver)(nil)
