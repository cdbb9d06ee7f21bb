// Package registry maps resource-kind identifiers to collector
// capabilities. Collectors are registered explicitly at startup; a kind
// with neither a specialized collector nor a fallback entry is a
// configuration gap, not an error.
package registry

import (
	"context"

	"github.com/thirukguru/azure-perimeter/service/azure"
	"github.com/thirukguru/azure-perimeter/service/inventory"
)

// Collector produces findings for one resource kind in one subscription.
// Implementations append into the subscription's store and may enrich the
// labels of findings they appended earlier in the same pass. A collector
// must only touch findings of its own kind.
type Collector interface {
	Kind() string
	Collect(ctx context.Context, sub *azure.SubscriptionContext, store *inventory.Store) error
}

// Registry resolves a resource kind to its collector, preferring a
// specialized collector over a generic fallback for the same kind.
type Registry struct {
	specialized map[string]Collector
	fallback    map[string]Collector
	order       []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		specialized: map[string]Collector{},
		fallback:    map[string]Collector{},
	}
}

// Register adds a specialized collector. Registration order defines scan
// order for the kind set.
func (r *Registry) Register(c Collector) {
	kind := c.Kind()
	if _, seen := r.specialized[kind]; !seen {
		if _, seen := r.fallback[kind]; !seen {
			r.order = append(r.order, kind)
		}
	}
	r.specialized[kind] = c
}

// RegisterFallback adds a generic fallback collector for a kind. It is
// only used when no specialized collector exists for the same kind.
func (r *Registry) RegisterFallback(c Collector) {
	kind := c.Kind()
	if _, seen := r.specialized[kind]; !seen {
		if _, seen := r.fallback[kind]; !seen {
			r.order = append(r.order, kind)
		}
	}
	r.fallback[kind] = c
}

// Resolve returns the collector for a kind, specialized first. The second
// return is false for an unsupported kind.
func (r *Registry) Resolve(kind string) (Collector, bool) {
	if c, ok := r.specialized[kind]; ok {
		return c, true
	}
	if c, ok := r.fallback[kind]; ok {
		return c, true
	}
	return nil, false
}

// Specialized reports whether the kind resolves to a specialized
// collector rather than a fallback.
func (r *Registry) Specialized(kind string) bool {
	_, ok := r.specialized[kind]
	return ok
}

// Kinds returns every registered kind in registration order.
func (r *Registry) Kinds() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
