package dispatch

import (
	"loanserve-backend/pkg/apperr"
)

// Registry maps a capability name to a provider. It is populated once during
// wiring and never mutated afterwards, so reads need no locking.
type Registry struct {
	singletons map[string]any
	factories  map[string]func() any
}

func NewRegistry() *Registry {
	return &Registry{
		singletons: make(map[string]any),
		factories:  make(map[string]func() any),
	}
}

func (r *Registry) RegisterSingleton(capability string, instance any) {
	r.singletons[capability] = instance
}

func (r *Registry) RegisterFactory(capability string, producer func() any) {
	r.factories[capability] = producer
}

// Resolve checks the singleton table first, then the factory table. An
// unregistered capability is a hard configuration failure, never a nil.
func (r *Registry) Resolve(capability string) (any, error) {
	if inst, ok := r.singletons[capability]; ok {
		return inst, nil
	}
	if producer, ok := r.factories[capability]; ok {
		return producer(), nil
	}
	return nil, apperr.Configuration(capability)
}

func (r *Registry) Has(capability string) bool {
	if _, ok := r.singletons[capability]; ok {
		return true
	}
	_, ok := r.factories[capability]
	return ok
}
