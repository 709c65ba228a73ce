package model

import (
	"fmt"
	"strings"
	"sync"
)

// Factory builds a hydrated model from raw input. Options come from the
// record constructing the nested model, so its location carries through.
type Factory func(data map[string]any, opts ...Option) (Model, error)

// Registry maps model tags to factories. Nested-model coercion resolves
// through a registry, so the set of known models is fixed at registration
// time and an unknown tag fails at coercion time.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func (r *Registry) Register(tag string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("model: factory is nil")
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("model: model tag is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[tag]; exists {
		return fmt.Errorf("model: model already registered: %s", tag)
	}
	r.factories[tag] = factory
	return nil
}

// MustRegister registers a factory and panics on failure. Registration runs
// at package initialization, so a failure is a programmer error.
func (r *Registry) MustRegister(tag string, factory Factory) {
	if err := r.Register(tag, factory); err != nil {
		panic(err)
	}
}

func (r *Registry) Has(tag string) bool {
	r.mu.RLock()
	_, ok := r.factories[strings.TrimSpace(tag)]
	r.mu.RUnlock()
	return ok
}

// Build constructs the model registered under tag from raw input, forwarding
// opts to the factory.
func (r *Registry) Build(tag string, data map[string]any, opts ...Option) (Model, error) {
	if r == nil {
		return nil, typeUndefinedError(tag)
	}
	r.mu.RLock()
	factory, ok := r.factories[strings.TrimSpace(tag)]
	r.mu.RUnlock()
	if !ok {
		return nil, typeUndefinedError(tag)
	}
	return factory(data, opts...)
}
