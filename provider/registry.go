package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named factories and the live instances built from them.
// It is safe for concurrent use and is meant to be constructed and injected,
// not shared as a package global.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
	instances map[string]T
}

// NewRegistry creates an empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		instances: make(map[string]T),
	}
}

// RegisterFactory registers a named factory.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create builds an instance with the named factory without caching it.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("provider factory %q not registered", name)
	}
	return factory(cfg)
}

// Initialize builds an instance with the named factory and caches it under the same name.
func (r *Registry[T]) Initialize(name string, cfg map[string]any) (T, error) {
	inst, err := r.Create(name, cfg)
	if err != nil {
		return inst, err
	}
	r.Set(name, inst)
	return inst, nil
}

// Get returns a cached instance by name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Set caches an instance by name, replacing any previous one.
func (r *Registry[T]) Set(name string, instance T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[name] = instance
}

// List returns the sorted names of registered factories.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.factories)
}

// Instances returns the sorted names of cached instances.
func (r *Registry[T]) Instances() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.instances)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
