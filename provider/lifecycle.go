package provider

import (
	"context"
	stderrors "errors"
)

// Closeable is implemented by providers holding resources that need explicit cleanup.
type Closeable interface {
	Close(ctx context.Context) error
}

// CloseAll closes every cached instance that implements Closeable and joins the errors.
func (r *Registry[T]) CloseAll(ctx context.Context) error {
	r.mu.RLock()
	instances := make([]T, 0, len(r.instances))
	for _, name := range sortedKeys(r.instances) {
		instances = append(instances, r.instances[name])
	}
	r.mu.RUnlock()

	var errs []error
	for _, inst := range instances {
		if c, ok := any(inst).(Closeable); ok {
			if err := c.Close(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return stderrors.Join(errs...)
}
