package container

import (
	"reflect"
	"sync"
)

// Container is a minimal service registry keyed by type. It is the
// application's dependency source; the mediator reaches it only through
// Lookup wrapped in a mediator.ServiceLocator.
type Container struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
}

// New creates an empty container
func New() *Container {
	return &Container{
		services: make(map[reflect.Type]any),
	}
}

// Provide registers v as the instance served for type T, replacing any
// previous instance. T is usually an interface: Provide[user.Store](c, repo).
func Provide[T any](c *Container, v T) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[t] = v
}

// Lookup returns the instance registered for t, or nil
func (c *Container) Lookup(t reflect.Type) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.services[t]
}

// Len returns the number of registered services
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.services)
}
