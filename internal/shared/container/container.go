package container

import (
	"errors"
	"fmt"
	"sync"
)

var ErrServiceNotFound = errors.New("container: service not found")

// Container is a named service registry filled once during route setup
type Container struct {
	mu       sync.RWMutex
	services map[string]any
}

func New() *Container {
	return &Container{
		services: make(map[string]any),
	}
}

// Register stores instance under name, replacing any previous registration
func (c *Container) Register(name string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.services[name] = instance
}

func (c *Container) Get(name string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	instance, ok := c.services[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	return instance, nil
}

func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.services[name]
	return ok
}

// Resolve returns the service registered under name as T
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T

	instance, err := c.Get(name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: service %s is %T, not %T", name, instance, zero)
	}
	return typed, nil
}

// MustResolve is Resolve for wiring code, where a missing service is a programming error
func MustResolve[T any](c *Container, name string) T {
	typed, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return typed
}
