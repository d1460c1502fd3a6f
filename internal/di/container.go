// Package di provides the string-keyed service locator every subsystem is
// wired through. Factories are registered cheaply at bootstrap and invoked
// lazily, so only the services a process actually touches pay construction
// cost.
package di

import (
	"errors"
	"fmt"
	"sync"
)

// ErrServiceNotFound is returned when resolving a key that was never
// registered. It signals a wiring bug, not a runtime condition.
var ErrServiceNotFound = errors.New("service not found")

// Resolver builds a service instance. It receives the container so
// factories can resolve their own dependencies.
type Resolver func(c *Container) any

type binding struct {
	resolver  Resolver
	instance  any // used when a ready value was registered instead of a factory
	hasValue  bool
	singleton bool
}

// Container is a lazy service locator. Registration happens during
// bootstrap, before the server accepts traffic; after that, resolution is
// safe from concurrent request goroutines.
type Container struct {
	mu        sync.Mutex
	services  map[string]binding
	instances map[string]any
}

func New() *Container {
	return &Container{
		services:  make(map[string]binding),
		instances: make(map[string]any),
	}
}

// Register stores a factory under key. Re-registering a key overwrites the
// previous binding and drops any cached singleton; overriding a default
// with a test double is an expected use.
func (c *Container) Register(key string, resolver Resolver, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[key] = binding{resolver: resolver, singleton: singleton}
	delete(c.instances, key)
}

// RegisterValue stores a ready instance under key. Resolve returns it
// as-is; no factory is ever invoked.
func (c *Container) RegisterValue(key string, value any, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[key] = binding{instance: value, hasValue: true, singleton: singleton}
	delete(c.instances, key)
}

// Instance seeds the singleton cache with value and registers it, so every
// subsequent Resolve returns the same value without invoking anything.
func (c *Container) Instance(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[key] = binding{instance: value, hasValue: true, singleton: true}
	c.instances[key] = value
}

// Has reports whether key is registered. No side effects.
func (c *Container) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.services[key]
	return ok
}

// Resolve returns the service bound to key, building and caching it on
// first use for singleton keys.
func (c *Container) Resolve(key string) (any, error) {
	c.mu.Lock()
	if cached, ok := c.instances[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	b, ok := c.services[key]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, key)
	}

	if b.hasValue {
		return b.instance, nil
	}

	// The lock is released while the factory runs: factories resolve
	// their own dependencies through the container.
	built := b.resolver(c)

	if b.singleton {
		c.mu.Lock()
		// Another goroutine may have won the race during bootstrap tests;
		// first cached value wins so singleton identity holds.
		if cached, ok := c.instances[key]; ok {
			c.mu.Unlock()
			return cached, nil
		}
		c.instances[key] = built
		c.mu.Unlock()
	}
	return built, nil
}

// MustResolve is Resolve for wiring paths where a missing key is fatal.
func (c *Container) MustResolve(key string) any {
	v, err := c.Resolve(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Make builds a fresh instance every call. The singleton cache is neither
// consulted nor updated.
func (c *Container) Make(key string) (any, error) {
	c.mu.Lock()
	b, ok := c.services[key]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, key)
	}
	if b.hasValue {
		return b.instance, nil
	}
	return b.resolver(c), nil
}
