// Copyright © 2026 The gripdap authors

// Package adapter translates remote grips into the lazily-expandable
// tree of named variables a DAP client consumes. Scope adapters wrap a
// paused frame's lexical scopes, object grip adapters resolve and cache
// an object's properties, and the registry hands out the stable numeric
// handles by which the client addresses any subtree across independent
// request/response round trips.
package adapter

import (
	"context"
	"sync"
)

// startHandle is the first handle a registry assigns. Handles start
// well above zero so a zero VariablesReference keeps its DAP meaning
// of "not expandable".
const startHandle = 1000

// VariablesProvider is anything addressable by a registry handle that
// can produce a list of variables on demand. Variables may require a
// round trip to the debuggee and therefore takes a context.
type VariablesProvider interface {
	Variables(ctx context.Context) ([]*Variable, error)
	// ThreadLifetime reports whether the provider must survive the
	// whole thread's lifetime rather than only the current pause. The
	// owning thread consumes this when deciding disposal timing.
	ThreadLifetime() bool
}

// Registry maps handles to variables providers. A registry is owned by
// the debugging session and passed by reference to whoever must
// register, unregister, or look up providers; handles are assigned by
// a monotonic counter scoped to the registry instance and are never
// reused by another live provider.
type Registry struct {
	mu         sync.Mutex
	nextHandle int
	providers  map[int]VariablesProvider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nextHandle: startHandle,
		providers:  make(map[int]VariablesProvider),
	}
}

// Register assigns the provider a fresh handle and returns it.
func (r *Registry) Register(p VariablesProvider) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle := r.nextHandle
	r.nextHandle++
	r.providers[handle] = p
	return handle
}

// Unregister removes the provider registered under handle. Handles
// that are absent (never assigned, or already unregistered) are
// ignored, which makes provider disposal idempotent.
func (r *Registry) Unregister(handle int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, handle)
}

// Lookup returns the provider registered under handle.
func (r *Registry) Lookup(handle int) (VariablesProvider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[handle]
	return p, ok
}

// Len returns the number of live providers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.providers)
}
