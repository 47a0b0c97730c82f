// Copyright © 2026 The gripdap authors

package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/rdbg/gripdap/rdp"
)

// ObjectGripAdapter lazily resolves an object grip into its properties
// as a variable list. Adapters are deduplicated per (thread, actor) by
// ThreadAdapter.GetOrCreateObjectGripAdapter so repeated expansion of
// the same object shares one cached fetch. An adapter registers itself
// as a variables provider at construction; its handle is the
// VariablesReference by which the client expands the object.
type ObjectGripAdapter struct {
	grip           *rdp.ObjectGrip
	thread         *ThreadAdapter
	threadLifetime bool
	handle         int

	// once memoizes the fetch for the adapter's lifetime. A failed
	// fetch stays failed; the owning thread disposes the adapter on
	// resume, so the next pause naturally retries with a fresh one.
	once sync.Once
	vars []*Variable
	err  error
}

var _ VariablesProvider = (*ObjectGripAdapter)(nil)

func newObjectGripAdapter(grip *rdp.ObjectGrip, threadLifetime bool, thread *ThreadAdapter) *ObjectGripAdapter {
	a := &ObjectGripAdapter{
		grip:           grip,
		thread:         thread,
		threadLifetime: threadLifetime,
	}
	a.handle = thread.Registry().Register(a)
	return a
}

// Grip returns the object grip this adapter resolves.
func (a *ObjectGripAdapter) Grip() *rdp.ObjectGrip {
	return a.grip
}

// Handle returns the adapter's registry handle.
func (a *ObjectGripAdapter) Handle() int {
	return a.handle
}

// ThreadLifetime implements VariablesProvider.
func (a *ObjectGripAdapter) ThreadLifetime() bool {
	return a.threadLifetime
}

// Variables fetches the object's own properties on first call and
// returns the cached, sorted variable list on every call after that.
// A fetch failure is returned to the caller, never converted into an
// empty list.
func (a *ObjectGripAdapter) Variables(ctx context.Context) ([]*Variable, error) {
	a.once.Do(func() {
		props, err := a.thread.Client().FetchProperties(ctx, a.grip)
		if err != nil {
			a.err = fmt.Errorf("fetch properties of %s: %w", a.grip.Actor, err)
			return
		}
		vars := variablesFromDescriptorMap(props, a.thread)
		SortVariables(vars)
		a.vars = vars
	})
	if a.err != nil {
		return nil, a.err
	}
	return a.vars, nil
}

// Dispose unregisters the adapter. Safe to call more than once.
func (a *ObjectGripAdapter) Dispose() {
	a.thread.Registry().Unregister(a.handle)
}
