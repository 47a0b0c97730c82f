// Copyright © 2026 The gripdap authors

package adapter

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rdbg/gripdap/rdp"
)

// ThreadAdapter owns the inspection state of one debuggee thread: the
// scope adapters created for the current pause and the object grip
// adapter caches. All scope adapters register themselves here at
// construction, so the thread can enumerate and dispose a pause's
// state in one place when execution resumes.
type ThreadAdapter struct {
	name     string
	registry *Registry
	client   rdp.Client
	log      *logrus.Entry

	mu          sync.Mutex
	scopes      []ScopeAdapter
	pauseGrips  map[string]*ObjectGripAdapter
	threadGrips map[string]*ObjectGripAdapter
}

// NewThreadAdapter creates an adapter for one debuggee thread. The
// registry is owned by the session and shared across threads.
func NewThreadAdapter(name string, registry *Registry, client rdp.Client, logger *logrus.Logger) *ThreadAdapter {
	if logger == nil {
		logger = logrus.New()
	}
	return &ThreadAdapter{
		name:        name,
		registry:    registry,
		client:      client,
		log:         logger.WithField("thread", name),
		pauseGrips:  make(map[string]*ObjectGripAdapter),
		threadGrips: make(map[string]*ObjectGripAdapter),
	}
}

// Name returns the thread's display name.
func (t *ThreadAdapter) Name() string { return t.name }

// Registry returns the session registry used for handle assignment.
func (t *ThreadAdapter) Registry() *Registry { return t.registry }

// Client returns the remote-protocol client for this thread.
func (t *ThreadAdapter) Client() rdp.Client { return t.client }

// GetOrCreateObjectGripAdapter returns the adapter for the given
// object grip, creating it on first use. Adapters are deduplicated by
// the object's actor id so that caches and further delegation stay
// coherent: expanding the same object twice within one pause shares
// one adapter and one remote fetch. threadLifetime selects which cache
// the adapter lives in and therefore when it is disposed.
func (t *ThreadAdapter) GetOrCreateObjectGripAdapter(grip *rdp.ObjectGrip, threadLifetime bool) *ObjectGripAdapter {
	t.mu.Lock()
	defer t.mu.Unlock()
	cache := t.pauseGrips
	if threadLifetime {
		cache = t.threadGrips
	}
	if a, ok := cache[grip.Actor]; ok {
		return a
	}
	a := newObjectGripAdapter(grip, threadLifetime, t)
	cache[grip.Actor] = a
	t.log.WithFields(logrus.Fields{
		"actor":          grip.Actor,
		"threadLifetime": threadLifetime,
	}).Debug("created object grip adapter")
	return a
}

// RegisterScopeAdapter records a scope adapter as part of the current
// pause. Called by scope adapter constructors.
func (t *ThreadAdapter) RegisterScopeAdapter(s ScopeAdapter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scopes = append(t.scopes, s)
}

// Scopes returns the scope adapters registered for the current pause,
// in registration order.
func (t *ThreadAdapter) Scopes() []ScopeAdapter {
	t.mu.Lock()
	defer t.mu.Unlock()
	scopes := make([]ScopeAdapter, len(t.scopes))
	copy(scopes, t.scopes)
	return scopes
}

// DisposePauseLifetimeAdapters disposes every scope adapter and
// pause-lifetime object grip adapter. The owning session calls this
// when the thread resumes, steps, or terminates; after it returns,
// registry lookups for the disposed handles fail cleanly.
func (t *ThreadAdapter) DisposePauseLifetimeAdapters() {
	t.mu.Lock()
	scopes := t.scopes
	grips := t.pauseGrips
	t.scopes = nil
	t.pauseGrips = make(map[string]*ObjectGripAdapter)
	t.mu.Unlock()

	for _, s := range scopes {
		s.Dispose()
	}
	for _, a := range grips {
		a.Dispose()
	}
	t.log.WithFields(logrus.Fields{
		"scopes": len(scopes),
		"grips":  len(grips),
	}).Debug("disposed pause-lifetime adapters")
}

// Dispose tears down all of the thread's state, including
// thread-lifetime grip adapters. Called when the thread exits.
func (t *ThreadAdapter) Dispose() {
	t.DisposePauseLifetimeAdapters()

	t.mu.Lock()
	grips := t.threadGrips
	t.threadGrips = make(map[string]*ObjectGripAdapter)
	t.mu.Unlock()

	for _, a := range grips {
		a.Dispose()
	}
}
