// Copyright © 2026 The gripdap authors

package adapter

import (
	"context"

	"github.com/google/go-dap"

	"github.com/rdbg/gripdap/rdp"
)

// ScopeAdapter presents one scope of a paused frame (block locals,
// function bindings, a scope object, or a bare single value) as a
// variables provider. Every scope adapter registers itself with its
// owning thread and with the session registry at construction, so its
// lifetime is always driven by the owning thread, never by the client.
type ScopeAdapter interface {
	VariablesProvider

	// Name returns the scope's display name.
	Name() string
	// Handle returns the registry handle assigned at construction.
	Handle() int
	// Scope returns the boundary-facing descriptor a "list scopes"
	// response carries.
	Scope() dap.Scope
	// AddThis injects a synthetic "this" entry built from the grip.
	AddThis(g rdp.Grip)
	// AddReturnValue injects a synthetic "Return value" entry.
	AddReturnValue(g rdp.Grip)
	// ObjectGripAdapters returns every grip adapter reachable from
	// this scope, including those owned by the synthetic entries. The
	// owning thread uses this to know which cached adapters share the
	// scope's fate.
	ObjectGripAdapters() []*ObjectGripAdapter
	// Dispose unregisters the scope from the registry. Safe to call
	// more than once.
	Dispose()
}

// scopeVariant is what a concrete scope shape must supply: its own
// regular variables (which may require a remote fetch) and the grip
// adapters those variables own.
type scopeVariant interface {
	regularVariables(ctx context.Context) ([]*Variable, error)
	regularObjectGripAdapters() []*ObjectGripAdapter
}

// concreteScope is what a concrete shape looks like to register: the
// full public contract plus the variant hooks.
type concreteScope interface {
	ScopeAdapter
	scopeVariant
}

// scopeAdapter carries the state shared by all scope shapes. Concrete
// variants embed it and call register from their constructors.
type scopeAdapter struct {
	name    string
	thread  *ThreadAdapter
	handle  int
	variant scopeVariant

	// Synthetic entries. When present they are surfaced ahead of the
	// regular variables, return value first, and are never subject to
	// the variant's sort.
	returnValue *Variable
	thisValue   *Variable
}

// register wires the construction side effects: the adapter joins its
// owning thread's pause state and the session registry. self is the
// concrete adapter embedding this base.
func (s *scopeAdapter) register(name string, thread *ThreadAdapter, self concreteScope) {
	s.name = name
	s.thread = thread
	s.variant = self
	s.handle = thread.Registry().Register(self)
	thread.RegisterScopeAdapter(self)
}

func (s *scopeAdapter) Name() string { return s.name }

func (s *scopeAdapter) Handle() int { return s.handle }

// ThreadLifetime implements VariablesProvider. Scopes belong to the
// current pause.
func (s *scopeAdapter) ThreadLifetime() bool { return false }

func (s *scopeAdapter) Scope() dap.Scope {
	return dap.Scope{
		Name:               s.name,
		VariablesReference: s.handle,
	}
}

func (s *scopeAdapter) AddThis(g rdp.Grip) {
	s.thisValue = NewVariableFromGrip("this", g, false, s.thread)
}

func (s *scopeAdapter) AddReturnValue(g rdp.Grip) {
	s.returnValue = NewVariableFromGrip("Return value", g, false, s.thread)
}

// Variables returns the scope's entries in their contract order:
// return value, then this, then the variant's regular variables. The
// merged list is recomposed on every call from already-resolved
// pieces; concurrent calls each get an equivalent list.
func (s *scopeAdapter) Variables(ctx context.Context) ([]*Variable, error) {
	regular, err := s.variant.regularVariables(ctx)
	if err != nil {
		return nil, err
	}
	vars := make([]*Variable, 0, len(regular)+2)
	if s.returnValue != nil {
		vars = append(vars, s.returnValue)
	}
	if s.thisValue != nil {
		vars = append(vars, s.thisValue)
	}
	return append(vars, regular...), nil
}

func (s *scopeAdapter) ObjectGripAdapters() []*ObjectGripAdapter {
	variant := s.variant.regularObjectGripAdapters()
	adapters := make([]*ObjectGripAdapter, 0, len(variant)+2)
	adapters = append(adapters, variant...)
	if s.thisValue != nil && s.thisValue.objectGripAdapter != nil {
		adapters = append(adapters, s.thisValue.objectGripAdapter)
	}
	if s.returnValue != nil && s.returnValue.objectGripAdapter != nil {
		adapters = append(adapters, s.returnValue.objectGripAdapter)
	}
	return adapters
}

func (s *scopeAdapter) Dispose() {
	s.thread.Registry().Unregister(s.handle)
}

// ScopeAdapterFromGrip classifies a grip and builds the matching scope
// shape: object grips become object scopes, everything else becomes a
// single-value scope. This is the one extension point for new value
// shapes.
func ScopeAdapterFromGrip(name string, g rdp.Grip, thread *ThreadAdapter) ScopeAdapter {
	if g.IsObject() {
		return NewObjectScopeAdapter(name, g.Object, thread)
	}
	return NewSingleValueScopeAdapter(name, g, thread)
}

// SingleValueScopeAdapter wraps exactly one value, e.g. an exception
// display slot. The sole variable carries the empty name.
type SingleValueScopeAdapter struct {
	scopeAdapter
	variable *Variable
}

var _ ScopeAdapter = (*SingleValueScopeAdapter)(nil)

// NewSingleValueScopeAdapter builds a scope around one grip.
func NewSingleValueScopeAdapter(name string, g rdp.Grip, thread *ThreadAdapter) *SingleValueScopeAdapter {
	a := &SingleValueScopeAdapter{}
	a.variable = NewVariableFromGrip("", g, false, thread)
	a.register(name, thread, a)
	return a
}

func (a *SingleValueScopeAdapter) regularVariables(ctx context.Context) ([]*Variable, error) {
	return []*Variable{a.variable}, nil
}

func (a *SingleValueScopeAdapter) regularObjectGripAdapters() []*ObjectGripAdapter {
	return collectObjectGripAdapters([]*Variable{a.variable})
}

// ObjectScopeAdapter wraps an object grip used directly as a scope,
// e.g. a lexical or global object. Its regular variables are whatever
// the object's grip adapter lazily resolves.
type ObjectScopeAdapter struct {
	scopeAdapter
	objectGripAdapter *ObjectGripAdapter
}

var _ ScopeAdapter = (*ObjectScopeAdapter)(nil)

// NewObjectScopeAdapter builds a scope backed by an object grip. The
// grip adapter is obtained through the owning thread, so repeated use
// of the same object within one pause shares a cached fetch.
func NewObjectScopeAdapter(name string, obj *rdp.ObjectGrip, thread *ThreadAdapter) *ObjectScopeAdapter {
	a := &ObjectScopeAdapter{}
	a.objectGripAdapter = thread.GetOrCreateObjectGripAdapter(obj, false)
	a.register(name, thread, a)
	return a
}

func (a *ObjectScopeAdapter) regularVariables(ctx context.Context) ([]*Variable, error) {
	return a.objectGripAdapter.Variables(ctx)
}

func (a *ObjectScopeAdapter) regularObjectGripAdapters() []*ObjectGripAdapter {
	return []*ObjectGripAdapter{a.objectGripAdapter}
}

// LocalVariablesScopeAdapter presents a property-descriptor map as a
// block or local scope. The entries are converted eagerly at
// construction (their values stay lazily expandable) and sorted with
// the shared comparator.
type LocalVariablesScopeAdapter struct {
	scopeAdapter
	variables []*Variable
}

var _ ScopeAdapter = (*LocalVariablesScopeAdapter)(nil)

// NewLocalVariablesScopeAdapter builds a scope from a descriptor map.
func NewLocalVariablesScopeAdapter(name string, props rdp.PropertyDescriptorMap, thread *ThreadAdapter) *LocalVariablesScopeAdapter {
	a := &LocalVariablesScopeAdapter{}
	a.variables = variablesFromDescriptorMap(props, thread)
	SortVariables(a.variables)
	a.register(name, thread, a)
	return a
}

func (a *LocalVariablesScopeAdapter) regularVariables(ctx context.Context) ([]*Variable, error) {
	return a.variables, nil
}

func (a *LocalVariablesScopeAdapter) regularObjectGripAdapters() []*ObjectGripAdapter {
	return collectObjectGripAdapters(a.variables)
}

// FunctionScopeAdapter presents a function's bindings: parameters in
// declaration order (shadowing duplicates append rather than replace),
// then captured closure variables, the combined list sorted with the
// shared comparator.
type FunctionScopeAdapter struct {
	scopeAdapter
	variables []*Variable
}

var _ ScopeAdapter = (*FunctionScopeAdapter)(nil)

// NewFunctionScopeAdapter builds a scope from function bindings.
func NewFunctionScopeAdapter(name string, bindings rdp.FunctionBindings, thread *ThreadAdapter) *FunctionScopeAdapter {
	a := &FunctionScopeAdapter{}
	for _, param := range bindings.Arguments {
		for pname, desc := range param {
			a.variables = append(a.variables, NewVariableFromPropertyDescriptor(pname, desc, false, thread))
		}
	}
	a.variables = append(a.variables, variablesFromDescriptorMap(bindings.Variables, thread)...)
	SortVariables(a.variables)
	a.register(name, thread, a)
	return a
}

func (a *FunctionScopeAdapter) regularVariables(ctx context.Context) ([]*Variable, error) {
	return a.variables, nil
}

func (a *FunctionScopeAdapter) regularObjectGripAdapters() []*ObjectGripAdapter {
	return collectObjectGripAdapters(a.variables)
}
