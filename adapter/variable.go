// Copyright © 2026 The gripdap authors

package adapter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rdbg/gripdap/rdp"
)

// Variable is one named entry in a variables view. When the underlying
// value is an object grip the variable owns a reference to the grip's
// adapter, through which the client can expand it.
type Variable struct {
	Name  string
	Value string

	objectGripAdapter *ObjectGripAdapter
}

// ObjectGripAdapter returns the adapter for the variable's value, or
// nil when the value is not expandable.
func (v *Variable) ObjectGripAdapter() *ObjectGripAdapter {
	return v.objectGripAdapter
}

// VariablesReference returns the registry handle a DAP client uses to
// expand the variable, or 0 when the value is not expandable.
func (v *Variable) VariablesReference() int {
	if v.objectGripAdapter == nil {
		return 0
	}
	return v.objectGripAdapter.Handle()
}

// NewVariableFromGrip builds a variable for a grip. Object grips are
// routed through the thread's deduplicated grip adapter cache so that
// repeated references to the same object share one adapter (and one
// cached fetch). threadLifetime selects the adapter's disposal timing;
// synthetic this/return entries and scope contents are pause-lifetime.
func NewVariableFromGrip(name string, g rdp.Grip, threadLifetime bool, thread *ThreadAdapter) *Variable {
	v := &Variable{
		Name:  name,
		Value: g.Display(),
	}
	if g.IsObject() {
		v.objectGripAdapter = thread.GetOrCreateObjectGripAdapter(g.Object, threadLifetime)
	}
	return v
}

// NewVariableFromPropertyDescriptor builds a variable for one property
// descriptor. Plain values and safe getter values go through the grip
// path; accessor properties without a value render as a placeholder
// since invoking getters is not this layer's business.
func NewVariableFromPropertyDescriptor(name string, d rdp.PropertyDescriptor, threadLifetime bool, thread *ThreadAdapter) *Variable {
	switch {
	case d.Value != nil:
		return NewVariableFromGrip(name, *d.Value, threadLifetime, thread)
	case d.GetterValue != nil:
		return NewVariableFromGrip(name, *d.GetterValue, threadLifetime, thread)
	case d.Get != nil && d.Set != nil:
		return &Variable{Name: name, Value: "getter & setter"}
	case d.Get != nil:
		return &Variable{Name: name, Value: "getter"}
	case d.Set != nil:
		return &Variable{Name: name, Value: "setter"}
	default:
		return &Variable{Name: name, Value: "undefined"}
	}
}

// variablesFromDescriptorMap builds one variable per map entry. The
// result is unsorted; callers apply SortVariables.
func variablesFromDescriptorMap(props rdp.PropertyDescriptorMap, thread *ThreadAdapter) []*Variable {
	vars := make([]*Variable, 0, len(props))
	for name, desc := range props {
		vars = append(vars, NewVariableFromPropertyDescriptor(name, desc, false, thread))
	}
	return vars
}

// SortVariables orders sibling variables with the shared comparator:
// numeric-index names first in numeric order, then the rest in
// case-insensitive lexical order with a case-sensitive tiebreak. The
// sort is stable, so entries with equal names keep their insertion
// order and nothing is ever dropped.
func SortVariables(vars []*Variable) {
	sort.SliceStable(vars, func(i, j int) bool {
		return compareNames(vars[i].Name, vars[j].Name) < 0
	})
}

func compareNames(a, b string) int {
	ai, aNum := parseIndex(a)
	bi, bNum := parseIndex(b)
	switch {
	case aNum && bNum:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}
	al, bl := strings.ToLower(a), strings.ToLower(b)
	switch {
	case al < bl:
		return -1
	case al > bl:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func parseIndex(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil && s != ""
}

// collectObjectGripAdapters filters the adapters owned by expandable
// variables, preserving order.
func collectObjectGripAdapters(vars []*Variable) []*ObjectGripAdapter {
	var adapters []*ObjectGripAdapter
	for _, v := range vars {
		if v.objectGripAdapter != nil {
			adapters = append(adapters, v.objectGripAdapter)
		}
	}
	return adapters
}
