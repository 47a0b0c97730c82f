// Copyright © 2026 The gripdap authors

package dapserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdbg/gripdap/adapter"
	"github.com/rdbg/gripdap/rdp"
)

func TestTranslateVariables(t *testing.T) {
	client := &fakeClient{objects: map[string]rdp.PropertyDescriptorMap{}}
	thread := newTestThread(client)

	obj := &rdp.ObjectGrip{Actor: "obj1", Class: "Array"}
	vars := []*adapter.Variable{
		adapter.NewVariableFromGrip("plain", rdp.String("v"), false, thread),
		adapter.NewVariableFromGrip("expandable", rdp.Object(obj), false, thread),
	}

	out := translateVariables(vars)
	require.Len(t, out, 2)

	assert.Equal(t, "plain", out[0].Name)
	assert.Equal(t, `"v"`, out[0].Value)
	assert.Zero(t, out[0].VariablesReference)

	assert.Equal(t, "expandable", out[1].Name)
	assert.Equal(t, "Array", out[1].Value)
	assert.Equal(t, vars[1].VariablesReference(), out[1].VariablesReference)
	assert.NotZero(t, out[1].VariablesReference)
}

func TestTranslateScopes(t *testing.T) {
	thread := newTestThread(&fakeClient{})
	s1 := adapter.NewLocalVariablesScopeAdapter("Local", nil, thread)
	s2 := adapter.NewFunctionScopeAdapter("Function", rdp.FunctionBindings{}, thread)

	out := translateScopes([]adapter.ScopeAdapter{s1, s2})
	require.Len(t, out, 2)
	assert.Equal(t, "Local", out[0].Name)
	assert.Equal(t, s1.Handle(), out[0].VariablesReference)
	assert.Equal(t, "Function", out[1].Name)
	assert.Equal(t, s2.Handle(), out[1].VariablesReference)
}
