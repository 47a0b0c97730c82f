// Copyright © 2026 The gripdap authors

package dapserver

import (
	"github.com/google/go-dap"

	"github.com/rdbg/gripdap/adapter"
)

// translateScopes converts scope adapters to DAP Scope descriptors in
// the order the frame owner supplied them.
func translateScopes(scopes []adapter.ScopeAdapter) []dap.Scope {
	out := make([]dap.Scope, len(scopes))
	for i, s := range scopes {
		out[i] = s.Scope()
	}
	return out
}

// translateVariables converts adapter variables to DAP Variable
// objects. Expandable values carry the registry handle of their grip
// adapter as VariablesReference; everything else carries zero.
func translateVariables(vars []*adapter.Variable) []dap.Variable {
	out := make([]dap.Variable, len(vars))
	for i, v := range vars {
		out[i] = dap.Variable{
			Name:               v.Name,
			Value:              v.Value,
			VariablesReference: v.VariablesReference(),
		}
	}
	return out
}
