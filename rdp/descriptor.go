// Copyright © 2026 The gripdap authors

package rdp

// PropertyDescriptor describes one named property of an object or
// binding environment, as reported by the remote protocol. A
// descriptor carries either a plain value, a getter/setter pair, or a
// pre-evaluated safe getter value. Enumerability and writability are
// reported but opaque to the adapter layer.
type PropertyDescriptor struct {
	Value *Grip `json:"value,omitempty"`
	Get   *Grip `json:"get,omitempty"`
	Set   *Grip `json:"set,omitempty"`
	// GetterValue is set when the server evaluated a side-effect-free
	// getter on the adapter's behalf.
	GetterValue  *Grip `json:"getterValue,omitempty"`
	Enumerable   bool  `json:"enumerable,omitempty"`
	Writable     bool  `json:"writable,omitempty"`
	Configurable bool  `json:"configurable,omitempty"`
}

// PropertyDescriptorMap maps property names to descriptors. Iteration
// order is irrelevant; consumers sort by name before display.
type PropertyDescriptorMap map[string]PropertyDescriptor

// FunctionBindings is a function scope's bindings as reported by the
// remote protocol: parameters in declaration order (each element is a
// single-entry map, and positions may repeat when parameters shadow),
// plus the captured closure variables.
type FunctionBindings struct {
	Arguments []PropertyDescriptorMap `json:"arguments"`
	Variables PropertyDescriptorMap   `json:"variables"`
}
