package jsonrpc

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Handler runs one method call. Returned errors are mapped onto JSON-RPC
// error codes by the server; handlers may also return an *Error directly.
type Handler func(ctx context.Context, params json.RawMessage) (any, error)

// Method is a callable method with a one-line summary for help text.
type Method struct {
	Name    string
	Summary string
	Handler Handler
}

// MethodRegistry maps method names to methods.
type MethodRegistry struct {
	methods map[string]Method
}

// NewMethodRegistry creates an empty registry.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]Method)}
}

// Register adds m. Registering a name twice is a programming error and
// panics.
func (r *MethodRegistry) Register(m Method) {
	if _, dup := r.methods[m.Name]; dup {
		panic(fmt.Sprintf("jsonrpc: method %q registered twice", m.Name))
	}
	r.methods[m.Name] = m
}

func (r *MethodRegistry) lookup(name string) (Method, bool) {
	m, ok := r.methods[name]
	return m, ok
}

// Methods returns every registered method sorted by name.
func (r *MethodRegistry) Methods() []Method {
	return slices.SortedFunc(maps.Values(r.methods), func(a, b Method) int {
		return cmp.Compare(a.Name, b.Name)
	})
}
