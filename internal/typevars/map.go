// Package typevars holds the type-variable binding map threaded through
// specialization and assignability.
package typevars

import "github.com/typecore-lang/typecore/internal/types"

// Map binds type-variable names to the concrete types discovered for them
// during specialization or assignment. Iteration order must match
// insertion order — unlike internal/types.SymbolTable, which only needs
// determinism, this map's order can itself end up embedded in diagnostic
// messages. A btree would reorder by key and break that, so this is a
// plain slice-of-keys plus a lookup map instead.
type Map struct {
	keys   []string
	values map[string]types.Type
}

func New() *Map {
	return &Map{values: make(map[string]types.Type)}
}

// Get returns the bound type for name and whether it was present.
func (m *Map) Get(name string) (types.Type, bool) {
	t, ok := m.values[name]
	return t, ok
}

// Set binds name to t, appending name to the key order only the first
// time it's set.
func (m *Map) Set(name string, t types.Type) {
	if _, exists := m.values[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.values[name] = t
}

// Has reports whether name has a binding.
func (m *Map) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Keys returns the bound names in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of bindings.
func (m *Map) Len() int { return len(m.keys) }

// Clone returns an independent copy; mutating the clone never affects m.
func (m *Map) Clone() *Map {
	c := New()
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// ForEach visits every (name, type) pair in insertion order. Stops early
// if f returns false.
func (m *Map) ForEach(f func(name string, t types.Type) bool) {
	for _, k := range m.keys {
		if !f(k, m.values[k]) {
			return
		}
	}
}
