package types

import (
	"github.com/moznion/go-optional"
	"github.com/tidwall/btree"
)

// SymbolFlags is a bit-set of symbol properties.
type SymbolFlags uint32

const (
	InstanceMember SymbolFlags = 1 << iota
	ClassMember
	IgnoredForProtocolMatch
)

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }

// Declaration is an opaque marker for wherever a symbol was declared.
// Name resolution and AST construction are outside this core's scope; the
// core never looks inside a Declaration, only counts and threads them.
type Declaration any

// Symbol is a named member of a class, module, or namespace.
type Symbol struct {
	Flags         SymbolFlags
	Declarations  []Declaration
	DeclaredType  optional.Option[Type]
	EffectiveType Type
}

// HasTypedDeclarations reports whether this symbol's declared type came
// from an explicit annotation rather than being purely inferred. Member
// lookup's DeclaredTypesOnly flag uses this to decide whether a
// merely-inferred member counts.
func (s *Symbol) HasTypedDeclarations() bool {
	return s.DeclaredType.IsSome()
}

// SymbolTable is an ordered mapping from member name to Symbol. It is
// backed by a btree.Map rather than a plain Go map so that iteration over a
// class's fields — used by protocol structural matching and typed-record
// key collection — is deterministic across runs, keeping diagnostics
// reproducible. Unlike the TypeVar map in internal/typevars, which must
// preserve insertion order, nothing here depends on declaration order
// surviving lookup, so alphabetical btree order is sufficient.
type SymbolTable struct {
	tree btree.Map[string, *Symbol]
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

func (t *SymbolTable) Set(name string, sym *Symbol) {
	t.tree.Set(name, sym)
}

func (t *SymbolTable) Get(name string) (*Symbol, bool) {
	return t.tree.Get(name)
}

func (t *SymbolTable) Delete(name string) {
	t.tree.Delete(name)
}

func (t *SymbolTable) Len() int {
	return t.tree.Len()
}

// ForEach visits every (name, symbol) pair in deterministic key order.
// Stops early if f returns false.
func (t *SymbolTable) ForEach(f func(name string, sym *Symbol) bool) {
	t.tree.Scan(f)
}

// Keys returns the member names in deterministic order.
func (t *SymbolTable) Keys() []string {
	keys := make([]string, 0, t.tree.Len())
	t.tree.Scan(func(name string, _ *Symbol) bool {
		keys = append(keys, name)
		return true
	})
	return keys
}
