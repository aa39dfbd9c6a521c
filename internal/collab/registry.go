package collab

import "github.com/typecore-lang/typecore/internal/types"

// Registry is a minimal in-memory SymbolProvider/ImportLookup used only by
// tests exercising CanAssign's builtin special-cases that go through
// ImportLookup (the builtin `object` class check). It is
// not meant to model a real module system — both interfaces belong to an
// external collaborator this core never implements for production use.
type Registry struct {
	modules map[string]types.Type
	typed   map[*types.Symbol]bool
}

func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]types.Type),
		typed:   make(map[*types.Symbol]bool),
	}
}

// Register associates name with t so Resolve(name) returns it.
func (r *Registry) Register(name string, t types.Type) *Registry {
	r.modules[name] = t
	return r
}

func (r *Registry) Resolve(name string) types.Type {
	if t, ok := r.modules[name]; ok {
		return t
	}
	return types.NewUnknownType(nil)
}

func (r *Registry) DeclaredType(sym *types.Symbol) (types.Type, bool) {
	if sym.DeclaredType.IsNone() {
		return nil, false
	}
	return sym.DeclaredType.Unwrap(), true
}

func (r *Registry) EffectiveType(sym *types.Symbol) types.Type {
	return sym.EffectiveType
}

func (r *Registry) IsTyped(sym *types.Symbol) bool {
	return sym.HasTypedDeclarations()
}

// NewBuiltinRegistry registers plain (non-generic) classes for every name
// Resolve is expected to special-case, suitable as a starting point for
// test fixtures that don't care about the classes' members.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	names := []string{
		BuiltinObject, BuiltinType, BuiltinTypeGeneric, BuiltinModuleType,
		BuiltinTuple, BuiltinBool, BuiltinInt, BuiltinFloat, BuiltinComplex,
		BuiltinNoReturn, BuiltinEllipsis, BuiltinEnumMeta,
	}
	for _, name := range names {
		class := types.NewClassType(nil, name)
		class.IsBuiltin = true
		r.Register(name, types.NewObjectType(nil, class))
	}
	return r
}
