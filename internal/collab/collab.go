// Package collab pins the interfaces of the core's external
// collaborators: symbol information and builtin-module lookup.
// None of their implementations live here in production — this package
// only fixes the contract the assignability engine is allowed to call
// through, plus a small in-memory stand-in used by tests.
package collab

import "github.com/typecore-lang/typecore/internal/types"

// SymbolProvider answers what a symbol's declared and effective types are,
// and whether its declarations are typed.
type SymbolProvider interface {
	DeclaredType(sym *types.Symbol) (types.Type, bool)
	EffectiveType(sym *types.Symbol) types.Type
	IsTyped(sym *types.Symbol) bool
}

// ImportLookup resolves a builtin name to the type it names. Callers in
// this module expect an Object of the builtin class, not a Module type:
// class-class comparison uses it to confirm the builtin `object` class,
// and NewBuiltinRegistry registers an Object for each of the names below.
type ImportLookup interface {
	Resolve(moduleName string) types.Type
}

// Builtin names ImportLookup.Resolve is expected to special-case.
const (
	BuiltinObject      = "object"
	BuiltinType        = "type"
	BuiltinTypeGeneric = "Type"
	BuiltinModuleType  = "ModuleType"
	BuiltinTuple       = "Tuple"
	BuiltinBool        = "bool"
	BuiltinInt         = "int"
	BuiltinFloat       = "float"
	BuiltinComplex     = "complex"
	BuiltinNoReturn    = "NoReturn"
	BuiltinEllipsis    = "ellipsis"
	BuiltinEnumMeta    = "EnumMeta"
)

// Collaborators bundles the two consumed interfaces so engine entry points
// take one argument instead of two; both may be nil, in which case
// ResolveBuiltin returns Unknown instead of panicking. The numeric tower
// and Type[X] unwrapping match on class names and never consult Imports.
type Collaborators struct {
	Symbols SymbolProvider
	Imports ImportLookup
}

// ResolveBuiltin looks up name through Imports, tolerating a nil
// collaborator or a nil Imports field.
func (c Collaborators) ResolveBuiltin(name string) types.Type {
	if c.Imports == nil {
		return types.NewUnknownType(nil)
	}
	t := c.Imports.Resolve(name)
	if t == nil {
		return types.NewUnknownType(nil)
	}
	return t
}
