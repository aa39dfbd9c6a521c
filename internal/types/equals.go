package types

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Equals is deep structural equality, including literal pinning and cached
// specialization state — stricter than IsSame, which only cares about the
// shape that assignability cares about. Tests use this to assert that two
// independently-built trees came out identical; the assignability engine
// itself always uses IsSame.
func Equals(t1, t2 Type) bool {
	var opts []cmp.Option
	opts = []cmp.Option{
		// SymbolTable's backing btree has unexported state cmp can't walk;
		// compare tables by their keys and per-key symbols instead.
		cmp.Comparer(func(a, b *SymbolTable) bool {
			if a == b {
				return true
			}
			if a == nil || b == nil || a.Len() != b.Len() {
				return false
			}
			equal := true
			a.ForEach(func(name string, sym *Symbol) bool {
				other, ok := b.Get(name)
				if !ok || !cmp.Equal(sym, other, opts...) {
					equal = false
					return false
				}
				return true
			})
			return equal
		}),
		// nolint:exhaustruct
		cmpopts.IgnoreUnexported(
			UnboundType{}, UnknownType{}, AnyType{}, NoneType{}, NeverType{},
			TypeVarType{}, ClassType{}, ObjectType{}, FunctionType{},
			OverloadedType{}, ModuleType{}, UnionType{},
		),
	}
	return cmp.Equal(t1, t2, opts...)
}
