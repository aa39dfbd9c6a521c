package specialize

import (
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/diag"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

// AssignFunc is the shape of the Assignability Engine's entry point, taken
// as a parameter by Bind rather than imported directly: the Engine already
// depends on this package to realise type parameters, so Bind calling back into
// the Engine to populate a TypeVarMap would be an import cycle. Injecting
// the function instead keeps the two components' dependency exactly as
// one-directional as the package layout requires.
type AssignFunc func(dest, src types.Type, addendum *diag.Addendum, m *typevars.Map, recursionLevel int) bool

// Bind realises a member function against the base it was looked up on:
// an instance method's or class method's first parameter ("self"/"cls") is
// matched against base to populate a fresh TypeVarMap, the function is
// specialized with it, and the first parameter is dropped from the result.
func Bind(base types.Type, member *types.FunctionType, treatAsClassMember bool, assign AssignFunc, recursionLevel int, limits config.Limits) *types.FunctionType {
	if len(member.Parameters) == 0 {
		return member
	}

	if base == nil {
		return dropFirstParam(member)
	}

	isInstanceBind := member.Flags.Has(types.InstanceMethod) && !treatAsClassMember
	isClassBind := member.Flags.Has(types.ClassMethod) || treatAsClassMember
	if !isInstanceBind && !isClassBind {
		return member
	}

	m := typevars.New()
	seedFromBase(m, base)
	if assign != nil {
		first := member.Parameters[0]
		assign(first.Type, base, nil, m, recursionLevel+1)
	}

	specialized := Specialize(member, m, false, recursionLevel+1, limits)
	fn, ok := specialized.(*types.FunctionType)
	if !ok {
		fn = member
	}
	return dropFirstParam(fn)
}

// BindOverloaded applies Bind to every overload independently.
func BindOverloaded(base types.Type, overloaded *types.OverloadedType, treatAsClassMember bool, assign AssignFunc, recursionLevel int, limits config.Limits) *types.OverloadedType {
	bound := make([]*types.FunctionType, len(overloaded.Overloads))
	for i, o := range overloaded.Overloads {
		bound[i] = Bind(base, o, treatAsClassMember, assign, recursionLevel, limits)
	}
	return types.NewOverloadedType(overloaded.Provenance(), bound...)
}

// seedFromBase pre-populates m with the bindings already fixed by the
// base's own specialization, so a member of List[int] sees T -> int before
// the self-parameter match contributes anything further.
func seedFromBase(m *typevars.Map, base types.Type) {
	var class *types.ClassType
	switch b := base.(type) {
	case *types.ObjectType:
		class = b.Class
	case *types.ClassType:
		class = b
	default:
		return
	}
	args := class.TypeArguments.Unwrap()
	for i, param := range class.TypeParameters {
		if i < len(args) {
			m.Set(param.Name, args[i])
		}
	}
}

func dropFirstParam(fn *types.FunctionType) *types.FunctionType {
	if len(fn.Parameters) == 0 {
		return fn
	}
	out := fn.Copy().(*types.FunctionType)
	out.Parameters = append([]*types.Parameter(nil), fn.Parameters[1:]...)
	return out
}
