// Package specialize implements the Specializer: pure
// substitution of type variables throughout a Type, given a binding map.
// It performs no mutation of its input and writes no diagnostics.
package specialize

import (
	"github.com/moznion/go-optional"
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

// Specialize substitutes every TypeVar reachable from t with either the
// map's entry for its name, or — when makeConcrete is true or m is nil —
// the TypeVar's concrete fallback. With a non-nil map and makeConcrete
// false, a TypeVar the map does not bind is left as is. Allocation is skipped
// wherever nothing actually changed, so untouched subtrees keep their
// identity.
func Specialize(t types.Type, m *typevars.Map, makeConcrete bool, recursionLevel int, limits config.Limits) types.Type {
	if limits.Exceeded(recursionLevel) {
		return types.NewAnyType(nil)
	}

	switch tv := t.(type) {
	case *types.UnboundType, *types.UnknownType, *types.AnyType, *types.NoneType,
		*types.NeverType, *types.ModuleType:
		return t

	case *types.TypeVarType:
		return specializeTypeVar(tv, m, makeConcrete)

	case *types.UnionType:
		specialized := make([]types.Type, len(tv.Subtypes))
		for i, s := range tv.Subtypes {
			specialized[i] = Specialize(s, m, makeConcrete, recursionLevel+1, limits)
		}
		return types.Combine(specialized)

	case *types.ObjectType:
		return specializeObject(tv, m, makeConcrete, recursionLevel, limits)

	case *types.ClassType:
		return specializeClass(tv, m, makeConcrete, recursionLevel, limits)

	case *types.FunctionType:
		return specializeFunction(tv, m, makeConcrete, recursionLevel, limits)

	case *types.OverloadedType:
		overloads := make([]*types.FunctionType, len(tv.Overloads))
		changed := false
		for i, o := range tv.Overloads {
			specialized := Specialize(o, m, makeConcrete, recursionLevel+1, limits)
			fn, ok := specialized.(*types.FunctionType)
			if !ok {
				fn = o
			}
			if fn != o {
				changed = true
			}
			overloads[i] = fn
		}
		if !changed {
			return t
		}
		return types.NewOverloadedType(tv.Provenance(), overloads...)

	default:
		return t
	}
}

func specializeTypeVar(tv *types.TypeVarType, m *typevars.Map, makeConcrete bool) types.Type {
	if m != nil {
		if bound, ok := m.Get(tv.Name); ok {
			if makeConcrete && types.RequiresSpecialization(bound) {
				return tv.ConcreteFallback()
			}
			return bound
		}
	}
	if makeConcrete || m == nil {
		return tv.ConcreteFallback()
	}
	return tv
}

func specializeObject(obj *types.ObjectType, m *typevars.Map, makeConcrete bool, recursionLevel int, limits config.Limits) types.Type {
	specializedClass := Specialize(obj.Class, m, makeConcrete, recursionLevel+1, limits)

	cls, ok := specializedClass.(*types.ClassType)
	if !ok || cls == obj.Class {
		return obj
	}

	if cls.IsSpecialBuiltin && cls.Name == "Type" {
		if args := cls.TypeArguments.Unwrap(); len(args) == 1 {
			if inner, ok := args[0].(*types.ObjectType); ok {
				return inner.Class
			}
		}
	}

	if obj.LiteralValue.IsSome() {
		return types.NewLiteralObjectType(obj.Provenance(), cls, obj.LiteralValue.Unwrap())
	}
	return types.NewObjectType(obj.Provenance(), cls)
}

func specializeClass(cls *types.ClassType, m *typevars.Map, makeConcrete bool, recursionLevel int, limits config.Limits) types.Type {
	if cls.TypeArguments.IsSome() {
		args := cls.TypeArguments.Unwrap()
		specialized := make([]types.Type, len(args))
		changed := false
		for i, a := range args {
			specialized[i] = Specialize(a, m, makeConcrete, recursionLevel+1, limits)
			if specialized[i] != a {
				changed = true
			}
		}
		if !changed {
			return cls
		}
		out := cls.Copy().(*types.ClassType)
		out.TypeArguments = optional.Some(specialized)
		return out
	}

	if !cls.IsGeneric() {
		return cls
	}
	if !makeConcrete {
		return cls
	}

	specialized := make([]types.Type, len(cls.TypeParameters))
	for i, p := range cls.TypeParameters {
		specialized[i] = p.ConcreteFallback()
	}
	out := cls.Copy().(*types.ClassType)
	out.TypeArguments = optional.Some(specialized)
	return out
}

func specializeFunction(fn *types.FunctionType, m *typevars.Map, makeConcrete bool, recursionLevel int, limits config.Limits) types.Type {
	paramTypes := make([]types.Type, len(fn.Parameters))
	changed := false
	for i, p := range fn.Parameters {
		paramTypes[i] = Specialize(p.Type, m, makeConcrete, recursionLevel+1, limits)
		if paramTypes[i] != p.Type {
			changed = true
		}
	}

	var returnType types.Type
	if rt := fn.ReturnType(); rt != nil {
		returnType = Specialize(rt, m, makeConcrete, recursionLevel+1, limits)
		if returnType != rt {
			changed = true
		}
	}

	if !changed {
		return fn
	}

	out := fn.Copy().(*types.FunctionType)
	for i, p := range out.Parameters {
		if paramTypes[i] != p.Type {
			np := *p
			np.Type = paramTypes[i]
			out.Parameters[i] = &np
		}
	}
	out.SpecializedTypes = optional.Some(types.SpecializedFuncTypes{
		ParameterTypes: paramTypes,
		ReturnType:     returnType,
	})
	return out
}
