package assign

import (
	"github.com/typecore-lang/typecore/internal/collab"
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/diag"
	"github.com/typecore-lang/typecore/internal/members"
	"github.com/typecore-lang/typecore/internal/specialize"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

// synthesizeFunction derives the FunctionType a non-Function src presents
// as a callable: from Overloaded by picking the
// first overload assignable to dest (probed against a cloned map so a
// failed attempt leaves no trace on the real one), from Object via
// __call__, from Class via __new__/__init__ minus the leading self/cls
// parameter, else as-is if src is already a Function.
func synthesizeFunction(dest *types.FunctionType, src types.Type, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) (*types.FunctionType, bool) {
	switch srcVal := src.(type) {
	case *types.FunctionType:
		return srcVal, true

	case *types.OverloadedType:
		for _, overload := range srcVal.Overloads {
			probe := diag.New("")
			var probeMap *typevars.Map
			if m != nil {
				probeMap = m.Clone()
			}
			if functionFunctionComparison(dest, overload, probe, probeMap, flags, recursionLevel+1, co, limits) {
				if m != nil && probeMap != nil {
					probeMap.ForEach(func(name string, t types.Type) bool { m.Set(name, t); return true })
				}
				return overload, true
			}
		}
		if len(srcVal.Overloads) > 0 {
			return srcVal.Overloads[0], true
		}
		return nil, false

	case *types.ObjectType:
		callMember, found := members.LookUpClassMember(srcVal.Class, "__call__", 0, recursionLevel+1, limits)
		if !found {
			return nil, false
		}
		if fn, ok := callMember.Symbol.EffectiveType.(*types.FunctionType); ok {
			return fn, true
		}
		return nil, false

	case *types.ClassType:
		ctorName := "__init__"
		ctor, found := members.LookUpClassMember(srcVal, ctorName, 0, recursionLevel+1, limits)
		if !found {
			ctor, found = members.LookUpClassMember(srcVal, "__new__", 0, recursionLevel+1, limits)
		}
		if !found {
			return nil, false
		}
		fn, ok := ctor.Symbol.EffectiveType.(*types.FunctionType)
		if !ok || len(fn.Parameters) == 0 {
			return fn, ok
		}
		out := fn.Copy().(*types.FunctionType)
		out.Parameters = append([]*types.Parameter(nil), fn.Parameters[1:]...)
		return out, true

	default:
		return nil, false
	}
}

// functionFunctionComparison compares two callable signatures: positional
// matching up to the first varargs, named-keyword matching, arity, and
// covariant return types.
func functionFunctionComparison(dest, src *types.FunctionType, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	ok := true

	destPositional, destVarargIdx := positionalParams(dest)
	srcPositional, srcVarargIdx := positionalParams(src)

	n := min(len(destPositional), len(srcPositional))
	for i := 0; i < n; i++ {
		destParam := destPositional[i]
		srcParam := srcPositional[i]

		populate := addendum.Child("")
		CanAssign(srcParam.Type, destParam.Type, populate, m, flags, recursionLevel+1, co, limits)

		specializedDestType := specialize.Specialize(destParam.Type, m, false, recursionLevel+1, limits)
		check := addendum.Child("parameter %d", i)
		if !CanAssign(srcParam.Type, specializedDestType, check, m, flags, recursionLevel+1, co, limits) {
			addendum.Child("%s", diag.ParamTypeMismatchError{Index: i, Dest: destParam.Type, Src: srcParam.Type}.Message())
			ok = false
		}
	}

	if destVarargIdx < 0 && srcVarargIdx < 0 {
		destRequired := countRequired(destPositional)
		if len(srcPositional) < destRequired {
			addendum.Child("%s", diag.ParamCountMismatchError{Expected: destRequired, Actual: len(srcPositional), TooFew: true}.Message())
			ok = false
		}
		if len(destPositional) < len(srcPositional) {
			addendum.Child("%s", diag.ParamCountMismatchError{Expected: len(destPositional), Actual: len(srcPositional), TooFew: false}.Message())
			ok = false
		}
	}

	if !namedParamsCompatible(dest, src, addendum) {
		ok = false
	}

	destReturn := dest.ReturnType()
	srcReturn := src.ReturnType()
	if destReturn != nil && srcReturn != nil {
		returnAddendum := addendum.Child("return type")
		if !CanAssign(destReturn, srcReturn, returnAddendum, m, flags, recursionLevel+1, co, limits) {
			addendum.Child("%s", diag.ReturnTypeMismatchError{Dest: destReturn, Src: srcReturn}.Message())
			ok = false
		}
	}

	return ok
}

func positionalParams(fn *types.FunctionType) ([]*types.Parameter, int) {
	var out []*types.Parameter
	for i, p := range fn.Parameters {
		if p.Category == types.VarArgPositional {
			return out, i
		}
		if p.Category == types.Positional {
			out = append(out, p)
		}
	}
	return out, -1
}

func countRequired(params []*types.Parameter) int {
	count := 0
	for _, p := range params {
		if !p.HasDefault {
			count++
		}
	}
	return count
}

// namedParamsCompatible matches keyword-only parameters (those following
// a bare varargs) on both sides; every src named parameter needs a dest
// match, and every unmatched non-defaulted dest named parameter fails.
func namedParamsCompatible(dest, src *types.FunctionType, addendum *diag.Addendum) bool {
	destNamed := namedParams(dest)
	srcNamed := namedParams(src)

	ok := true
	matched := make(map[string]bool)
	for name := range srcNamed {
		if _, found := destNamed[name]; !found {
			addendum.Child("%s", diag.ParamNameMismatchError{Name: name, Side: "dest"}.Message())
			ok = false
			continue
		}
		matched[name] = true
	}
	for name := range destNamed {
		if !matched[name] && !destNamed[name].HasDefault {
			addendum.Child("%s", diag.ParamNameMismatchError{Name: name, Side: "src"}.Message())
			ok = false
		}
	}
	return ok
}

func namedParams(fn *types.FunctionType) map[string]*types.Parameter {
	out := make(map[string]*types.Parameter)
	afterVarargs := false
	for _, p := range fn.Parameters {
		if p.Category == types.VarArgPositional {
			afterVarargs = true
			continue
		}
		if p.Category == types.VarArgKeyword {
			continue
		}
		if afterVarargs {
			if p.Name.IsSome() {
				out[p.Name.Unwrap()] = p
			}
		}
	}
	return out
}
