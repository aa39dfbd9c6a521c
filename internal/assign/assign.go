// Package assign implements the Assignability Engine, the top-level entry
// point of the core: CanAssign decides whether a value of type src may be
// bound where dest is declared, threading an evolving TypeVarMap and
// recording structured diagnostics on failure.
package assign

import (
	"github.com/typecore-lang/typecore/internal/collab"
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/diag"
	"github.com/typecore-lang/typecore/internal/specialize"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

// Flags adjusts how CanAssign compares generic type arguments.
type Flags uint32

const (
	// EnforceInvariance forbids subclass-to-superclass assignment for
	// generic type arguments, used for the invariant leg of variance
	// checking.
	EnforceInvariance Flags = 1 << iota
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// CanAssignResult bundles a top-level query's boolean result with its root
// addendum, for callers that want the structured reason rather than a bare
// bool. CanAssign itself returns only the bool; this is additive surface,
// not a replacement for it.
type CanAssignResult struct {
	OK       bool
	Addendum *diag.Addendum
}

// Query runs a fresh top-level CanAssign and returns both the bool and the
// addendum tree in one call, for callers that don't want to pre-allocate
// their own root Addendum.
func Query(dest, src types.Type, m *typevars.Map, flags Flags, co collab.Collaborators, limits config.Limits) CanAssignResult {
	root := diag.New("assignability check")
	ok := CanAssign(dest, src, root, m, flags, 0, co, limits)
	return CanAssignResult{OK: ok, Addendum: root}
}

// CanAssign is the Engine's entry point. The first matching rule in the
// numbered evaluation order decides the result; later rules are
// unreachable once an earlier one fires.
func CanAssign(dest, src types.Type, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	// 1. Recursion guard.
	if limits.Exceeded(recursionLevel) {
		return true
	}

	// 2. Reference identity.
	if dest == src {
		return true
	}

	// 3. Unbound either side.
	if isUnbound(dest) || isUnbound(src) {
		return true
	}

	// 4. Dest is a TypeVar.
	if destTV, ok := dest.(*types.TypeVarType); ok {
		return canAssignToTypeVar(destTV, src, addendum, m, flags, recursionLevel, co, limits)
	}

	// 5. Either side is Any/Unknown.
	if types.IsAnyOrUnknown(dest) || types.IsAnyOrUnknown(src) {
		return true
	}

	// 6. Src is a TypeVar (defensive; should be rare).
	if srcTV, ok := src.(*types.TypeVarType); ok {
		concrete := specialize.Specialize(srcTV, m, true, recursionLevel+1, limits)
		return CanAssign(dest, concrete, addendum, m, flags, recursionLevel+1, co, limits)
	}

	// 7. Src is a Union.
	if srcUnion, ok := src.(*types.UnionType); ok {
		for _, sub := range srcUnion.Subtypes {
			if !CanAssign(dest, sub, addendum.Child("union member %s", sub), m, flags, recursionLevel+1, co, limits) {
				return false
			}
		}
		return true
	}

	// 8. Dest is a Union. Each subtype is probed against a clone of the
	// map so a failed probe's speculative bindings don't leak into the
	// next one; only the succeeding probe's bindings are merged back.
	if destUnion, ok := dest.(*types.UnionType); ok {
		for _, sub := range destUnion.Subtypes {
			child := addendum.Child("union member %s", sub)
			probe := m
			if m != nil {
				probe = m.Clone()
			}
			if CanAssign(sub, src, child, probe, flags, recursionLevel+1, co, limits) {
				if m != nil {
					probe.ForEach(func(name string, t types.Type) bool {
						m.Set(name, t)
						return true
					})
				}
				return true
			}
		}
		return false
	}

	// 9. Both None.
	if isNone(dest) && isNone(src) {
		return true
	}

	// Never has no inhabitants, so it is vacuously assignable anywhere —
	// including to None, which rejects everything else.
	if _, ok := src.(*types.NeverType); ok {
		return true
	}

	// 10. Src is the builtin Type[X].
	if inner, ok := unwrapTypeGeneric(src); ok {
		if _, isAny := inner.(*types.AnyType); isAny {
			return true
		}
		if obj, ok := inner.(*types.ObjectType); ok {
			return CanAssign(dest, obj.Class, addendum, m, flags, recursionLevel+1, co, limits)
		}
	}

	// 11. Dest is a Class, src is a Class.
	if destClass, ok := dest.(*types.ClassType); ok {
		if srcClass, ok := src.(*types.ClassType); ok {
			return classClassComparison(destClass, srcClass, addendum, m, flags, recursionLevel, co, limits)
		}
	}

	// 12. Dest is an Object.
	if destObj, ok := dest.(*types.ObjectType); ok {
		return canAssignToObject(destObj, src, addendum, m, flags, recursionLevel, co, limits)
	}

	// 13. Dest is a Function.
	if destFn, ok := dest.(*types.FunctionType); ok {
		srcFn, ok := synthesizeFunction(destFn, src, m, flags, recursionLevel, co, limits)
		if !ok {
			addendum.Child("%s is not callable", src)
			return false
		}
		return functionFunctionComparison(destFn, srcFn, addendum, m, flags, recursionLevel, co, limits)
	}

	// 14. None-or-Module vs. object.
	if (isNone(src) || isModule(src)) && isObjectBuiltin(dest) {
		return true
	}

	// 15. Otherwise.
	if isNone(dest) {
		addendum.Child("%s", diag.CannotAssignToNoneError{Src: src}.Message())
		return false
	}
	addendum.Child("%s", diag.GenericMismatchError{Dest: dest, Src: src}.Message())
	return false
}

func isUnbound(t types.Type) bool {
	_, ok := t.(*types.UnboundType)
	return ok
}

func isNone(t types.Type) bool {
	_, ok := t.(*types.NoneType)
	return ok
}

func isModule(t types.Type) bool {
	_, ok := t.(*types.ModuleType)
	return ok
}

func isObjectBuiltin(t types.Type) bool {
	obj, ok := t.(*types.ObjectType)
	return ok && obj.Class.IsBuiltin && obj.Class.Name == collab.BuiltinObject
}

// unwrapTypeGeneric reports whether t is an Object whose class is the
// special builtin Type[X], returning X.
func unwrapTypeGeneric(t types.Type) (types.Type, bool) {
	obj, ok := t.(*types.ObjectType)
	if !ok {
		return nil, false
	}
	if !obj.Class.IsSpecialBuiltin || obj.Class.Name != collab.BuiltinTypeGeneric {
		return nil, false
	}
	args := obj.Class.TypeArguments.Unwrap()
	if len(args) != 1 {
		return nil, false
	}
	return args[0], true
}

func canAssignToTypeVar(destTV *types.TypeVarType, src types.Type, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	stripped := types.StripLiteralValue(src)
	if m == nil {
		return checkTypeVarConstraints(destTV, stripped, addendum, m, flags, recursionLevel, co, limits)
	}

	existing, has := m.Get(destTV.Name)
	if !has {
		m.Set(destTV.Name, stripped)
		return checkTypeVarConstraints(destTV, stripped, addendum, m, flags, recursionLevel, co, limits)
	}

	forward := diag.New("")
	if CanAssign(existing, stripped, forward, m, flags, recursionLevel+1, co, limits) {
		return checkTypeVarConstraints(destTV, stripped, addendum, m, flags, recursionLevel, co, limits)
	}

	backward := diag.New("")
	if CanAssign(stripped, existing, backward, m, flags, recursionLevel+1, co, limits) {
		m.Set(destTV.Name, stripped)
		return checkTypeVarConstraints(destTV, stripped, addendum, m, flags, recursionLevel, co, limits)
	}

	widened := types.Combine([]types.Type{existing, stripped})
	m.Set(destTV.Name, widened)
	return checkTypeVarConstraints(destTV, stripped, addendum, m, flags, recursionLevel, co, limits)
}

func checkTypeVarConstraints(destTV *types.TypeVarType, src types.Type, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	if destTV.Bound.IsSome() {
		bound := destTV.Bound.Unwrap()
		boundAddendum := addendum.Child("bound of %s", destTV.Name)
		if !CanAssign(bound, src, boundAddendum, m, flags, recursionLevel+1, co, limits) {
			addendum.Child("%s", diag.TypeVarBoundViolationError{Name: destTV.Name, Bound: bound, Src: src}.Message())
			return false
		}
	}

	if len(destTV.Constraints) == 0 {
		return true
	}

	candidates := []types.Type{src}
	if union, ok := src.(*types.UnionType); ok {
		candidates = union.Subtypes
	}

	for _, candidate := range candidates {
		satisfied := false
		for _, constraint := range destTV.Constraints {
			if types.IsSameIgnoringLiteral(constraint, candidate) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			addendum.Child("%s", diag.TypeVarConstraintViolationError{Name: destTV.Name, Src: candidate}.Message())
			return false
		}
	}
	return true
}
