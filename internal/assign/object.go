package assign

import (
	"github.com/typecore-lang/typecore/internal/collab"
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/diag"
	"github.com/typecore-lang/typecore/internal/members"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

// canAssignToObject decides assignability when the destination is an
// instance type.
func canAssignToObject(dest *types.ObjectType, src types.Type, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	if dest.Class.IsSpecialBuiltin && dest.Class.Name == collab.BuiltinType {
		switch src.(type) {
		case *types.ClassType, *types.FunctionType, *types.OverloadedType:
			return true
		}
	}

	if inner, ok := unwrapDestTypeGeneric(dest); ok {
		return CanAssign(inner, src, addendum, m, flags, recursionLevel+1, co, limits)
	}

	switch srcVal := src.(type) {
	case *types.ObjectType:
		if dest.LiteralValue.IsSome() {
			lit := dest.LiteralValue.Unwrap()
			if srcVal.LiteralValue.IsNone() || !lit.Equal(srcVal.LiteralValue.Unwrap()) {
				addendum.Child("%s", diag.LiteralMismatchError{Dest: dest, Src: srcVal}.Message())
				return false
			}
		}
		return classClassComparison(dest.Class, srcVal.Class, addendum, m, flags, recursionLevel, co, limits)

	case *types.FunctionType, *types.OverloadedType:
		if isObjectBuiltin(dest) {
			return true
		}
		callMember, found := members.LookUpClassMember(dest.Class, "__call__", 0, recursionLevel+1, limits)
		if !found {
			addendum.Child("%s", diag.ProtocolMemberMissingError{Protocol: dest.Class.Name, Member: "__call__"}.Message())
			return false
		}
		return CanAssign(callMember.Symbol.EffectiveType, src, addendum, m, flags, recursionLevel+1, co, limits)

	case *types.ModuleType:
		if isObjectBuiltin(dest) || dest.Class.Name == collab.BuiltinModuleType {
			return true
		}
		addendum.Child("%s", diag.GenericMismatchError{Dest: dest, Src: src}.Message())
		return false

	case *types.NoneType:
		if isObjectBuiltin(dest) {
			return true
		}
		addendum.Child("%s", diag.GenericMismatchError{Dest: dest, Src: src}.Message())
		return false

	case *types.ClassType:
		if isObjectBuiltin(dest) {
			return true
		}
		for _, base := range srcVal.BaseClasses {
			if base.IsMetaclass {
				if metaClass, ok := base.Type.(*types.ClassType); ok {
					return classClassComparison(dest.Class, metaClass, addendum, m, flags, recursionLevel, co, limits)
				}
			}
		}
		addendum.Child("%s", diag.GenericMismatchError{Dest: dest, Src: src}.Message())
		return false

	default:
		addendum.Child("%s", diag.GenericMismatchError{Dest: dest, Src: src}.Message())
		return false
	}
}

func unwrapDestTypeGeneric(t *types.ObjectType) (types.Type, bool) {
	if !t.Class.IsSpecialBuiltin || t.Class.Name != collab.BuiltinTypeGeneric {
		return nil, false
	}
	args := t.Class.TypeArguments.Unwrap()
	if len(args) != 1 {
		return nil, false
	}
	return args[0], true
}
