package assign

import (
	"sort"

	"github.com/typecore-lang/typecore/internal/collab"
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/diag"
	"github.com/typecore-lang/typecore/internal/members"
	"github.com/typecore-lang/typecore/internal/specialize"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

// classClassComparison decides class-to-class assignability: protocol
// structural match, typed-record structural match, the numeric tower,
// invariance enforcement, and inheritance-chain walking with per-argument
// variance, in that order.
func classClassComparison(dest, src *types.ClassType, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	if dest.IsProtocol {
		return protocolMatch(dest, src, addendum, m, flags, recursionLevel, co, limits)
	}

	if dest.IsTypedRecord && src.IsTypedRecord {
		return typedRecordMatch(dest, src, addendum, m, flags, recursionLevel, co, limits)
	}

	// Every class derives from the builtin object; most src values route to
	// it through the earlier Object rules, but bare class-class comparisons
	// can still land here.
	if isBuiltinClass(co, dest, collab.BuiltinObject) {
		return true
	}

	if numericTowerAssignable(dest, src) {
		return true
	}

	if flags.Has(EnforceInvariance) && dest.Name != src.Name {
		addendum.Child("%s and %s are different classes under invariance", dest.Name, src.Name)
		return false
	}

	chain, ok := types.IsDerivedFrom(src, dest, recursionLevel+1, limits)
	if !ok {
		addendum.Child("%s", diag.GenericMismatchError{
			Dest: types.NewObjectType(nil, dest),
			Src:  types.NewObjectType(nil, src),
		}.Message())
		return false
	}

	return checkInheritanceChainArguments(dest, chain, addendum, m, flags, recursionLevel, co, limits)
}

// isBuiltinClass reports whether class is the named builtin. The import
// lookup is consulted when one is wired, so an embedder's shadowed class
// that merely shares a builtin's name isn't misidentified; without one the
// class's own IsBuiltin flag decides.
func isBuiltinClass(co collab.Collaborators, class *types.ClassType, name string) bool {
	if class.Name != name {
		return false
	}
	if co.Imports != nil {
		if obj, ok := co.ResolveBuiltin(name).(*types.ObjectType); ok {
			return obj.Class == class || class.IsBuiltin
		}
	}
	return class.IsBuiltin
}

// numericTowerAssignable implements the numeric tower: int may widen to
// float, and int or float may widen to complex.
func numericTowerAssignable(dest, src *types.ClassType) bool {
	switch dest.Name {
	case collab.BuiltinFloat:
		return src.Name == collab.BuiltinInt
	case collab.BuiltinComplex:
		return src.Name == collab.BuiltinInt || src.Name == collab.BuiltinFloat
	default:
		return false
	}
}

// protocolMatch iterates dest's class-member fields; every non-ignored member must
// exist and be assignable on src, otherwise the protocol fails to match.
func protocolMatch(dest, src *types.ClassType, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	// Member lookup past the bound finds nothing; treat that depth as the
	// same silent success CanAssign's recursion guard gives.
	if limits.Exceeded(recursionLevel + 1) {
		return true
	}
	destMap := typeVarMapForClass(dest)
	ok := true
	dest.Fields.ForEach(func(name string, sym *types.Symbol) bool {
		if !sym.Flags.Has(types.ClassMember) || sym.Flags.Has(types.IgnoredForProtocolMatch) {
			return true
		}
		srcMember, found := members.LookUpClassMember(src, name, members.SkipInstanceVariables, recursionLevel+1, limits)
		if !found {
			addendum.Child("%s", diag.ProtocolMemberMissingError{Protocol: dest.Name, Member: name}.Message())
			ok = false
			return true
		}

		srcMemberType := srcMember.Symbol.EffectiveType
		if owner, isClass := srcMember.OwningClass.(*types.ClassType); isClass {
			srcMemberType = specialize.Specialize(srcMemberType, typeVarMapForClass(owner), false, recursionLevel+1, limits)
		}

		destMemberType := specialize.Specialize(sym.EffectiveType, destMap, false, recursionLevel+1, limits)
		memberAddendum := addendum.Child("member %q", name)
		if !CanAssign(destMemberType, srcMemberType, memberAddendum, m, flags, recursionLevel+1, co, limits) {
			addendum.Child("%s", diag.ProtocolMemberIncompatibleError{Protocol: dest.Name, Member: name}.Message())
			ok = false
		}
		return true
	})
	return ok
}

func typeVarMapForClass(class *types.ClassType) *typevars.Map {
	m := typevars.New()
	args := class.TypeArguments.Unwrap()
	for i, param := range class.TypeParameters {
		if i < len(args) {
			m.Set(param.Name, args[i])
		}
	}
	return m
}

// typedRecordMatch compares two typed-record classes: structural match on
// keys, requiredness consistency, invariant value types.
func typedRecordMatch(dest, src *types.ClassType, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	destEntries := members.GetTypedRecordMembersRecursive(dest, recursionLevel+1, limits)
	srcEntries := members.GetTypedRecordMembersRecursive(src, recursionLevel+1, limits)

	keys := make([]string, 0, len(destEntries))
	for key := range destEntries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ok := true
	for _, key := range keys {
		destEntry := destEntries[key]
		srcEntry, found := srcEntries[key]
		if !found {
			addendum.Child("%s", diag.TypedRecordKeyMissingError{Key: key}.Message())
			ok = false
			continue
		}
		if destEntry.IsRequired != srcEntry.IsRequired {
			addendum.Child("%s", diag.TypedRecordKeyRequirednessMismatchError{Key: key, DestRequired: destEntry.IsRequired}.Message())
			ok = false
			continue
		}
		forward := addendum.Child("key %q", key)
		if !CanAssign(destEntry.ValueType, srcEntry.ValueType, forward, m, flags|EnforceInvariance, recursionLevel+1, co, limits) {
			addendum.Child("%s", diag.TypedRecordKeyTypeMismatchError{Key: key, Dest: destEntry.ValueType, Src: srcEntry.ValueType}.Message())
			ok = false
		}
	}
	return ok
}

// checkInheritanceChainArguments validates type-argument assignability
// along the inheritance chain found by IsDerivedFrom: starting from the
// derived src class, each successive base is re-expressed using the current
// link's type arguments, so that by the ancestor-most link curSrc carries
// the src's arguments in the dest's own frame.
func checkInheritanceChainArguments(dest *types.ClassType, chain types.InheritanceChain, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	if len(chain) == 0 {
		return true
	}

	curSrc := chain[0]
	for i := 1; i < len(chain); i++ {
		curSrc = specializeAsBase(chain[i], curSrc, recursionLevel, limits)
	}

	if dest.IsSpecialBuiltin && dest.Name == collab.BuiltinTuple {
		return variadicTupleAssignable(dest, curSrc, addendum, m, flags, recursionLevel, co, limits)
	}

	if dest.TypeArguments.IsNone() || curSrc.TypeArguments.IsNone() {
		return true
	}
	destArgs := dest.TypeArguments.Unwrap()
	srcArgs := curSrc.TypeArguments.Unwrap()
	if len(destArgs) != len(srcArgs) {
		addendum.Child("generic arity mismatch: %d vs %d", len(destArgs), len(srcArgs))
		return false
	}

	ok := true
	for i := range destArgs {
		var variance types.Variance
		if i < len(dest.TypeParameters) {
			variance = dest.TypeParameters[i].Variance
		}
		if !checkVariantArgument(variance, destArgs[i], srcArgs[i], addendum.Child("type argument %d", i), m, flags, recursionLevel, co, limits) {
			ok = false
		}
	}
	return ok
}

// specializeAsBase re-expresses curSrc in terms of base's declared shape,
// i.e. partial specialization one link up the chain.
func specializeAsBase(base, curSrc *types.ClassType, recursionLevel int, limits config.Limits) *types.ClassType {
	if !base.IsGeneric() {
		return base
	}
	args := curSrc.TypeArguments.Unwrap()
	if len(args) != len(curSrc.TypeParameters) {
		return base
	}
	m := typevars.New()
	for i, p := range curSrc.TypeParameters {
		m.Set(p.Name, args[i])
	}
	specialized := specialize.Specialize(base, m, false, recursionLevel+1, limits)
	if cls, ok := specialized.(*types.ClassType); ok {
		return cls
	}
	return base
}

// checkVariantArgument picks the comparison direction from the declared
// variance: covariant follows dest-to-src, contravariant reverses it,
// invariant requires both directions.
func checkVariantArgument(variance types.Variance, destArg, srcArg types.Type, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	switch variance {
	case types.Covariant:
		return CanAssign(destArg, srcArg, addendum, m, flags, recursionLevel+1, co, limits)
	case types.Contravariant:
		return CanAssign(srcArg, destArg, addendum, m, flags, recursionLevel+1, co, limits)
	default:
		return CanAssign(destArg, srcArg, addendum, m, flags|EnforceInvariance, recursionLevel+1, co, limits) &&
			CanAssign(srcArg, destArg, addendum, m, flags|EnforceInvariance, recursionLevel+1, co, limits)
	}
}

// variadicTupleAssignable handles the variadic-tuple builtin: a homogeneous
// Tuple[X, ...] accepts any arity of X; otherwise tuple arity must match
// element-for-element.
func variadicTupleAssignable(dest, src *types.ClassType, addendum *diag.Addendum, m *typevars.Map, flags Flags, recursionLevel int, co collab.Collaborators, limits config.Limits) bool {
	destArgs := dest.TypeArguments.Unwrap()
	srcArgs := src.TypeArguments.Unwrap()

	if len(destArgs) == 2 && types.IsEllipsisType(destArgs[1]) {
		ok := true
		for i, srcArg := range srcArgs {
			if !CanAssign(destArgs[0], srcArg, addendum.Child("tuple element %d", i), m, flags, recursionLevel+1, co, limits) {
				addendum.Child("%s", diag.TupleElementMismatchError{Index: i, Dest: destArgs[0], Src: srcArg}.Message())
				ok = false
			}
		}
		return ok
	}

	if len(destArgs) != len(srcArgs) {
		addendum.Child("%s", diag.TupleSizeMismatchError{Expected: len(destArgs), Actual: len(srcArgs)}.Message())
		return false
	}

	ok := true
	for i := range destArgs {
		if !CanAssign(destArgs[i], srcArgs[i], addendum.Child("tuple element %d", i), m, flags, recursionLevel+1, co, limits) {
			addendum.Child("%s", diag.TupleElementMismatchError{Index: i, Dest: destArgs[i], Src: srcArgs[i]}.Message())
			ok = false
		}
	}
	return ok
}
