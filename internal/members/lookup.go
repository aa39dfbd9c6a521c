// Package members implements the Member Resolver: walking
// a class's own fields and then its base classes in declared order,
// partially specializing each base against the derived class's type
// arguments so members carry their substituted types.
package members

import (
	"sort"

	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/set"
	"github.com/typecore-lang/typecore/internal/specialize"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

// LookupFlags narrows where LookUpClassMember searches.
type LookupFlags uint32

const (
	SkipOriginalClass LookupFlags = 1 << iota
	SkipBaseClasses
	SkipObjectBaseClass
	SkipInstanceVariables
	DeclaredTypesOnly
)

func (f LookupFlags) Has(flag LookupFlags) bool { return f&flag != 0 }

// ClassMember is the result of a member lookup: the symbol found, and the
// (partially specialized) class that owns it. Callers specialize the
// symbol's type against OwningClass before any further use.
type ClassMember struct {
	Symbol           *types.Symbol
	OwningClass      types.Type
	IsInstanceMember bool
}

// LookUpClassMember walks class's own fields, then its bases in declared
// order (skipping metaclasses), returning the first matching member and
// the (partially specialized) class that owns it.
func LookUpClassMember(class *types.ClassType, name string, flags LookupFlags, recursionLevel int, limits config.Limits) (*ClassMember, bool) {
	if limits.Exceeded(recursionLevel) {
		return nil, false
	}

	if flags.Has(SkipObjectBaseClass) && class.IsBuiltin && class.Name == "object" {
		return nil, false
	}

	if !flags.Has(SkipOriginalClass) {
		if sym, isInstance, ok := findOwnField(class, name, flags); ok {
			return &ClassMember{Symbol: sym, OwningClass: class, IsInstanceMember: isInstance}, true
		}
	}

	if flags.Has(SkipBaseClasses) {
		return nil, false
	}

	baseFlags := flags &^ SkipOriginalClass
	for _, base := range class.BaseClasses {
		if base.IsMetaclass {
			continue
		}
		baseClass, ok := base.Type.(*types.ClassType)
		if !ok {
			if unknownOrAny(base.Type) {
				return syntheticMember(base.Type), true
			}
			continue
		}
		specializedBase := partiallySpecialize(class, baseClass, recursionLevel, limits)
		if member, found := LookUpClassMember(specializedBase, name, baseFlags, recursionLevel+1, limits); found {
			return member, true
		}
	}

	return nil, false
}

func findOwnField(class *types.ClassType, name string, flags LookupFlags) (*types.Symbol, bool, bool) {
	sym, ok := class.Fields.Get(name)
	if !ok {
		return nil, false, false
	}
	isInstance := sym.Flags.Has(types.InstanceMember)
	if isInstance && flags.Has(SkipInstanceVariables) {
		return nil, false, false
	}
	if flags.Has(DeclaredTypesOnly) && !sym.HasTypedDeclarations() {
		return nil, false, false
	}
	return sym, isInstance, true
}

func unknownOrAny(t types.Type) bool {
	switch t.(type) {
	case *types.UnknownType, *types.AnyType:
		return true
	default:
		return false
	}
}

func syntheticMember(owner types.Type) *ClassMember {
	sym := &types.Symbol{EffectiveType: types.NewUnknownType(nil)}
	return &ClassMember{Symbol: sym, OwningClass: owner, IsInstanceMember: false}
}

// partiallySpecialize substitutes baseClass's type parameters using
// derived's type arguments, so a lookup descending into the base sees
// members already specialized in terms of the derived class's concrete
// arguments.
func partiallySpecialize(derived, baseClass *types.ClassType, recursionLevel int, limits config.Limits) *types.ClassType {
	if !baseClass.IsGeneric() {
		return baseClass
	}
	derivedArgs := derived.TypeArguments.Unwrap()
	if len(derivedArgs) != len(derived.TypeParameters) {
		return baseClass
	}

	m := typevars.New()
	for i, param := range derived.TypeParameters {
		m.Set(param.Name, derivedArgs[i])
	}

	specialized := specialize.Specialize(baseClass, m, false, recursionLevel+1, limits)
	if cls, ok := specialized.(*types.ClassType); ok {
		return cls
	}
	return baseClass
}

// GetAbstractMethodsRecursive walks class and its bases, accumulating
// method names declared abstract somewhere that no derived definition
// overrides with a non-abstract one.
func GetAbstractMethodsRecursive(class *types.ClassType, recursionLevel int, limits config.Limits) []string {
	if limits.Exceeded(recursionLevel) {
		return nil
	}
	abstract := set.NewSet[string]()
	overridden := set.NewSet[string]()
	collectAbstract(class, abstract, overridden, recursionLevel, limits)

	names := make([]string, 0, abstract.Len())
	for _, name := range abstract.ToSlice() {
		if !overridden.Contains(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func collectAbstract(class *types.ClassType, abstract, overridden set.Set[string], recursionLevel int, limits config.Limits) {
	if limits.Exceeded(recursionLevel) {
		return
	}
	class.Fields.ForEach(func(name string, sym *types.Symbol) bool {
		fn, ok := sym.EffectiveType.(*types.FunctionType)
		if !ok {
			return true
		}
		if fn.Flags.Has(types.Abstract) {
			if !overridden.Contains(name) {
				abstract.Add(name)
			}
		} else {
			overridden.Add(name)
		}
		return true
	})
	for _, base := range class.BaseClasses {
		if base.IsMetaclass {
			continue
		}
		if baseClass, ok := base.Type.(*types.ClassType); ok {
			collectAbstract(baseClass, abstract, overridden, recursionLevel+1, limits)
		}
	}
}

// TypedRecordEntry is one key of a typed record's shape.
type TypedRecordEntry struct {
	ValueType  types.Type
	IsRequired bool
}

// GetTypedRecordMembersRecursive collects a typed-record class's keyed
// entries, merging base-class policy before the current class's own
// fields take precedence.
func GetTypedRecordMembersRecursive(class *types.ClassType, recursionLevel int, limits config.Limits) map[string]TypedRecordEntry {
	if limits.Exceeded(recursionLevel) {
		return map[string]TypedRecordEntry{}
	}

	result := map[string]TypedRecordEntry{}
	for _, base := range class.BaseClasses {
		if base.IsMetaclass {
			continue
		}
		if baseClass, ok := base.Type.(*types.ClassType); ok && baseClass.IsTypedRecord {
			for k, v := range GetTypedRecordMembersRecursive(baseClass, recursionLevel+1, limits) {
				result[k] = v
			}
		}
	}

	class.Fields.ForEach(func(name string, sym *types.Symbol) bool {
		result[name] = TypedRecordEntry{
			ValueType:  sym.EffectiveType,
			IsRequired: !class.CanOmitValues,
		}
		return true
	})

	return result
}
