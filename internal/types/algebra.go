package types

import "github.com/typecore-lang/typecore/internal/set"

// Combine flattens and deduplicates a list of types into a single union,
// collapsing to the sole subtype when only one remains and to NeverType
// when the list is empty.
// Any subtype present anywhere collapses the whole union to Any, since Any
// absorbs everything above and below it.
func Combine(parts []Type) Type {
	flat := make([]Type, 0, len(parts))
	for _, p := range parts {
		flat = flattenInto(flat, p)
	}

	deduped := make([]Type, 0, len(flat))
	for _, t := range flat {
		if _, ok := t.(*AnyType); ok {
			return t
		}
		dup := false
		for _, existing := range deduped {
			if IsSame(existing, t, 0) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, t)
		}
	}

	switch len(deduped) {
	case 0:
		return NewNeverType(nil)
	case 1:
		return deduped[0]
	default:
		return &UnionType{Subtypes: deduped}
	}
}

func flattenInto(acc []Type, t Type) []Type {
	if u, ok := t.(*UnionType); ok {
		for _, s := range u.Subtypes {
			acc = flattenInto(acc, s)
		}
		return acc
	}
	return append(acc, t)
}

// ForEachSubtype applies f to t, or to each of t's subtypes if t is a
// union, recombining the non-nil results. A nil result drops that subtype;
// if every result is nil the whole thing is Never.
func ForEachSubtype(t Type, f func(Type) Type) Type {
	u, ok := t.(*UnionType)
	if !ok {
		if r := f(t); r != nil {
			return r
		}
		return NewNeverType(nil)
	}
	results := make([]Type, 0, len(u.Subtypes))
	for _, s := range u.Subtypes {
		if r := f(s); r != nil {
			results = append(results, r)
		}
	}
	return Combine(results)
}

// IsSame is structural equality up to the recursion bound; past the bound
// it optimistically returns true rather than looping forever on
// self-referential types.
func IsSame(a, b Type, recursionLevel int) bool {
	if recursionLevel > 64 {
		return true
	}
	if a == b {
		return true
	}
	switch av := a.(type) {
	case *UnboundType:
		_, ok := b.(*UnboundType)
		return ok
	case *UnknownType:
		_, ok := b.(*UnknownType)
		return ok
	case *AnyType:
		bv, ok := b.(*AnyType)
		return ok && av.IsEllipsis == bv.IsEllipsis
	case *NoneType:
		_, ok := b.(*NoneType)
		return ok
	case *NeverType:
		_, ok := b.(*NeverType)
		return ok
	case *TypeVarType:
		bv, ok := b.(*TypeVarType)
		return ok && av.Name == bv.Name
	case *ModuleType:
		bv, ok := b.(*ModuleType)
		return ok && av.Name == bv.Name
	case *ObjectType:
		bv, ok := b.(*ObjectType)
		if !ok || av.Class.Name != bv.Class.Name {
			return false
		}
		if av.LiteralValue.IsSome() != bv.LiteralValue.IsSome() {
			return false
		}
		if av.LiteralValue.IsSome() && !av.LiteralValue.Unwrap().Equal(bv.LiteralValue.Unwrap()) {
			return false
		}
		return isSameTypeArgs(av.Class, bv.Class, recursionLevel)
	case *ClassType:
		bv, ok := b.(*ClassType)
		return ok && av.Name == bv.Name && isSameTypeArgs(av, bv, recursionLevel)
	case *FunctionType:
		bv, ok := b.(*FunctionType)
		if !ok || len(av.Parameters) != len(bv.Parameters) {
			return false
		}
		for i, p := range av.Parameters {
			if !IsSame(p.Type, bv.Parameters[i].Type, recursionLevel+1) {
				return false
			}
		}
		return IsSame(av.ReturnType(), bv.ReturnType(), recursionLevel+1)
	case *OverloadedType:
		bv, ok := b.(*OverloadedType)
		if !ok || len(av.Overloads) != len(bv.Overloads) {
			return false
		}
		for i, o := range av.Overloads {
			if !IsSame(o, bv.Overloads[i], recursionLevel+1) {
				return false
			}
		}
		return true
	case *UnionType:
		bv, ok := b.(*UnionType)
		if !ok || len(av.Subtypes) != len(bv.Subtypes) {
			return false
		}
		used := make([]bool, len(bv.Subtypes))
		for _, as := range av.Subtypes {
			found := false
			for i, bs := range bv.Subtypes {
				if used[i] {
					continue
				}
				if IsSame(as, bs, recursionLevel+1) {
					used[i] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isSameTypeArgs(a, b *ClassType, recursionLevel int) bool {
	if a.TypeArguments.IsSome() != b.TypeArguments.IsSome() {
		return false
	}
	if a.TypeArguments.IsNone() {
		return true
	}
	aArgs := a.TypeArguments.Unwrap()
	bArgs := b.TypeArguments.Unwrap()
	if len(aArgs) != len(bArgs) {
		return false
	}
	for i, arg := range aArgs {
		if !IsSame(arg, bArgs[i], recursionLevel+1) {
			return false
		}
	}
	return true
}

// IsSameIgnoringLiteral is IsSame but treats two Object types of the same
// class as equal regardless of literal pinning.
func IsSameIgnoringLiteral(a, b Type) bool {
	return IsSame(StripLiteralValue(a), StripLiteralValue(b), 0)
}

// StripLiteralValue widens an Object pinned to a literal back to its
// class, leaving every other variant untouched.
func StripLiteralValue(t Type) Type {
	if obj, ok := t.(*ObjectType); ok && obj.LiteralValue.IsSome() {
		return NewObjectType(obj.provenance, obj.Class)
	}
	return t
}

// RequiresSpecialization reports whether t transitively mentions a TypeVar:
// a bare TypeVar, a generic class with no arguments bound yet, a class whose
// bound arguments still carry TypeVars, or a function/union/object built
// from any of those.
func RequiresSpecialization(t Type) bool {
	return requiresSpecialization(t, 0)
}

func requiresSpecialization(t Type, recursionLevel int) bool {
	if recursionLevel > 64 {
		return false
	}
	switch tv := t.(type) {
	case *TypeVarType:
		return true
	case *ClassType:
		if tv.TypeArguments.IsSome() {
			for _, a := range tv.TypeArguments.Unwrap() {
				if requiresSpecialization(a, recursionLevel+1) {
					return true
				}
			}
			return false
		}
		return tv.IsGeneric()
	case *ObjectType:
		return requiresSpecialization(tv.Class, recursionLevel+1)
	case *FunctionType:
		for _, p := range tv.Parameters {
			if requiresSpecialization(p.Type, recursionLevel+1) {
				return true
			}
		}
		if rt := tv.ReturnType(); rt != nil {
			return requiresSpecialization(rt, recursionLevel+1)
		}
		return false
	case *OverloadedType:
		for _, o := range tv.Overloads {
			if requiresSpecialization(o, recursionLevel+1) {
				return true
			}
		}
		return false
	case *UnionType:
		for _, s := range tv.Subtypes {
			if requiresSpecialization(s, recursionLevel+1) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// GetTypeVarArgumentsRecursive collects every TypeVarType reachable from t,
// descending into class type arguments, function signatures, and union
// members, in depth-first first-occurrence order with duplicates dropped.
func GetTypeVarArgumentsRecursive(t Type) []*TypeVarType {
	var out []*TypeVarType
	seen := set.NewSet[string]()
	var walk func(Type)
	walk = func(t Type) {
		switch tv := t.(type) {
		case *TypeVarType:
			if !seen.Contains(tv.Name) {
				seen.Add(tv.Name)
				out = append(out, tv)
			}
		case *ClassType:
			if tv.TypeArguments.IsSome() {
				for _, a := range tv.TypeArguments.Unwrap() {
					walk(a)
				}
			}
		case *ObjectType:
			walk(tv.Class)
		case *FunctionType:
			for _, p := range tv.Parameters {
				walk(p.Type)
			}
			if rt := tv.ReturnType(); rt != nil {
				walk(rt)
			}
		case *OverloadedType:
			for _, o := range tv.Overloads {
				walk(o)
			}
		case *UnionType:
			for _, s := range tv.Subtypes {
				walk(s)
			}
		}
	}
	walk(t)
	return out
}

// ConvertClassToObject wraps a bare ClassType reference (a reference to the
// class itself, as in `type[Foo]`) into an Object (instance) of that same
// class, or returns t unchanged if it isn't a ClassType.
func ConvertClassToObject(t Type) Type {
	cls, ok := t.(*ClassType)
	if !ok {
		return t
	}
	return NewObjectType(cls.provenance, cls)
}

// TransformTypeObjectToClass is the converse of ConvertClassToObject: given
// an Object of the builtin Type wrapper parameterized with a single class
// argument, returns that class directly, otherwise returns t unchanged.
func TransformTypeObjectToClass(t Type) Type {
	obj, ok := t.(*ObjectType)
	if !ok || !obj.Class.IsSpecialBuiltin || obj.Class.Name != "Type" {
		return t
	}
	args := obj.Class.TypeArguments.Unwrap()
	if len(args) != 1 {
		return t
	}
	if cls, ok := args[0].(*ClassType); ok {
		return cls
	}
	return t
}

// IsEllipsisType reports whether t is the Any-flavored "..." placeholder
// used for a variadic-tuple's trailing slot.
func IsEllipsisType(t Type) bool {
	a, ok := t.(*AnyType)
	return ok && a.IsEllipsis
}

// IsNoReturnType reports whether t is the Never type used to mark a
// function that never returns normally.
func IsNoReturnType(t Type) bool {
	_, ok := t.(*NeverType)
	return ok
}

// IsNoneOrNever reports whether t is None or Never — the two types that
// can never satisfy an ordinary protocol or typed-record match.
func IsNoneOrNever(t Type) bool {
	switch t.(type) {
	case *NoneType, *NeverType:
		return true
	default:
		return false
	}
}

// IsAnyOrUnknown reports whether t is one of the two types that
// short-circuit assignability in both directions.
func IsAnyOrUnknown(t Type) bool {
	switch t.(type) {
	case *AnyType, *UnknownType:
		return true
	default:
		return false
	}
}
