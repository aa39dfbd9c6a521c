package types

import (
	"strings"

	"github.com/moznion/go-optional"
)

// ClassFlags is a bit-set of miscellaneous class properties not already
// promoted to their own boolean fields.
type ClassFlags uint32

// BaseRef is one entry of a class's declared base-class list.
// Type is expected to be a *ClassType or *UnknownType; IsMetaclass marks a
// base declared as a metaclass rather than an ordinary superclass; member
// resolution's base-class walk skips metaclasses.
type BaseRef struct {
	Type        Type
	IsMetaclass bool
}

// ClassType is a (possibly generic) class, protocol, or typed-record
// definition. A generic class either has TypeArguments unset
// (unspecialized) or exactly len(TypeParameters) arguments, except for a
// special built-in (the variadic-tuple class), which may have arbitrary
// arity. Neither this struct's shape nor NewClassType enforces that
// invariant; callers that set TypeArguments are responsible for it.
type ClassType struct {
	Name              string
	IsBuiltin         bool
	IsProtocol        bool
	IsTypedRecord     bool
	IsAbstract        bool
	CanOmitValues     bool
	IsSpecialBuiltin  bool
	TypeParameters    []*TypeVarType
	TypeArguments     optional.Option[[]Type]
	BaseClasses       []BaseRef
	Fields            *SymbolTable
	Flags             ClassFlags
	provenance        Provenance
}

func NewClassType(p Provenance, name string) *ClassType {
	return &ClassType{
		Name:       name,
		Fields:     NewSymbolTable(),
		provenance: p,
	}
}

func (t *ClassType) Provenance() Provenance { return t.provenance }

func (t *ClassType) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if args := t.TypeArguments.Unwrap(); len(args) > 0 {
		b.WriteString("[")
		for i, a := range args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString("]")
	} else if len(t.TypeParameters) > 0 {
		b.WriteString("[")
		for i, p := range t.TypeParameters {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString("]")
	}
	return b.String()
}

func (t *ClassType) Copy() Type {
	c := *t
	c.TypeParameters = append([]*TypeVarType(nil), t.TypeParameters...)
	c.BaseClasses = append([]BaseRef(nil), t.BaseClasses...)
	if t.TypeArguments.IsSome() {
		c.TypeArguments = optional.Some(append([]Type(nil), t.TypeArguments.Unwrap()...))
	}
	return &c
}

// IsGeneric reports whether this class declares type parameters.
func (t *ClassType) IsGeneric() bool { return len(t.TypeParameters) > 0 }

// ObjectType is an instance of a Class; a literal value may pin it to a
// single inhabitant. Object.Class is always a *ClassType,
// never another variant — enforced by the constructor's signature.
type ObjectType struct {
	Class        *ClassType
	LiteralValue optional.Option[LiteralValue]
	provenance   Provenance
}

func NewObjectType(p Provenance, class *ClassType) *ObjectType {
	return &ObjectType{Class: class, provenance: p}
}

func NewLiteralObjectType(p Provenance, class *ClassType, lit LiteralValue) *ObjectType {
	return &ObjectType{Class: class, LiteralValue: optional.Some(lit), provenance: p}
}

func (t *ObjectType) Provenance() Provenance { return t.provenance }

func (t *ObjectType) String() string {
	if t.LiteralValue.IsSome() {
		return t.LiteralValue.Unwrap().String()
	}
	return t.Class.String()
}

func (t *ObjectType) Copy() Type { c := *t; return &c }

// ParamCategory distinguishes ordinary positional parameters from the two
// flavors of variadic parameter.
type ParamCategory int

const (
	Positional ParamCategory = iota
	VarArgPositional
	VarArgKeyword
)

// Parameter is one entry of a FunctionType's parameter list.
type Parameter struct {
	Name        optional.Option[string]
	Category    ParamCategory
	Type        Type
	HasDefault  bool
}

func (p *Parameter) String() string {
	var b strings.Builder
	switch p.Category {
	case VarArgPositional:
		b.WriteString("*")
	case VarArgKeyword:
		b.WriteString("**")
	}
	if p.Name.IsSome() {
		b.WriteString(p.Name.Unwrap())
		b.WriteString(": ")
	}
	b.WriteString(p.Type.String())
	if p.HasDefault {
		b.WriteString(" = ...")
	}
	return b.String()
}

// FunctionFlags is a bit-set of callable properties.
type FunctionFlags uint32

const (
	InstanceMethod FunctionFlags = 1 << iota
	ClassMethod
	StaticMethod
	ConstructorMethod
	Synthesized
	Abstract
)

func (f FunctionFlags) Has(flag FunctionFlags) bool { return f&flag != 0 }

// SpecializedFuncTypes caches the result of specializing a function's
// parameter and return types so repeated lookups don't re-specialize.
type SpecializedFuncTypes struct {
	ParameterTypes []Type
	ReturnType     Type
}

// FunctionType is a single (non-overloaded) callable signature.
type FunctionType struct {
	Parameters       []*Parameter
	DeclaredReturn   optional.Option[Type]
	InferredReturn   optional.Option[Type]
	Flags            FunctionFlags
	SpecializedTypes optional.Option[SpecializedFuncTypes]
	provenance       Provenance
}

func NewFunctionType(p Provenance, params []*Parameter, declaredReturn Type) *FunctionType {
	ft := &FunctionType{Parameters: params, provenance: p}
	if declaredReturn != nil {
		ft.DeclaredReturn = optional.Some(declaredReturn)
	}
	return ft
}

func (t *FunctionType) Provenance() Provenance { return t.provenance }

// ReturnType returns the specialized return type when one has been
// recorded, else the declared return type, else the inferred one, else nil.
func (t *FunctionType) ReturnType() Type {
	if t.SpecializedTypes.IsSome() {
		if rt := t.SpecializedTypes.Unwrap().ReturnType; rt != nil {
			return rt
		}
	}
	if t.DeclaredReturn.IsSome() {
		return t.DeclaredReturn.Unwrap()
	}
	if t.InferredReturn.IsSome() {
		return t.InferredReturn.Unwrap()
	}
	return nil
}

func (t *FunctionType) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range t.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	if rt := t.ReturnType(); rt != nil {
		b.WriteString(" -> ")
		b.WriteString(rt.String())
	}
	return b.String()
}

func (t *FunctionType) Copy() Type {
	c := *t
	c.Parameters = append([]*Parameter(nil), t.Parameters...)
	return &c
}

// OverloadedType is a set of Function signatures presented as one callable.
type OverloadedType struct {
	Overloads  []*FunctionType
	provenance Provenance
}

func NewOverloadedType(p Provenance, overloads ...*FunctionType) *OverloadedType {
	return &OverloadedType{Overloads: overloads, provenance: p}
}

func (t *OverloadedType) Provenance() Provenance { return t.provenance }

func (t *OverloadedType) String() string {
	parts := make([]string, len(t.Overloads))
	for i, o := range t.Overloads {
		parts[i] = o.String()
	}
	return strings.Join(parts, " & ")
}

func (t *OverloadedType) Copy() Type {
	c := *t
	c.Overloads = append([]*FunctionType(nil), t.Overloads...)
	return &c
}
