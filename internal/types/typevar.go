package types

import (
	"strings"

	"github.com/moznion/go-optional"
)

// Variance governs how a generic parameter's type arguments propagate
// through subtyping.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "+"
	case Contravariant:
		return "-"
	default:
		return ""
	}
}

// TypeVarType is a type-variable placeholder. Constraints and Bound are
// checked by the assignability engine when the variable is a destination;
// Variance governs how a class that declares this as a type parameter
// treats its arguments.
type TypeVarType struct {
	Name        string
	Constraints []Type
	Bound       optional.Option[Type]
	Variance    Variance
	provenance  Provenance
}

func NewTypeVarType(p Provenance, name string) *TypeVarType {
	return &TypeVarType{Name: name, provenance: p}
}

func (t *TypeVarType) WithConstraints(constraints ...Type) *TypeVarType {
	c := *t
	c.Constraints = constraints
	return &c
}

func (t *TypeVarType) WithBound(bound Type) *TypeVarType {
	c := *t
	c.Bound = optional.Some(bound)
	return &c
}

func (t *TypeVarType) WithVariance(v Variance) *TypeVarType {
	c := *t
	c.Variance = v
	return &c
}

func (t *TypeVarType) Provenance() Provenance { return t.provenance }

func (t *TypeVarType) String() string {
	var b strings.Builder
	b.WriteString(t.Variance.String())
	b.WriteString(t.Name)
	if len(t.Constraints) > 0 {
		b.WriteString(": (")
		for i, c := range t.Constraints {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(c.String())
		}
		b.WriteString(")")
	}
	if t.Bound.IsSome() {
		b.WriteString(" <: ")
		b.WriteString(t.Bound.Unwrap().String())
	}
	return b.String()
}

func (t *TypeVarType) Copy() Type {
	c := *t
	c.Constraints = append([]Type(nil), t.Constraints...)
	return &c
}

// ConcreteFallback is the type the Specializer substitutes for this TypeVar
// when make_concrete is requested or no map is supplied: a union of its
// constraints plus its bound, or Any if neither exists.
func (t *TypeVarType) ConcreteFallback() Type {
	parts := append([]Type(nil), t.Constraints...)
	if t.Bound.IsSome() {
		parts = append(parts, t.Bound.Unwrap())
	}
	if len(parts) == 0 {
		return NewAnyType(nil)
	}
	return Combine(parts)
}
