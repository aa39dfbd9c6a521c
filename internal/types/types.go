// Package types is the immutable algebraic type model:
// the closed set of Type variants, their constructors/accessors, and the
// small algebra (Combine, ForEachSubtype, IsSame, ...) that every other
// package in this module builds on. It holds no mutable state and performs
// no I/O; every function here is total.
package types

import "fmt"

// Type is a tagged sum; the variants below are exhaustive. Each is
// immutable after construction — any function that would "change" a Type
// instead returns a new one, skipping the allocation when nothing actually
// changed (see specialize.go callers).
//
//sumtype:decl
type Type interface {
	isType()
	Provenance() Provenance
	String() string
	// Copy returns a shallow copy: one level of struct fields duplicated,
	// nested Types shared by reference. Used by callers that need to tag a
	// copy with fresh provenance without disturbing the original.
	Copy() Type
}

func (*UnboundType) isType()   {}
func (*UnknownType) isType()   {}
func (*AnyType) isType()       {}
func (*NoneType) isType()      {}
func (*NeverType) isType()     {}
func (*TypeVarType) isType()   {}
func (*ClassType) isType()     {}
func (*ObjectType) isType()    {}
func (*FunctionType) isType()  {}
func (*OverloadedType) isType() {}
func (*ModuleType) isType()    {}
func (*UnionType) isType()     {}

// --- Unbound ---------------------------------------------------------------

// UnboundType is a placeholder for a name with no type yet. Assignable in
// either direction, silently.
type UnboundType struct{ provenance Provenance }

func NewUnboundType(p Provenance) *UnboundType { return &UnboundType{provenance: p} }
func (t *UnboundType) Provenance() Provenance  { return t.provenance }
func (t *UnboundType) String() string          { return "Unbound" }
func (t *UnboundType) Copy() Type              { c := *t; return &c }

// --- Unknown -----------------------------------------------------------------

// UnknownType is an explicit "we don't know". Assignable in either
// direction, silently.
type UnknownType struct{ provenance Provenance }

func NewUnknownType(p Provenance) *UnknownType { return &UnknownType{provenance: p} }
func (t *UnknownType) Provenance() Provenance  { return t.provenance }
func (t *UnknownType) String() string          { return "Unknown" }
func (t *UnknownType) Copy() Type              { c := *t; return &c }

// --- Any ---------------------------------------------------------------------

// AnyType is top/bottom for assignability. IsEllipsis marks it as standing
// for a variadic-tuple "..." slot.
type AnyType struct {
	IsEllipsis bool
	provenance Provenance
}

func NewAnyType(p Provenance) *AnyType { return &AnyType{provenance: p} }
func NewEllipsisType(p Provenance) *AnyType {
	return &AnyType{IsEllipsis: true, provenance: p}
}
func (t *AnyType) Provenance() Provenance { return t.provenance }
func (t *AnyType) String() string {
	if t.IsEllipsis {
		return "..."
	}
	return "Any"
}
func (t *AnyType) Copy() Type { c := *t; return &c }

// --- None ----------------------------------------------------------------

// NoneType is the singleton null type.
type NoneType struct{ provenance Provenance }

func NewNoneType(p Provenance) *NoneType  { return &NoneType{provenance: p} }
func (t *NoneType) Provenance() Provenance { return t.provenance }
func (t *NoneType) String() string         { return "None" }
func (t *NoneType) Copy() Type             { c := *t; return &c }

// --- Never ---------------------------------------------------------------

// NeverType is the bottom for runtime values: no inhabitants.
type NeverType struct{ provenance Provenance }

func NewNeverType(p Provenance) *NeverType { return &NeverType{provenance: p} }
func (t *NeverType) Provenance() Provenance { return t.provenance }
func (t *NeverType) String() string         { return "Never" }
func (t *NeverType) Copy() Type             { c := *t; return &c }

// --- Module ----------------------------------------------------------------

// ModuleType represents an imported module's namespace.
type ModuleType struct {
	Name         string
	Fields       *SymbolTable
	LoaderFields *SymbolTable
	provenance   Provenance
}

func NewModuleType(p Provenance, name string) *ModuleType {
	return &ModuleType{
		Name:         name,
		Fields:       NewSymbolTable(),
		LoaderFields: NewSymbolTable(),
		provenance:   p,
	}
}
func (t *ModuleType) Provenance() Provenance { return t.provenance }
func (t *ModuleType) String() string         { return fmt.Sprintf("module %q", t.Name) }
func (t *ModuleType) Copy() Type             { c := *t; return &c }
