package diag

import (
	"fmt"

	"github.com/typecore-lang/typecore/internal/types"
)

// Error is the closed taxonomy of assignability failures. A CanAssign
// failure that isn't a silent success (Unbound/Unknown/recursion-bound
// exceeded) reports one or more of these, each attached as the message on
// the Addendum node that reports it; a few failure paths (invariance,
// generic arity, non-callable src) write a plain addendum message instead.
type Error interface {
	isError()
	Message() string
}

func (e LiteralMismatchError) isError()                     {}
func (e CannotAssignToNoneError) isError()                  {}
func (e ParamCountMismatchError) isError()                  {}
func (e ParamNameMismatchError) isError()                   {}
func (e ParamTypeMismatchError) isError()                   {}
func (e ReturnTypeMismatchError) isError()                  {}
func (e TupleSizeMismatchError) isError()                   {}
func (e TupleElementMismatchError) isError()                {}
func (e ProtocolMemberMissingError) isError()                {}
func (e ProtocolMemberIncompatibleError) isError()           {}
func (e TypedRecordKeyMissingError) isError()                {}
func (e TypedRecordKeyRequirednessMismatchError) isError()   {}
func (e TypedRecordKeyTypeMismatchError) isError()           {}
func (e TypeVarBoundViolationError) isError()                {}
func (e TypeVarConstraintViolationError) isError()           {}
func (e GenericMismatchError) isError()                      {}

type LiteralMismatchError struct {
	Dest, Src types.Type
}

func (e LiteralMismatchError) Message() string {
	return fmt.Sprintf("literal %s is not the same as %s", e.Src, e.Dest)
}

type CannotAssignToNoneError struct {
	Src types.Type
}

func (e CannotAssignToNoneError) Message() string {
	return fmt.Sprintf("%s is not assignable to None", e.Src)
}

type ParamCountMismatchError struct {
	Expected, Actual int
	TooFew           bool
}

func (e ParamCountMismatchError) Message() string {
	if e.TooFew {
		return fmt.Sprintf("not enough parameters: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("too many parameters: expected %d, got %d", e.Expected, e.Actual)
}

type ParamNameMismatchError struct {
	Name string
	Side string // "src" or "dest"
}

func (e ParamNameMismatchError) Message() string {
	return fmt.Sprintf("named parameter %q has no match on the %s side", e.Name, e.Side)
}

type ParamTypeMismatchError struct {
	Index     int
	Dest, Src types.Type
}

func (e ParamTypeMismatchError) Message() string {
	return fmt.Sprintf("parameter %d: %s is not assignable to %s", e.Index, e.Src, e.Dest)
}

type ReturnTypeMismatchError struct {
	Dest, Src types.Type
}

func (e ReturnTypeMismatchError) Message() string {
	return fmt.Sprintf("return type %s is not assignable to %s", e.Src, e.Dest)
}

type TupleSizeMismatchError struct {
	Expected, Actual int
}

func (e TupleSizeMismatchError) Message() string {
	return fmt.Sprintf("tuple size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

type TupleElementMismatchError struct {
	Index     int
	Dest, Src types.Type
}

func (e TupleElementMismatchError) Message() string {
	return fmt.Sprintf("tuple element %d: %s is not assignable to %s", e.Index, e.Src, e.Dest)
}

type ProtocolMemberMissingError struct {
	Protocol string
	Member   string
}

func (e ProtocolMemberMissingError) Message() string {
	return fmt.Sprintf("%q is not present, as required by protocol %q", e.Member, e.Protocol)
}

type ProtocolMemberIncompatibleError struct {
	Protocol string
	Member   string
}

func (e ProtocolMemberIncompatibleError) Message() string {
	return fmt.Sprintf("member %q is incompatible with protocol %q", e.Member, e.Protocol)
}

type TypedRecordKeyMissingError struct {
	Key string
}

func (e TypedRecordKeyMissingError) Message() string {
	return fmt.Sprintf("key %q is missing", e.Key)
}

type TypedRecordKeyRequirednessMismatchError struct {
	Key               string
	DestRequired      bool
}

func (e TypedRecordKeyRequirednessMismatchError) Message() string {
	if e.DestRequired {
		return fmt.Sprintf("key %q is required but may be omitted on the source side", e.Key)
	}
	return fmt.Sprintf("key %q is optional but required on the source side", e.Key)
}

type TypedRecordKeyTypeMismatchError struct {
	Key       string
	Dest, Src types.Type
}

func (e TypedRecordKeyTypeMismatchError) Message() string {
	return fmt.Sprintf("key %q: %s is not assignable to %s", e.Key, e.Src, e.Dest)
}

type TypeVarBoundViolationError struct {
	Name string
	Bound, Src types.Type
}

func (e TypeVarBoundViolationError) Message() string {
	return fmt.Sprintf("%s is not assignable to the bound %s of type variable %s", e.Src, e.Bound, e.Name)
}

type TypeVarConstraintViolationError struct {
	Name string
	Src  types.Type
}

func (e TypeVarConstraintViolationError) Message() string {
	return fmt.Sprintf("%s satisfies none of the constraints of type variable %s", e.Src, e.Name)
}

type GenericMismatchError struct {
	Dest, Src types.Type
}

func (e GenericMismatchError) Message() string {
	return fmt.Sprintf("%s is not assignable to %s", e.Src, e.Dest)
}
