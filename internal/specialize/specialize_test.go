package specialize

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

var limits = config.Default()

func TestSpecializeLeavesSimpleVariantsUnchanged(t *testing.T) {
	m := typevars.New()
	for _, tc := range []types.Type{
		types.NewUnboundType(nil),
		types.NewUnknownType(nil),
		types.NewAnyType(nil),
		types.NewNoneType(nil),
		types.NewNeverType(nil),
		types.NewModuleType(nil, "os"),
	} {
		assert.Same(t, tc, Specialize(tc, m, false, 0, limits))
	}
}

func TestSpecializeTypeVarFromMap(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	m := typevars.New()
	m.Set("T", intType)

	result := Specialize(tv, m, false, 0, limits)
	assert.Same(t, intType, result)
}

func TestSpecializeTypeVarFallsBackToConcreteFallback(t *testing.T) {
	strType := types.NewObjectType(nil, types.NewClassType(nil, "str"))
	tv := types.NewTypeVarType(nil, "T").WithConstraints(strType)
	m := typevars.New()

	result := Specialize(tv, m, true, 0, limits)
	assert.Same(t, strType, result)
}

func TestSpecializeTypeVarUnboundWithoutMakeConcreteStaysTypeVar(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	m := typevars.New()
	result := Specialize(tv, m, false, 0, limits)
	assert.Same(t, types.Type(tv), result)
}

func TestSpecializeUnionDistributes(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	strType := types.NewObjectType(nil, types.NewClassType(nil, "str"))
	m := typevars.New()
	m.Set("T", intType)

	union := types.Combine([]types.Type{tv, strType})
	result := Specialize(union, m, false, 0, limits)
	resultUnion, ok := result.(*types.UnionType)
	if assert.True(t, ok) {
		assert.Len(t, resultUnion.Subtypes, 2)
		assert.True(t, types.IsSame(result, types.Combine([]types.Type{intType, strType}), 0))
	}
}

func TestSpecializeUnionCollapsesWhenBothSidesSame(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	m := typevars.New()
	m.Set("T", intType)

	union := types.Combine([]types.Type{tv, intType})
	result := Specialize(union, m, false, 0, limits)
	assert.Same(t, intType, result)
}

func TestSpecializeClassFillsTypeArguments(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	listClass := types.NewClassType(nil, "list")
	listClass.TypeParameters = []*types.TypeVarType{tv}
	listClass.TypeArguments = optional.Some([]types.Type{tv})

	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	m := typevars.New()
	m.Set("T", intType)

	result := Specialize(listClass, m, false, 0, limits)
	specializedClass, ok := result.(*types.ClassType)
	if assert.True(t, ok) {
		args := specializedClass.TypeArguments.Unwrap()
		assert.Same(t, intType, args[0])
	}
}

func TestSpecializeClassSkipsAllocationWhenUnchanged(t *testing.T) {
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	listClass := types.NewClassType(nil, "list")
	listClass.TypeArguments = optional.Some([]types.Type{intType})

	m := typevars.New()
	result := Specialize(listClass, m, false, 0, limits)
	assert.Same(t, listClass, result)
}

func TestSpecializeFunctionRecordsSpecializedTypes(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	param := &types.Parameter{Name: optional.Some("x"), Type: tv}
	fn := types.NewFunctionType(nil, []*types.Parameter{param}, tv)

	m := typevars.New()
	m.Set("T", intType)

	result := Specialize(fn, m, false, 0, limits)
	specializedFn, ok := result.(*types.FunctionType)
	if assert.True(t, ok) {
		if assert.True(t, specializedFn.SpecializedTypes.IsSome()) {
			assert.Same(t, intType, specializedFn.SpecializedTypes.Unwrap().ReturnType)
		}
		assert.Same(t, intType, specializedFn.Parameters[0].Type)
	}
}

func TestSpecializeOverloadedAppliesToEachOverload(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	fn1 := types.NewFunctionType(nil, nil, tv)
	fn2 := types.NewFunctionType(nil, nil, types.NewNoneType(nil))
	overloaded := types.NewOverloadedType(nil, fn1, fn2)

	m := typevars.New()
	m.Set("T", intType)

	result := Specialize(overloaded, m, false, 0, limits)
	specializedOverloaded, ok := result.(*types.OverloadedType)
	if assert.True(t, ok) {
		assert.Same(t, intType, specializedOverloaded.Overloads[0].ReturnType())
	}
}

func TestSpecializeIsIdempotent(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	param := &types.Parameter{Name: optional.Some("x"), Type: tv}
	fn := types.NewFunctionType(nil, []*types.Parameter{param}, tv)

	m := typevars.New()
	m.Set("T", intType)

	once := Specialize(fn, m, false, 0, limits)
	twice := Specialize(once, m, false, 0, limits)
	assert.Same(t, once, twice)
}

func TestSpecializeRecursionBoundReturnsAny(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	m := typevars.New()
	result := Specialize(tv, m, false, 1000, limits)
	_, ok := result.(*types.AnyType)
	assert.True(t, ok)
}
