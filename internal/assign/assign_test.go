package assign

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/typecore-lang/typecore/internal/collab"
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/diag"
	specializePkg "github.com/typecore-lang/typecore/internal/specialize"
	"github.com/typecore-lang/typecore/internal/types"
	"github.com/typecore-lang/typecore/internal/typevars"
)

var limits = config.Default()

func check(dest, src types.Type) bool {
	return Query(dest, src, typevars.New(), 0, collab.Collaborators{}, limits).OK
}

func namedClass(name string) *types.ObjectType {
	return types.NewObjectType(nil, types.NewClassType(nil, name))
}

// --- Universal invariants --------------------------------

func TestReflexivity(t *testing.T) {
	a := namedClass("A")
	result := Query(a, a, typevars.New(), 0, collab.Collaborators{}, limits)
	assert.True(t, result.OK)
	assert.Empty(t, result.Addendum.Children)
}

func TestAnyAcceptsAndIsAcceptedByEverything(t *testing.T) {
	a := namedClass("A")
	any := types.NewAnyType(nil)
	assert.True(t, check(any, a))
	assert.True(t, check(a, any))
}

func TestUnknownAcceptsAndIsAcceptedByEverything(t *testing.T) {
	a := namedClass("A")
	unknown := types.NewUnknownType(nil)
	assert.True(t, check(unknown, a))
	assert.True(t, check(a, unknown))
}

func TestNoneRejectsEverythingExceptNoneAndNever(t *testing.T) {
	a := namedClass("A")
	none := types.NewNoneType(nil)
	assert.False(t, check(none, a))
	assert.True(t, check(none, types.NewNoneType(nil)))
	assert.True(t, check(none, types.NewNeverType(nil)))
}

func TestUnionOfTwoAcceptsEitherMember(t *testing.T) {
	a := namedClass("A")
	b := namedClass("B")
	union := types.Combine([]types.Type{a, b})
	assert.True(t, check(union, a))
	assert.True(t, check(union, b))
}

func TestSpecializeFixedPointWhenNoTypeVars(t *testing.T) {
	a := namedClass("A")
	assert.False(t, types.RequiresSpecialization(a))
	assert.Same(t, a, specializeReturn(a, typevars.New()))
}

func TestCombineLawsFromSpec(t *testing.T) {
	a := namedClass("A")
	b := namedClass("B")
	c := namedClass("C")

	assert.Equal(t, "Never", types.Combine(nil).String())
	assert.Same(t, a, types.Combine([]types.Type{a}))
	assert.Same(t, a, types.Combine([]types.Type{a, a}))

	left := types.Combine([]types.Type{types.Combine([]types.Type{a, b}), c})
	right := types.Combine([]types.Type{a, b, c})
	assert.True(t, types.IsSame(left, right, 0))
}

// --- Boundary behaviors -------------------------------------------------

func TestSelfReferentialClassTerminates(t *testing.T) {
	c := types.NewClassType(nil, "C")
	field := &types.Symbol{EffectiveType: types.NewObjectType(nil, c)}
	c.Fields.Set("next", field)

	obj := types.NewObjectType(nil, c)
	assert.True(t, check(obj, obj))
}

func TestUnionDestVsUnionSrcRequiresEveryMemberMatched(t *testing.T) {
	a := namedClass("A")
	b := namedClass("B")
	destUnion := types.Combine([]types.Type{a, b})
	srcUnion := types.Combine([]types.Type{a, b})
	assert.True(t, check(destUnion, srcUnion))

	c := namedClass("C")
	mismatchedSrc := types.Combine([]types.Type{a, c})
	result := Query(destUnion, mismatchedSrc, typevars.New(), 0, collab.Collaborators{}, limits)
	assert.False(t, result.OK)
}

func TestRecursiveProtocolTerminates(t *testing.T) {
	build := func() *types.ClassType {
		c := types.NewClassType(nil, "Chained")
		c.IsProtocol = true
		return c
	}
	p1 := build()
	p2 := build()
	p1.Fields.Set("next", &types.Symbol{Flags: types.ClassMember, EffectiveType: types.NewObjectType(nil, p1)})
	p2.Fields.Set("next", &types.Symbol{Flags: types.ClassMember, EffectiveType: types.NewObjectType(nil, p2)})

	assert.True(t, check(types.NewObjectType(nil, p1), types.NewObjectType(nil, p2)))
}

// --- End-to-end scenarios ----------------------------------

func buildCovariantList(t *testing.T) (dog, animal, listDog, listAnimal *types.ClassType) {
	animalC := types.NewClassType(nil, "Animal")
	dogC := types.NewClassType(nil, "Dog")
	dogC.BaseClasses = []types.BaseRef{{Type: animalC}}

	tv := types.NewTypeVarType(nil, "T").WithVariance(types.Covariant)
	listC := types.NewClassType(nil, "List")
	listC.TypeParameters = []*types.TypeVarType{tv}

	listAnimalC := listC.Copy().(*types.ClassType)
	listAnimalC.TypeArguments = optional.Some([]types.Type{types.NewObjectType(nil, animalC)})

	listDogC := listC.Copy().(*types.ClassType)
	listDogC.TypeArguments = optional.Some([]types.Type{types.NewObjectType(nil, dogC)})

	return dogC, animalC, listDogC, listAnimalC
}

func TestScenarioCovariantList(t *testing.T) {
	_, _, listDog, listAnimal := buildCovariantList(t)
	assert.True(t, check(types.NewObjectType(nil, listAnimal), types.NewObjectType(nil, listDog)))
	assert.False(t, check(types.NewObjectType(nil, listDog), types.NewObjectType(nil, listAnimal)))
}

func TestScenarioInvariantDict(t *testing.T) {
	animalC := types.NewClassType(nil, "Animal")
	dogC := types.NewClassType(nil, "Dog")
	dogC.BaseClasses = []types.BaseRef{{Type: animalC}}
	strC := types.NewClassType(nil, "str")

	kTV := types.NewTypeVarType(nil, "K")
	vTV := types.NewTypeVarType(nil, "V")
	dictC := types.NewClassType(nil, "Dict")
	dictC.TypeParameters = []*types.TypeVarType{kTV, vTV}

	dictStrAnimal := dictC.Copy().(*types.ClassType)
	dictStrAnimal.TypeArguments = optional.Some([]types.Type{
		types.NewObjectType(nil, strC), types.NewObjectType(nil, animalC),
	})

	dictStrDog := dictC.Copy().(*types.ClassType)
	dictStrDog.TypeArguments = optional.Some([]types.Type{
		types.NewObjectType(nil, strC), types.NewObjectType(nil, dogC),
	})

	assert.False(t, check(types.NewObjectType(nil, dictStrAnimal), types.NewObjectType(nil, dictStrDog)))
}

func TestScenarioLiteralNarrowing(t *testing.T) {
	strC := types.NewClassType(nil, "str")
	on := types.NewLiteralObjectType(nil, strC, types.StrLiteral("on"))
	off := types.NewLiteralObjectType(nil, strC, types.StrLiteral("off"))
	assert.False(t, check(on, off))

	bareStr := types.NewObjectType(nil, strC)
	assert.True(t, check(bareStr, on))
}

func TestScenarioNumericTower(t *testing.T) {
	intT := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	floatT := types.NewObjectType(nil, types.NewClassType(nil, "float"))
	complexT := types.NewObjectType(nil, types.NewClassType(nil, "complex"))

	assert.True(t, check(floatT, intT))
	assert.True(t, check(complexT, floatT))
	assert.False(t, check(intT, floatT))
}

func TestScenarioProtocolMatch(t *testing.T) {
	lenFn := types.NewFunctionType(nil, nil, types.NewObjectType(nil, types.NewClassType(nil, "int")))
	protocol := types.NewClassType(nil, "HasLen")
	protocol.IsProtocol = true
	protocol.Fields.Set("__len__", &types.Symbol{Flags: types.ClassMember, EffectiveType: lenFn})

	box := types.NewClassType(nil, "Box")
	box.Fields.Set("__len__", &types.Symbol{Flags: types.ClassMember, EffectiveType: lenFn})

	blank := types.NewClassType(nil, "Blank")

	result := Query(types.NewObjectType(nil, protocol), types.NewObjectType(nil, box), typevars.New(), 0, collab.Collaborators{}, limits)
	assert.True(t, result.OK)

	result2 := Query(types.NewObjectType(nil, protocol), types.NewObjectType(nil, blank), typevars.New(), 0, collab.Collaborators{}, limits)
	assert.False(t, result2.OK)
}

func TestScenarioVariadicTuple(t *testing.T) {
	intObj := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	strObj := types.NewObjectType(nil, types.NewClassType(nil, "str"))

	homogeneous := types.NewClassType(nil, "Tuple")
	homogeneous.IsSpecialBuiltin = true
	homogeneous.TypeArguments = optional.Some([]types.Type{intObj, types.NewEllipsisType(nil)})

	threeInts := types.NewClassType(nil, "Tuple")
	threeInts.IsSpecialBuiltin = true
	threeInts.TypeArguments = optional.Some([]types.Type{intObj, intObj, intObj})

	intAndStr := types.NewClassType(nil, "Tuple")
	intAndStr.IsSpecialBuiltin = true
	intAndStr.TypeArguments = optional.Some([]types.Type{intObj, strObj})

	assert.True(t, check(types.NewObjectType(nil, homogeneous), types.NewObjectType(nil, threeInts)))
	assert.False(t, check(types.NewObjectType(nil, homogeneous), types.NewObjectType(nil, intAndStr)))
}

func TestScenarioTypeVarBindingThroughFunction(t *testing.T) {
	// def id[T](x: T) -> T ; calling id(42) binds T := int and the call's
	// return type becomes int. Binding an argument against a declared
	// parameter type is a direct can_assign(param_type, arg_type, map)
	// call — the caller outside this core drives one such call per
	// argument; this core only supplies the TypeVar-dest rule it relies on.
	tv := types.NewTypeVarType(nil, "T")
	intObj := types.NewObjectType(nil, types.NewClassType(nil, "int"))

	m := typevars.New()
	root := diag.New("")
	assert.True(t, CanAssign(tv, intObj, root, m, 0, 0, collab.Collaborators{}, limits))

	bound, found := m.Get("T")
	if assert.True(t, found) {
		assert.True(t, types.IsSame(bound, intObj, 0))
	}

	returnType := specializeReturn(tv, m)
	assert.True(t, types.IsSame(returnType, intObj, 0))
}

func specializeReturn(tv types.Type, m *typevars.Map) types.Type {
	return specializePkg.Specialize(tv, m, false, 0, limits)
}

func makeRecord(name string, canOmit bool, fields map[string]types.Type) *types.ClassType {
	record := types.NewClassType(nil, name)
	record.IsTypedRecord = true
	record.CanOmitValues = canOmit
	for key, vt := range fields {
		record.Fields.Set(key, &types.Symbol{EffectiveType: vt})
	}
	return record
}

func TestTypedRecordStructuralMatch(t *testing.T) {
	strObj := namedClass("str")
	intObj := namedClass("int")

	movie := makeRecord("Movie", false, map[string]types.Type{"name": strObj, "year": intObj})
	sameShape := makeRecord("MovieLike", false, map[string]types.Type{"name": strObj, "year": intObj})
	assert.True(t, check(movie, sameShape))

	missingKey := makeRecord("Partial", false, map[string]types.Type{"name": strObj})
	assert.False(t, check(movie, missingKey))

	allOptional := makeRecord("Sparse", true, map[string]types.Type{"name": strObj, "year": intObj})
	assert.False(t, check(movie, allOptional))
}

func TestCallbackProtocolAcceptsFunction(t *testing.T) {
	intObj := namedClass("int")
	callFn := types.NewFunctionType(nil, nil, intObj)
	factory := types.NewClassType(nil, "IntFactory")
	factory.Fields.Set("__call__", &types.Symbol{Flags: types.ClassMember, EffectiveType: callFn})

	fn := types.NewFunctionType(nil, nil, intObj)
	assert.True(t, check(types.NewObjectType(nil, factory), fn))

	blank := types.NewClassType(nil, "Blank")
	assert.False(t, check(types.NewObjectType(nil, blank), fn))
}

func TestOverloadedSrcPicksMatchingOverload(t *testing.T) {
	intObj := namedClass("int")
	strObj := namedClass("str")

	dest := types.NewFunctionType(nil, []*types.Parameter{{Type: intObj}}, intObj)
	strOverload := types.NewFunctionType(nil, []*types.Parameter{{Type: strObj}}, strObj)
	intOverload := types.NewFunctionType(nil, []*types.Parameter{{Type: intObj}}, intObj)
	overloaded := types.NewOverloadedType(nil, strOverload, intOverload)

	assert.True(t, check(dest, overloaded))

	floatObj := namedClass("float")
	noMatch := types.NewOverloadedType(nil, types.NewFunctionType(nil, []*types.Parameter{{Type: strObj}}, floatObj))
	assert.False(t, check(dest, noMatch))
}

func TestBuiltinObjectAcceptsAnyClass(t *testing.T) {
	registry := collab.NewBuiltinRegistry()
	co := collab.Collaborators{Symbols: registry, Imports: registry}

	objectClass := types.NewClassType(nil, "object")
	objectClass.IsBuiltin = true
	someClass := types.NewClassType(nil, "Widget")

	assert.True(t, Query(objectClass, someClass, typevars.New(), 0, co, limits).OK)
	assert.True(t, Query(types.NewObjectType(nil, objectClass), types.NewNoneType(nil), typevars.New(), 0, co, limits).OK)
}

// --- TypeVar widening -----------------

func TestTypeVarWidensWhenNeitherDirectionHolds(t *testing.T) {
	tv := types.NewTypeVarType(nil, "T")
	a := namedClass("A")
	b := namedClass("B")

	m := typevars.New()
	root := diag.New("")
	assert.True(t, CanAssign(tv, a, root, m, 0, 0, collab.Collaborators{}, limits))
	assert.True(t, CanAssign(tv, b, root, m, 0, 0, collab.Collaborators{}, limits))

	bound, found := m.Get("T")
	if assert.True(t, found) {
		union, ok := bound.(*types.UnionType)
		if assert.True(t, ok) {
			assert.Len(t, union.Subtypes, 2)
		}
	}
}
