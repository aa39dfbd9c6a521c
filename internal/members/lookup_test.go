package members

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/types"
)

var limits = config.Default()

func makeMethod() *types.Symbol {
	fn := types.NewFunctionType(nil, nil, types.NewNoneType(nil))
	return &types.Symbol{
		Flags:         types.ClassMember,
		DeclaredType:  optional.Some[types.Type](fn),
		EffectiveType: fn,
	}
}

func TestLookUpClassMemberFindsOwnField(t *testing.T) {
	class := types.NewClassType(nil, "Box")
	class.Fields.Set("value", makeMethod())

	member, ok := LookUpClassMember(class, "value", 0, 0, limits)
	if assert.True(t, ok) {
		assert.Same(t, class, member.OwningClass)
	}
}

func TestLookUpClassMemberFallsThroughToBase(t *testing.T) {
	base := types.NewClassType(nil, "Animal")
	base.Fields.Set("speak", makeMethod())
	child := types.NewClassType(nil, "Dog")
	child.BaseClasses = []types.BaseRef{{Type: base}}

	member, ok := LookUpClassMember(child, "speak", 0, 0, limits)
	assert.True(t, ok)
	assert.NotNil(t, member)
}

func TestLookUpClassMemberSkipBaseClasses(t *testing.T) {
	base := types.NewClassType(nil, "Animal")
	base.Fields.Set("speak", makeMethod())
	child := types.NewClassType(nil, "Dog")
	child.BaseClasses = []types.BaseRef{{Type: base}}

	_, ok := LookUpClassMember(child, "speak", SkipBaseClasses, 0, limits)
	assert.False(t, ok)
}

func TestLookUpClassMemberSkipObjectBaseClass(t *testing.T) {
	object := types.NewClassType(nil, "object")
	object.IsBuiltin = true
	object.Fields.Set("anything", makeMethod())

	_, ok := LookUpClassMember(object, "anything", SkipObjectBaseClass, 0, limits)
	assert.False(t, ok)
}

func TestLookUpClassMemberMetaclassBaseIsSkipped(t *testing.T) {
	meta := types.NewClassType(nil, "DogMeta")
	meta.Fields.Set("registry", makeMethod())
	child := types.NewClassType(nil, "Dog")
	child.BaseClasses = []types.BaseRef{{Type: meta, IsMetaclass: true}}

	_, ok := LookUpClassMember(child, "registry", 0, 0, limits)
	assert.False(t, ok)
}

func TestLookUpClassMemberDeclaredTypesOnly(t *testing.T) {
	class := types.NewClassType(nil, "Box")
	class.Fields.Set("inferred", &types.Symbol{EffectiveType: types.NewNoneType(nil)})

	_, ok := LookUpClassMember(class, "inferred", DeclaredTypesOnly, 0, limits)
	assert.False(t, ok)
}

func TestLookUpClassMemberUnknownBaseSynthesizesMember(t *testing.T) {
	child := types.NewClassType(nil, "Mystery")
	child.BaseClasses = []types.BaseRef{{Type: types.NewUnknownType(nil)}}

	member, ok := LookUpClassMember(child, "whatever", 0, 0, limits)
	if assert.True(t, ok) {
		_, isUnknown := member.Symbol.EffectiveType.(*types.UnknownType)
		assert.True(t, isUnknown)
	}
}

func TestGetAbstractMethodsRecursiveExcludesOverridden(t *testing.T) {
	abstractFn := types.NewFunctionType(nil, nil, types.NewNoneType(nil))
	abstractFn.Flags = types.Abstract
	base := types.NewClassType(nil, "Shape")
	base.Fields.Set("area", &types.Symbol{EffectiveType: abstractFn})
	base.Fields.Set("perimeter", &types.Symbol{EffectiveType: abstractFn})

	concreteFn := types.NewFunctionType(nil, nil, types.NewNoneType(nil))
	child := types.NewClassType(nil, "Square")
	child.BaseClasses = []types.BaseRef{{Type: base}}
	child.Fields.Set("area", &types.Symbol{EffectiveType: concreteFn})

	abstract := GetAbstractMethodsRecursive(child, 0, limits)
	assert.ElementsMatch(t, []string{"perimeter"}, abstract)
}

func TestGetTypedRecordMembersRecursiveMergesBases(t *testing.T) {
	strType := types.NewObjectType(nil, types.NewClassType(nil, "str"))
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))

	base := types.NewClassType(nil, "BaseRecord")
	base.IsTypedRecord = true
	base.Fields.Set("name", &types.Symbol{EffectiveType: strType})

	child := types.NewClassType(nil, "ChildRecord")
	child.IsTypedRecord = true
	child.BaseClasses = []types.BaseRef{{Type: base}}
	child.Fields.Set("age", &types.Symbol{EffectiveType: intType})

	entries := GetTypedRecordMembersRecursive(child, 0, limits)
	assert.Len(t, entries, 2)
	assert.True(t, entries["name"].IsRequired)
	assert.True(t, entries["age"].IsRequired)
}

func TestGetTypedRecordMembersRecursiveCanOmitValues(t *testing.T) {
	intType := types.NewObjectType(nil, types.NewClassType(nil, "int"))
	class := types.NewClassType(nil, "Options")
	class.IsTypedRecord = true
	class.CanOmitValues = true
	class.Fields.Set("limit", &types.Symbol{EffectiveType: intType})

	entries := GetTypedRecordMembersRecursive(class, 0, limits)
	assert.False(t, entries["limit"].IsRequired)
}
