package collab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/typecore-lang/typecore/internal/types"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	intClass := types.NewClassType(nil, "int")
	r.Register(BuiltinInt, types.NewObjectType(nil, intClass))

	resolved := r.Resolve(BuiltinInt)
	obj, ok := resolved.(*types.ObjectType)
	if assert.True(t, ok) {
		assert.Equal(t, "int", obj.Class.Name)
	}
}

func TestRegistryResolveUnknownIsUnknown(t *testing.T) {
	r := NewRegistry()
	resolved := r.Resolve("nonexistent")
	_, ok := resolved.(*types.UnknownType)
	assert.True(t, ok)
}

func TestNewBuiltinRegistryCoversAllNames(t *testing.T) {
	r := NewBuiltinRegistry()
	for _, name := range []string{
		BuiltinObject, BuiltinType, BuiltinTypeGeneric, BuiltinModuleType,
		BuiltinTuple, BuiltinBool, BuiltinInt, BuiltinFloat, BuiltinComplex,
		BuiltinNoReturn, BuiltinEllipsis, BuiltinEnumMeta,
	} {
		_, ok := r.Resolve(name).(*types.ObjectType)
		assert.True(t, ok, "expected %s to resolve to an Object", name)
	}
}

func TestCollaboratorsResolveBuiltinTolerant(t *testing.T) {
	var c Collaborators
	resolved := c.ResolveBuiltin(BuiltinInt)
	_, ok := resolved.(*types.UnknownType)
	assert.True(t, ok)
}
