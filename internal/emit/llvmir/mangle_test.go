package llvmir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/types"
)

func stringClass() *types.ClassType {
	return types.NewClass("String", "shadow:standard", types.Public)
}

func intParam() types.ModifiedType {
	return types.ModifiedType{Type: types.Primitive(types.Int)}
}

func TestMangleNoParams(t *testing.T) {
	owner := types.NewClass("Widget", "shadow:standard", types.Public)
	m := &types.MethodType{
		Outer:      owner,
		MethodName: "reset",
		Params:     &types.SequenceType{},
		Returns:    &types.SequenceType{},
	}
	assert.Equal(t, "Widget_reset", Mangle(m))
}

func TestMangleWithParams(t *testing.T) {
	owner := types.NewClass("Widget", "shadow:standard", types.Public)
	m := &types.MethodType{
		Outer:      owner,
		MethodName: "resize",
		Params:     &types.SequenceType{Elements: []types.ModifiedType{intParam(), intParam()}},
		Returns:    &types.SequenceType{},
	}
	assert.Equal(t, "Widget_resize_int_int", Mangle(m))
}

func TestMangleArrayParam(t *testing.T) {
	owner := types.NewClass("Widget", "shadow:standard", types.Public)
	arr := &types.ArrayType{BaseType: types.Primitive(types.Byte), Dimensions: 1}
	m := &types.MethodType{
		Outer:      owner,
		MethodName: "load",
		Params:     &types.SequenceType{Elements: []types.ModifiedType{{Type: arr}}},
		Returns:    &types.SequenceType{},
	}
	assert.Equal(t, "Widget_load_byte_A", Mangle(m))
}

func TestDemangleRoundTrip(t *testing.T) {
	cases := []struct {
		name       string
		typeName   string
		methodName string
		params     []string
	}{
		{"no params", "Widget", "reset", nil},
		{"scalar params", "Widget", "resize", []string{"int", "int"}},
		{"single array param", "Widget", "load", []string{"byte_A"}},
		{"array then scalar", "Widget", "fill", []string{"byte_A", "int"}},
		{"two array params", "Matrix", "combine", []string{"int_A", "int_A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mangled := remangle(tc.typeName, tc.methodName, tc.params)
			typeName, methodName, params, err := Demangle(mangled)
			require.NoError(t, err)
			assert.Equal(t, tc.typeName, typeName)
			assert.Equal(t, tc.methodName, methodName)
			assert.Equal(t, tc.params, params)
			assert.Equal(t, mangled, remangle(typeName, methodName, params), "demangle must invert remangle")
		})
	}
}

func TestDemangleRejectsMalformed(t *testing.T) {
	_, _, _, err := Demangle("NoUnderscore")
	assert.Error(t, err)
}

func TestSafeTypeName(t *testing.T) {
	assert.Equal(t, "shadow.standard.String", safeTypeName("shadow:standard@String"))
}

func TestNewABIFieldLayout(t *testing.T) {
	e := newEmitter("test")
	require.Len(t, e.abi.Header.Fields, 3)
	require.Len(t, e.abi.Descriptor.Fields, 7)
}

func TestLlvmTypeMapsPrimitives(t *testing.T) {
	e := newEmitter("test")
	assert.Equal(t, "i1", e.llvmType(types.Primitive(types.Boolean)).String())
	assert.Equal(t, "i32", e.llvmType(types.Primitive(types.Int)).String())
	assert.Equal(t, "i64", e.llvmType(types.Primitive(types.Long)).String())
	assert.Equal(t, "double", e.llvmType(types.Primitive(types.Double)).String())
}

func TestLlvmTypeMapsClassToHeaderPointer(t *testing.T) {
	e := newEmitter("test")
	c := stringClass()
	got := e.llvmType(c)
	assert.Contains(t, got.String(), "object.header*")
}
