package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMapPreservesInsertionOrder(t *testing.T) {
	f := NewFieldMap()
	f.Add("z", ModifiedType{Type: Primitive(Int)})
	f.Add("a", ModifiedType{Type: Primitive(Boolean)})

	assert.Equal(t, []string{"z", "a"}, f.Names())
	assert.Equal(t, 2, f.Len())
}

func TestFieldMapReAddDoesNotDuplicateOrder(t *testing.T) {
	f := NewFieldMap()
	f.Add("x", ModifiedType{Type: Primitive(Int)})
	f.Add("x", ModifiedType{Type: Primitive(Boolean)})

	assert.Equal(t, []string{"x"}, f.Names())
	got, ok := f.Get("x")
	require.True(t, ok)
	assert.True(t, got.Type.Equals(Primitive(Boolean)))
}

func TestFieldMapCloneIsIndependent(t *testing.T) {
	f := NewFieldMap()
	f.Add("x", ModifiedType{Type: Primitive(Int)})

	clone := f.Clone()
	clone.Add("y", ModifiedType{Type: Primitive(Boolean)})

	assert.Equal(t, 1, f.Len())
	assert.Equal(t, 2, clone.Len())
}
