package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifiersWithAndWithout(t *testing.T) {
	m := Public.With(Static).With(Readonly)
	assert.True(t, m.IsPublic())
	assert.True(t, m.IsStatic())
	assert.True(t, m.IsReadonly())

	m = m.Without(Static)
	assert.False(t, m.IsStatic())
	assert.True(t, m.IsPublic())
}

func TestAssignedAtMostOnceForReadonlyAndConstant(t *testing.T) {
	assert.True(t, Readonly.AssignedAtMostOnce())
	assert.True(t, Constant.AssignedAtMostOnce())
	assert.False(t, Public.AssignedAtMostOnce())
}

func TestModifiersStringListsSetFlagsInDeclarationOrder(t *testing.T) {
	m := Static.With(Public).With(Final)
	assert.Equal(t, "public final static", m.String())
}

func TestModifiedTypeEquals(t *testing.T) {
	a := ModifiedType{Type: Primitive(Int), Modifiers: Nullable}
	b := ModifiedType{Type: Primitive(Int), Modifiers: Nullable}
	c := ModifiedType{Type: Primitive(Int), Modifiers: Public}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
