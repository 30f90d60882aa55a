package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shadow-lang/shadowc/internal/types"
)

func TestNewModuleSeedsObjectAndPrimitives(t *testing.T) {
	class := types.NewClass("Widget", "app", types.Public)
	m := NewModule(class)

	assert.Same(t, class, m.Type)
	assert.Len(t, m.References, 13)
	assert.Same(t, types.Object(), m.References[0])
}

func TestAddReferenceDedupesByEquals(t *testing.T) {
	class := types.NewClass("Widget", "app", types.Public)
	m := NewModule(class)
	before := len(m.References)

	m.AddReference(types.Object())
	assert.Len(t, m.References, before)

	other := types.NewClass("Gadget", "app", types.Public)
	m.AddReference(other)
	assert.Len(t, m.References, before+1)
}
