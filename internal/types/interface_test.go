package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterfaceIsSubtypeThroughExtendChain(t *testing.T) {
	base := NewInterface("Comparable", "app", Public)
	derived := NewInterface("Ordered", "app", Public)
	derived.Interfaces = []Type{base}

	assert.True(t, derived.IsSubtype(base))
	assert.True(t, derived.IsSubtype(Object()))
	assert.False(t, base.IsSubtype(derived))
}

func TestInterfaceEqualsComparesTypeArgs(t *testing.T) {
	generic := NewInterface("Box", "app", Public)
	generic.TypeParams = []TypeParameter{{ParamName: "T"}}

	intBox := generic.GetInstantiation(Primitive(Int))
	otherIntBox := generic.GetInstantiation(Primitive(Int))
	boolBox := generic.GetInstantiation(Primitive(Boolean))

	assert.True(t, intBox.Equals(otherIntBox))
	assert.False(t, intBox.Equals(boolBox))
}

func TestInterfaceGetInstantiationCachesByArgs(t *testing.T) {
	generic := NewInterface("Box", "app", Public)
	generic.TypeParams = []TypeParameter{{ParamName: "T"}}

	first := generic.GetInstantiation(Primitive(Int))
	second := generic.GetInstantiation(Primitive(Int))
	assert.Same(t, first, second)
}

func TestGetAllInterfacesCollectsTransitivelyAndDedups(t *testing.T) {
	base := NewInterface("Comparable", "app", Public)
	mid := NewInterface("Ordered", "app", Public)
	mid.Interfaces = []Type{base}

	class := NewClass("Widget", "app", Public)
	class.Extend = Object()
	class.Interfaces = []Type{mid, base}

	all := GetAllInterfaces(class)
	assert.Len(t, all, 2)
}

func TestGetAllInterfacesIncludesSelfForInterfaceReceiver(t *testing.T) {
	iface := NewInterface("Comparable", "app", Public)
	all := GetAllInterfaces(iface)
	assert.Len(t, all, 1)
	assert.True(t, all[0].Equals(iface))
}
