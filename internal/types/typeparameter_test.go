package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeParameterEqualsByNameAndBounds(t *testing.T) {
	a := TypeParameter{ParamName: "T", Bounds: []Type{Object()}}
	b := TypeParameter{ParamName: "T", Bounds: []Type{Object()}}
	c := TypeParameter{ParamName: "U", Bounds: []Type{Object()}}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestTypeParameterIsSubtypeThroughBounds(t *testing.T) {
	comparable := NewInterface("Comparable", "app", Public)
	param := TypeParameter{ParamName: "T", Bounds: []Type{comparable}}

	assert.True(t, param.IsSubtype(comparable))
	assert.True(t, param.IsSubtype(Object()))
	assert.True(t, param.IsSubtype(param))
	assert.False(t, param.IsSubtype(Primitive(Int)))
}

func TestTypeParameterReplaceSubstitutesSelfWhenMatched(t *testing.T) {
	param := TypeParameter{ParamName: "T"}
	replaced := param.Replace([]TypeParameter{param}, []Type{Primitive(Int)})
	assert.True(t, replaced.Equals(Primitive(Int)))
}

func TestTypeParameterReplaceSubstitutesWithinBoundsWhenUnmatched(t *testing.T) {
	inner := TypeParameter{ParamName: "U"}
	outer := TypeParameter{ParamName: "T", Bounds: []Type{inner}}

	replaced := outer.Replace([]TypeParameter{inner}, []Type{Primitive(Int)}).(TypeParameter)
	assert.Equal(t, "T", replaced.ParamName)
	assert.True(t, replaced.Bounds[0].Equals(Primitive(Int)))
}

func TestTypeParameterReplaceIsNoOpWhenNothingMatches(t *testing.T) {
	param := TypeParameter{ParamName: "T"}
	other := TypeParameter{ParamName: "U"}
	replaced := param.Replace([]TypeParameter{other}, []Type{Primitive(Int)})
	assert.Equal(t, param, replaced)
}

func TestTypeParameterIsFree(t *testing.T) {
	param := TypeParameter{ParamName: "T"}
	assert.True(t, param.IsFree(map[string]bool{}))
	assert.False(t, param.IsFree(map[string]bool{"T": true}))
}
