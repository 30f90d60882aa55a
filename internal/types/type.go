// Package types implements the Shadow type model: the closed set of type
// variants, nominal subtyping, generic substitution, and overload
// resolution that both the TAC builder and the LLVM emitter are driven
// by.
package types

import (
	"fmt"
)

// Type is the root variant of the closed type-variant set.
// Every concrete type below implements it; the unexported typeNode
// marker method closes the variant set to this package, so a new
// variant is a compile-time forcing function across every per-variant
// match arm in Replace, IsSubtype and the emitter.
type Type interface {
	fmt.Stringer

	// Name is the simple (unqualified) name of the type.
	Name() string
	// QualifiedName is the package-prefixed name.
	QualifiedName() string
	// Modifiers is this type's own modifier bitset.
	Modifiers() Modifiers
	// Equals is nominal equality, considering type arguments. It is
	// reflexive and symmetric.
	Equals(other Type) bool
	// IsSubtype reports whether this type can be used where other is
	// expected.
	IsSubtype(other Type) bool
	// Replace substitutes type parameters throughout the type.
	Replace(formals []TypeParameter, actuals []Type) Type
	// Hash is a content hash consistent with Equals, used to dedupe
	// hset.HSet-backed closures (interfaces, references) that must key
	// on Equals rather than pointer identity.
	Hash() uint64
	// typeNode is unexported so the variant set is closed to this
	// package.
	typeNode()
}

// typesEqual guards against a nil Type on either side, which arises for
// optional slots (ClassType.extend for Object, an unset outer type).
func typesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// Sentinel singleton types referenced throughout the model.
var (
	// Unknown stands in for a type that failed to resolve during
	// checking; it is subtype-compatible with everything so that a
	// single unresolved-name error does not cascade into hundreds of
	// "not a subtype" errors downstream.
	Unknown Type = unknownType{}
	// Null is the type of the `null` literal: it is a subtype of every
	// nullable reference type and of no primitive or non-nullable type.
	Null Type = nullType{}
)

type unknownType struct{}

func (unknownType) typeNode()                                      {}
func (unknownType) String() string                                 { return "<unknown>" }
func (unknownType) Name() string                                   { return "<unknown>" }
func (unknownType) QualifiedName() string                          { return "<unknown>" }
func (unknownType) Modifiers() Modifiers                           { return 0 }
func (unknownType) Equals(other Type) bool                         { _, ok := other.(unknownType); return ok }
func (unknownType) IsSubtype(Type) bool                            { return true }
func (unknownType) Replace([]TypeParameter, []Type) Type           { return Unknown }
func (unknownType) Hash() uint64                                   { return 1 }

type nullType struct{}

func (nullType) typeNode()                            {}
func (nullType) String() string                       { return "null" }
func (nullType) Name() string                         { return "null" }
func (nullType) QualifiedName() string                { return "null" }
func (nullType) Modifiers() Modifiers                 { return 0 }
func (nullType) Equals(other Type) bool               { _, ok := other.(nullType); return ok }
func (nullType) Replace([]TypeParameter, []Type) Type { return Null }
func (nullType) Hash() uint64                         { return 2 }
func (n nullType) IsSubtype(other Type) bool {
	if _, ok := other.(nullType); ok {
		return true
	}
	switch t := other.(type) {
	case *ArrayType:
		return t.Nullable
	case *ClassType:
		return true
	case *InterfaceType:
		return true
	default:
		return false
	}
}

// fnv1a64 is the hash primitive used by every concrete Type's Hash, kept
// as one shared helper so mixing hashes across variants (a ClassType's
// hash folding in its type-argument hashes, an ArrayType's folding in its
// base type's hash) is consistent.
func fnv1a64(seed uint64, data string) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := seed
	if h == 0 {
		h = offset
	}
	for i := 0; i < len(data); i++ {
		h ^= uint64(data[i])
		h *= prime
	}
	return h
}

func mixHash(seed uint64, other uint64) uint64 {
	h := seed
	if h == 0 {
		h = 14695981039346656037
	}
	h ^= other
	h *= 1099511628211
	return h
}
