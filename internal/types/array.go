package types

import "strings"

// ArrayType is composed of a base type, a nullable-element flag, and a
// dimension count ≥ 1. It extends either Array or ArrayNullable —
// modeled here as a Modifiers-derived name rather than a real base
// ClassType, since the runtime's Array/ArrayNullable classes are opaque
// descriptor-only types the emitter references by name, not classes
// with Shadow-level bodies.
type ArrayType struct {
	BaseType   Type
	Nullable   bool
	Dimensions int
}

// arrayWidthSentinel is a value distinct from every PrimitiveKind and
// from the "not an array" case, used when the emitter needs a total
// order over types for stable generic/array-set iteration.
const arrayWidthSentinel = -1

func (a *ArrayType) typeNode() {}

func (a *ArrayType) Name() string {
	suffix := strings.Repeat("[]", a.Dimensions)
	if a.Nullable {
		return a.BaseType.Name() + suffix + "?"
	}
	return a.BaseType.Name() + suffix
}

func (a *ArrayType) QualifiedName() string { return a.Name() }
func (a *ArrayType) String() string        { return a.Name() }

func (a *ArrayType) Modifiers() Modifiers {
	m := Public
	if a.Nullable {
		m = m.With(Nullable)
	}
	return m
}

// BaseClassName is "Array" or "ArrayNullable", the runtime base class
// this array type extends.
func (a *ArrayType) BaseClassName() string {
	if a.Nullable {
		return "ArrayNullable"
	}
	return "Array"
}

func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	if !ok {
		return false
	}
	return o.Nullable == a.Nullable && o.Dimensions == a.Dimensions && typesEqual(a.BaseType, o.BaseType)
}

// IsSubtype is invariant over baseType and nullable:
// Array<T> is a subtype of Array<U> only when T.Equals(U), regardless of
// any subtype relation between T and U. It is always a subtype of
// Object.
func (a *ArrayType) IsSubtype(other Type) bool {
	if a.Equals(other) {
		return true
	}
	if IsObject(other) {
		return true
	}
	if _, ok := other.(nullType); ok {
		return false
	}
	return false
}

func (a *ArrayType) Replace(formals []TypeParameter, actuals []Type) Type {
	newBase := a.BaseType.Replace(formals, actuals)
	if newBase == a.BaseType {
		return a
	}
	return &ArrayType{BaseType: newBase, Nullable: a.Nullable, Dimensions: a.Dimensions}
}

func (a *ArrayType) Hash() uint64 {
	h := fnv1a64(0, "array")
	h = mixHash(h, a.BaseType.Hash())
	if a.Nullable {
		h = mixHash(h, 1)
	}
	h = mixHash(h, uint64(a.Dimensions))
	return h
}
