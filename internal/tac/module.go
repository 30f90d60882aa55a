package tac

import "github.com/shadow-lang/shadowc/internal/types"

// Module is one TACModule: everything the emitter needs to produce one
// class or interface's type declaration, descriptors, and method
// bodies. There is one Module per top-level or inner class/interface.
type Module struct {
	Type types.Type
	// References is the transitive reference set closed under extend,
	// interface, inner, outer, and every referenced field/method type —
	// the primitive set and Object are always members regardless of
	// whether the module's own code mentions them, so their runtime
	// descriptors are always emitted.
	References []types.Type
	Fields     *types.FieldMap
	Constants  []Local
	Methods    []*TACMethod
}

// NewModule returns an empty Module for t, seeded with the always-present
// references (Object and every primitive kind).
func NewModule(t types.Type) *Module {
	m := &Module{Type: t, Fields: types.NewFieldMap()}
	m.References = append(m.References, types.Object())
	for _, kind := range []types.PrimitiveKind{
		types.Boolean, types.Byte, types.UByte, types.Short, types.UShort,
		types.Int, types.UInt, types.Code, types.Long, types.ULong,
		types.Float, types.Double,
	} {
		m.References = append(m.References, types.Primitive(kind))
	}
	return m
}

// AddReference appends t to the reference set if not already present
// (by Equals), maintaining the closure the emitter needs to know every
// class descriptor it must declare.
func (m *Module) AddReference(t types.Type) {
	for _, existing := range m.References {
		if existing.Equals(t) {
			return
		}
	}
	m.References = append(m.References, t)
}
