package types

import "strings"

// MethodType is the type of a method signature: outer type, parameter
// sequence, return sequence, modifier set.
type MethodType struct {
	Outer      Type
	MethodName string
	Params     *SequenceType
	Returns    *SequenceType
	Mods       Modifiers
	// TypeParams are the method's own generic parameters, distinct from
	// its outer type's (a generic method on a non-generic class, or a
	// generic method with parameters of its own on a generic class).
	TypeParams []TypeParameter
}

func (m *MethodType) typeNode()             {}
func (m *MethodType) Name() string          { return m.MethodName }
func (m *MethodType) QualifiedName() string { return m.Outer.QualifiedName() + "." + m.MethodName }
func (m *MethodType) Modifiers() Modifiers  { return m.Mods }

func (m *MethodType) String() string {
	return m.MethodName + m.Params.String() + " => " + m.Returns.String()
}

func (m *MethodType) Equals(other Type) bool {
	o, ok := other.(*MethodType)
	if !ok || o.MethodName != m.MethodName {
		return false
	}
	return m.Params.Equals(o.Params) && m.Returns.Equals(o.Returns)
}

// IsSubtype for methods holds under standard function-type variance:
// contravariant parameters, covariant returns. Overriding uses this to
// validate a subclass method signature against the one it overrides.
func (m *MethodType) IsSubtype(other Type) bool {
	o, ok := other.(*MethodType)
	if !ok {
		return false
	}
	if len(o.Params.Elements) != len(m.Params.Elements) {
		return false
	}
	for i := range m.Params.Elements {
		// contravariant: the overriding parameter type must accept
		// everything the overridden one does.
		if !o.Params.Elements[i].Type.IsSubtype(m.Params.Elements[i].Type) {
			return false
		}
	}
	return m.Returns.IsSubtype(o.Returns)
}

func (m *MethodType) Replace(formals []TypeParameter, actuals []Type) Type {
	newParams := m.Params.Replace(formals, actuals).(*SequenceType)
	newReturns := m.Returns.Replace(formals, actuals).(*SequenceType)
	var newOuter Type
	if m.Outer != nil {
		newOuter = m.Outer.Replace(formals, actuals)
	}
	return &MethodType{
		Outer:      newOuter,
		MethodName: m.MethodName,
		Params:     newParams,
		Returns:    newReturns,
		Mods:       m.Mods,
		TypeParams: m.TypeParams,
	}
}

func (m *MethodType) Hash() uint64 {
	h := fnv1a64(0, "method:"+m.MethodName)
	h = mixHash(h, m.Params.Hash())
	h = mixHash(h, m.Returns.Hash())
	return h
}

// Arity is the number of formal parameters.
func (m *MethodType) Arity() int { return len(m.Params.Elements) }

// MangledSuffix is the "_ParamType1_ParamType2…" part of the ABI method
// mangling, with array parameters suffixed "_A".
func (m *MethodType) MangledSuffix() string {
	if len(m.Params.Elements) == 0 {
		return ""
	}
	parts := make([]string, len(m.Params.Elements))
	for i, p := range m.Params.Elements {
		parts[i] = mangleTypeSegment(p.Type)
	}
	return "_" + strings.Join(parts, "_")
}

func mangleTypeSegment(t Type) string {
	if arr, ok := t.(*ArrayType); ok {
		return mangleTypeSegment(arr.BaseType) + "_A"
	}
	return t.Name()
}

// MethodMap is the ordered name -> overload-list map every ClassType and
// InterfaceType carries.
type MethodMap struct {
	order []string
	byName map[string][]*MethodType
}

func NewMethodMap() *MethodMap {
	return &MethodMap{byName: make(map[string][]*MethodType)}
}

func (m *MethodMap) Add(method *MethodType) {
	if _, ok := m.byName[method.MethodName]; !ok {
		m.order = append(m.order, method.MethodName)
	}
	m.byName[method.MethodName] = append(m.byName[method.MethodName], method)
}

func (m *MethodMap) Overloads(name string) []*MethodType {
	return m.byName[name]
}

func (m *MethodMap) Names() []string {
	return m.order
}

func (m *MethodMap) All() []*MethodType {
	var all []*MethodType
	for _, name := range m.order {
		all = append(all, m.byName[name]...)
	}
	return all
}

func (m *MethodMap) Clone() *MethodMap {
	clone := NewMethodMap()
	for _, name := range m.order {
		clone.order = append(clone.order, name)
		clone.byName[name] = append([]*MethodType(nil), m.byName[name]...)
	}
	return clone
}
