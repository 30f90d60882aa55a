package types

import (
	"strings"

	"github.com/shadow-lang/shadowc/util/hset"
)

// InterfaceType is the same shape as ClassType minus extend; interfaces
// support only constant fields, enforced by the type checker rather than
// by this struct.
type InterfaceType struct {
	TypeName    string
	PackageName string
	Mods        Modifiers
	Outer       Type
	Interfaces  []Type
	TypeParams  []TypeParameter
	TypeArgs    []Type
	Fields      *FieldMap
	Methods     *MethodMap
	InnerTypes  map[string]Type

	instantiations map[string]*InterfaceType
}

func NewInterface(name, pkg string, mods Modifiers) *InterfaceType {
	return &InterfaceType{
		TypeName:       name,
		PackageName:    pkg,
		Mods:           mods,
		InnerTypes:     make(map[string]Type),
		Fields:         NewFieldMap(),
		Methods:        NewMethodMap(),
		instantiations: make(map[string]*InterfaceType),
	}
}

func (i *InterfaceType) typeNode()              {}
func (i *InterfaceType) Name() string           { return i.TypeName }
func (i *InterfaceType) QualifiedName() string  { return i.PackageName + "@" + i.TypeName }
func (i *InterfaceType) Modifiers() Modifiers   { return i.Mods }
func (i *InterfaceType) MethodsMap() *MethodMap { return i.Methods }
func (i *InterfaceType) FieldsMap() *FieldMap   { return i.Fields }
func (i *InterfaceType) Params() []TypeParameter { return i.TypeParams }
func (i *InterfaceType) Args() []Type            { return i.TypeArgs }
func (i *InterfaceType) SuperTypes() []Type      { return i.Interfaces }

func (i *InterfaceType) String() string {
	if len(i.TypeArgs) == 0 {
		return i.TypeName
	}
	parts := make([]string, len(i.TypeArgs))
	for idx, a := range i.TypeArgs {
		parts[idx] = a.String()
	}
	return i.TypeName + "<" + strings.Join(parts, ", ") + ">"
}

func (i *InterfaceType) Equals(other Type) bool {
	o, ok := other.(*InterfaceType)
	if !ok || o.QualifiedName() != i.QualifiedName() || len(o.TypeArgs) != len(i.TypeArgs) {
		return false
	}
	for idx := range i.TypeArgs {
		if !typesEqual(i.TypeArgs[idx], o.TypeArgs[idx]) {
			return false
		}
	}
	return true
}

// IsSubtype follows the extends chain (an interface can extend several
// others) and always holds against Object.
func (i *InterfaceType) IsSubtype(other Type) bool {
	if i.Equals(other) {
		return true
	}
	if IsObject(other) {
		return true
	}
	for _, parent := range i.Interfaces {
		if parent.IsSubtype(other) {
			return true
		}
	}
	return false
}

func (i *InterfaceType) Replace(formals []TypeParameter, actuals []Type) Type {
	return i.instantiate(formals, actuals)
}

func (i *InterfaceType) instantiate(formals []TypeParameter, actuals []Type) *InterfaceType {
	key := instantiationKey(formals, actuals)
	if cached, ok := i.instantiations[key]; ok {
		return cached
	}

	changed := false
	newInterfaces := make([]Type, len(i.Interfaces))
	for idx, iface := range i.Interfaces {
		newInterfaces[idx] = iface.Replace(formals, actuals)
		changed = changed || newInterfaces[idx] != i.Interfaces[idx]
	}
	newFields := NewFieldMap()
	for _, name := range i.Fields.Names() {
		f, _ := i.Fields.Get(name)
		newFields.Add(name, ModifiedType{Type: f.Type.Replace(formals, actuals), Modifiers: f.Modifiers})
	}
	newMethods := NewMethodMap()
	for _, m := range i.Methods.All() {
		newMethods.Add(m.Replace(formals, actuals).(*MethodType))
	}
	newInner := make(map[string]Type, len(i.InnerTypes))
	for name, inner := range i.InnerTypes {
		newInner[name] = inner.Replace(formals, actuals)
	}

	if !changed && len(i.TypeArgs) == 0 && !sameParams(formals, i.TypeParams) {
		i.instantiations[key] = i
		return i
	}

	instantiated := &InterfaceType{
		TypeName:       i.TypeName,
		PackageName:    i.PackageName,
		Mods:           i.Mods,
		Outer:          i.Outer,
		Interfaces:     newInterfaces,
		TypeParams:     i.TypeParams,
		TypeArgs:       actualsForArgsIface(i.TypeParams, formals, actuals, i.TypeArgs),
		Fields:         newFields,
		Methods:        newMethods,
		InnerTypes:     newInner,
		instantiations: make(map[string]*InterfaceType),
	}
	i.instantiations[key] = instantiated
	return instantiated
}

func actualsForArgsIface(ifaceParams []TypeParameter, formals []TypeParameter, actuals []Type, existing []Type) []Type {
	if len(existing) > 0 {
		out := make([]Type, len(existing))
		for idx, e := range existing {
			out[idx] = e.Replace(formals, actuals)
		}
		return out
	}
	if len(formals) != len(ifaceParams) {
		return nil
	}
	for idx, f := range formals {
		if f.ParamName != ifaceParams[idx].ParamName {
			return nil
		}
	}
	return actuals
}

func sameParams(a, b []TypeParameter) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx].ParamName != b[idx].ParamName {
			return false
		}
	}
	return true
}

// GetInstantiation binds this generic interface's own TypeParams to
// args, returning the same instance on repeated calls.
func (i *InterfaceType) GetInstantiation(args ...Type) *InterfaceType {
	return i.instantiate(i.TypeParams, args)
}

func (i *InterfaceType) Hash() uint64 {
	h := fnv1a64(0, "interface:"+i.QualifiedName())
	for _, a := range i.TypeArgs {
		h = mixHash(h, a.Hash())
	}
	return h
}

type equalsHasher struct{}

func (equalsHasher) Hash(t Type) uint32 {
	full := t.Hash()
	return uint32(full ^ (full >> 32))
}

func (equalsHasher) Equal(a, b Type) bool {
	return a.Equals(b)
}

// GetAllInterfaces returns the transitive closure of implemented/extended
// interfaces, including self when t is itself an interface.
// Deduplication is by Type.Equals (which considers type arguments) via
// an hset.HSet, not by Go pointer identity, so List<Int>'s and
// List<String>'s interface closures never collide.
func GetAllInterfaces(t declaredMember) []Type {
	set := hset.Empty[Type](equalsHasher{})
	if iface, ok := t.(*InterfaceType); ok {
		set.Add(iface)
	}
	collectInterfaces(t, set)
	var out []Type
	for elem := range set.All() {
		out = append(out, elem)
	}
	return out
}

func collectInterfaces(t declaredMember, set hset.HSet[Type]) {
	for _, super := range t.SuperTypes() {
		switch s := super.(type) {
		case *InterfaceType:
			if !set.Contains(s) {
				set.Add(s)
				collectInterfaces(s, set)
			}
		case *ClassType:
			collectInterfaces(s, set)
		}
	}
}
