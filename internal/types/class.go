package types

import (
	"strings"

	"github.com/shadow-lang/shadowc/util"
)

// declaredMember is implemented by ClassType and InterfaceType: both carry
// a field map, a method map, and a list of direct supertypes to walk for
// inherited-member lookup and getAllInterfaces.
type declaredMember interface {
	Type
	MethodsMap() *MethodMap
	FieldsMap() *FieldMap
	// SuperTypes are the direct supertypes to search next: for a class,
	// its extend type (if not Object) followed by its directly
	// implemented interfaces; for an interface, its extended interfaces.
	SuperTypes() []Type
	// Params are this type's own generic type parameters.
	Params() []TypeParameter
	// Args are the actual type arguments if this is an instantiation of
	// a generic definition (empty for the generic definition itself).
	Args() []Type
}

// ClassType is a nominal, possibly generic class.
type ClassType struct {
	TypeName    string
	PackageName string
	Mods        Modifiers
	Outer       Type // nil if top-level
	Extend      Type // nil only for Object
	Interfaces  []Type
	TypeParams  []TypeParameter
	// TypeArgs are non-empty only for a cached instantiation of a
	// generic ClassType.
	TypeArgs []Type
	// ReferencedTypes is the closure of all referenced types, computed
	// transitively during module build — populated by the TAC
	// builder once field/method bodies have been walked, not by the
	// type model itself.
	ReferencedTypes []Type
	InnerTypes      map[string]Type
	Fields          *FieldMap
	Methods         *MethodMap

	instantiations map[string]*ClassType
}

// NewClass constructs a class with empty field/method maps ready to be
// populated by the type checker before TAC building starts.
func NewClass(name, pkg string, mods Modifiers) *ClassType {
	return &ClassType{
		TypeName:       name,
		PackageName:    pkg,
		Mods:           mods,
		InnerTypes:     make(map[string]Type),
		Fields:         NewFieldMap(),
		Methods:        NewMethodMap(),
		instantiations: make(map[string]*ClassType),
	}
}

var objectSingleton = NewClass("Object", "shadow:standard", Public)

// Object is the root of the class hierarchy.
func Object() *ClassType { return objectSingleton }

// IsObject reports whether t is the Object class.
func IsObject(t Type) bool {
	c, ok := t.(*ClassType)
	return ok && c == objectSingleton
}

func (c *ClassType) typeNode()             {}
func (c *ClassType) Name() string          { return c.TypeName }
func (c *ClassType) QualifiedName() string { return c.PackageName + "@" + c.TypeName }
func (c *ClassType) Modifiers() Modifiers  { return c.Mods }
func (c *ClassType) MethodsMap() *MethodMap { return c.Methods }
func (c *ClassType) FieldsMap() *FieldMap   { return c.Fields }
func (c *ClassType) Params() []TypeParameter { return c.TypeParams }
func (c *ClassType) Args() []Type            { return c.TypeArgs }

func (c *ClassType) SuperTypes() []Type {
	var supers []Type
	if c.Extend != nil {
		supers = append(supers, c.Extend)
	}
	supers = append(supers, c.Interfaces...)
	return supers
}

func (c *ClassType) String() string {
	if len(c.TypeArgs) == 0 {
		return c.TypeName
	}
	parts := make([]string, len(c.TypeArgs))
	for i, a := range c.TypeArgs {
		parts[i] = a.String()
	}
	return c.TypeName + "<" + strings.Join(parts, ", ") + ">"
}

func (c *ClassType) Equals(other Type) bool {
	o, ok := other.(*ClassType)
	if !ok || o.QualifiedName() != c.QualifiedName() || len(o.TypeArgs) != len(c.TypeArgs) {
		return false
	}
	for i := range c.TypeArgs {
		if !typesEqual(c.TypeArgs[i], o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// IsSubtype follows extends and implements, both transitively. Every
// ClassType is a subtype of Object; Object is a subtype of nothing but
// itself.
func (c *ClassType) IsSubtype(other Type) bool {
	if c.Equals(other) {
		return true
	}
	if IsObject(other) {
		return true
	}
	for _, super := range c.SuperTypes() {
		if super.IsSubtype(other) {
			return true
		}
	}
	return false
}

// Replace substitutes formals throughout: interfaces, extend, inner
// types, field types, method signatures, and type parameters. If none of
// the formals occur free in c, c is returned unchanged
// (pointer identity preserved, matching the instantiation cache's
// identity guarantee for the no-op substitution case).
func (c *ClassType) Replace(formals []TypeParameter, actuals []Type) Type {
	return c.instantiate(formals, actuals)
}

// instantiate is Replace specialized to ClassType, exposed separately so
// GetInstantiation (used by the TAC builder for `new List<Int>()`) can
// call it without an interface-typed round-trip.
func (c *ClassType) instantiate(formals []TypeParameter, actuals []Type) *ClassType {
	key := instantiationKey(formals, actuals)
	if cached, ok := c.instantiations[key]; ok {
		return cached
	}

	changed := false
	newExtend := c.Extend
	if c.Extend != nil {
		newExtend = c.Extend.Replace(formals, actuals)
		changed = changed || newExtend != c.Extend
	}
	newInterfaces := make([]Type, len(c.Interfaces))
	for i, iface := range c.Interfaces {
		newInterfaces[i] = iface.Replace(formals, actuals)
		changed = changed || newInterfaces[i] != c.Interfaces[i]
	}
	newFields := NewFieldMap()
	for _, name := range c.Fields.Names() {
		f, _ := c.Fields.Get(name)
		newFields.Add(name, ModifiedType{Type: f.Type.Replace(formals, actuals), Modifiers: f.Modifiers})
	}
	newMethods := NewMethodMap()
	for _, m := range c.Methods.All() {
		replaced := m.Replace(formals, actuals).(*MethodType)
		newMethods.Add(replaced)
	}
	newInner := make(map[string]Type, len(c.InnerTypes))
	for name, inner := range c.InnerTypes {
		newInner[name] = inner.Replace(formals, actuals)
	}
	newArgs := make([]Type, len(c.TypeArgs))
	for i, a := range c.TypeArgs {
		newArgs[i] = a.Replace(formals, actuals)
	}
	// If nothing at all was substituted and this is not itself the
	// generic definition being asked to bind its own parameters, return
	// c unchanged so identity is preserved: Replace caches by the
	// replacement sequence so identity holds across repeated calls.
	bindsOwnParams := len(c.TypeParams) > 0 && sameParams(formals, c.TypeParams)
	if !changed && len(newArgs) == 0 && !bindsOwnParams {
		c.instantiations[key] = c
		return c
	}

	instantiated := &ClassType{
		TypeName:       c.TypeName,
		PackageName:    c.PackageName,
		Mods:           c.Mods,
		Outer:          c.Outer,
		Extend:         newExtend,
		Interfaces:     newInterfaces,
		TypeParams:     c.TypeParams,
		TypeArgs:       actualsForArgs(c.TypeParams, formals, actuals, c.TypeArgs),
		Fields:         newFields,
		Methods:        newMethods,
		InnerTypes:     newInner,
		instantiations: make(map[string]*ClassType),
	}
	c.instantiations[key] = instantiated
	return instantiated
}

// GetInstantiation binds this generic class's own TypeParams to args,
// e.g. List.GetInstantiation(Int) => List<Int>, returning the same
// instance on repeated calls.
func (c *ClassType) GetInstantiation(args ...Type) *ClassType {
	return c.instantiate(c.TypeParams, args)
}

func (c *ClassType) Hash() uint64 {
	h := fnv1a64(0, "class:"+c.QualifiedName())
	for _, a := range c.TypeArgs {
		h = mixHash(h, a.Hash())
	}
	return h
}

// actualsForArgs computes the TypeArgs to record on an instantiated
// class: if formals/actuals is exactly this class's own TypeParams, the
// actuals become the new TypeArgs; otherwise (a substitution reaching
// this class from an enclosing scope) any existing TypeArgs are
// themselves substituted, which the caller already does before calling
// this — so here we only need the direct-instantiation case.
func actualsForArgs(classParams []TypeParameter, formals []TypeParameter, actuals []Type, existing []Type) []Type {
	if len(existing) > 0 {
		out := make([]Type, len(existing))
		copy(out, existing)
		for i, e := range existing {
			out[i] = e.Replace(formals, actuals)
		}
		return out
	}
	if len(formals) != len(classParams) {
		return nil
	}
	for i, f := range formals {
		if f.ParamName != classParams[i].ParamName {
			return nil
		}
	}
	return actuals
}

func instantiationKey(formals []TypeParameter, actuals []Type) string {
	var sb strings.Builder
	for i, f := range formals {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(f.ParamName)
		sb.WriteByte('=')
		sb.WriteString(actuals[i].String())
	}
	return sb.String()
}

// IsRecursivelyParameterized is true if this type or any base/interface/
// inner contains a free type parameter — i.e. this is a
// generic definition (or reaches one) rather than a fully-concrete
// instantiation.
func (c *ClassType) IsRecursivelyParameterized() bool {
	bound := make(map[string]bool)
	for i, p := range c.TypeParams {
		if i < len(c.TypeArgs) {
			bound[p.ParamName] = true
		}
	}
	if len(c.TypeArgs) == 0 && len(c.TypeParams) > 0 {
		return true
	}
	return referencesFreeParam(c, bound, util.NewEmptySet[string]())
}

func referencesFreeParam(t Type, bound map[string]bool, visiting util.MSet[string]) bool {
	switch v := t.(type) {
	case TypeParameter:
		return v.IsFree(bound)
	case *ArrayType:
		return referencesFreeParam(v.BaseType, bound, visiting)
	case *SequenceType:
		for _, e := range v.Elements {
			if referencesFreeParam(e.Type, bound, visiting) {
				return true
			}
		}
		return false
	case *MethodType:
		return referencesFreeParam(v.Params, bound, visiting) || referencesFreeParam(v.Returns, bound, visiting)
	case *ClassType:
		if visiting.Contains(v.QualifiedName()) {
			return false
		}
		visiting.Add(v.QualifiedName())
		if v.Extend != nil && referencesFreeParam(v.Extend, bound, visiting) {
			return true
		}
		for _, iface := range v.Interfaces {
			if referencesFreeParam(iface, bound, visiting) {
				return true
			}
		}
		for _, name := range v.Fields.Names() {
			f, _ := v.Fields.Get(name)
			if referencesFreeParam(f.Type, bound, visiting) {
				return true
			}
		}
		for _, m := range v.Methods.All() {
			if referencesFreeParam(m, bound, visiting) {
				return true
			}
		}
		for _, inner := range v.InnerTypes {
			if referencesFreeParam(inner, bound, visiting) {
				return true
			}
		}
		return false
	case *InterfaceType:
		if visiting.Contains(v.QualifiedName()) {
			return false
		}
		visiting.Add(v.QualifiedName())
		for _, iface := range v.Interfaces {
			if referencesFreeParam(iface, bound, visiting) {
				return true
			}
		}
		for _, name := range v.Fields.Names() {
			f, _ := v.Fields.Get(name)
			if referencesFreeParam(f.Type, bound, visiting) {
				return true
			}
		}
		for _, m := range v.Methods.All() {
			if referencesFreeParam(m, bound, visiting) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
