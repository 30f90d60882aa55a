package types

import "strings"

// TypeParameter is a named generic parameter with bounds. Two
// TypeParameters are Equals only by name+bounds identity; substitution
// (Replace) looks parameters up by name, not by pointer, since the same
// formal parameter is shared across a class's fields, methods, and
// extends/implements clauses.
type TypeParameter struct {
	ParamName string
	Bounds    []Type
}

func (t TypeParameter) typeNode()             {}
func (t TypeParameter) Name() string          { return t.ParamName }
func (t TypeParameter) QualifiedName() string { return t.ParamName }
func (t TypeParameter) Modifiers() Modifiers  { return 0 }

func (t TypeParameter) String() string {
	if len(t.Bounds) == 0 {
		return t.ParamName
	}
	names := make([]string, len(t.Bounds))
	for i, b := range t.Bounds {
		names[i] = b.String()
	}
	return t.ParamName + " is " + strings.Join(names, " and ")
}

func (t TypeParameter) Equals(other Type) bool {
	o, ok := other.(TypeParameter)
	if !ok || o.ParamName != t.ParamName || len(o.Bounds) != len(t.Bounds) {
		return false
	}
	for i := range t.Bounds {
		if !typesEqual(t.Bounds[i], o.Bounds[i]) {
			return false
		}
	}
	return true
}

// IsSubtype holds when other is one of the type parameter's bounds (or a
// supertype of one), or when other is this same parameter, or Object.
func (t TypeParameter) IsSubtype(other Type) bool {
	if t.Equals(other) {
		return true
	}
	if IsObject(other) {
		return true
	}
	for _, bound := range t.Bounds {
		if bound.IsSubtype(other) {
			return true
		}
	}
	return false
}

// Replace substitutes this parameter itself if it matches one of the
// formals, otherwise substitutes recursively inside its bounds.
func (t TypeParameter) Replace(formals []TypeParameter, actuals []Type) Type {
	for i, formal := range formals {
		if formal.ParamName == t.ParamName {
			return actuals[i]
		}
	}
	newBounds := make([]Type, len(t.Bounds))
	changed := false
	for i, bound := range t.Bounds {
		newBounds[i] = bound.Replace(formals, actuals)
		changed = changed || newBounds[i] != bound
	}
	if !changed {
		return t
	}
	return TypeParameter{ParamName: t.ParamName, Bounds: newBounds}
}

func (t TypeParameter) Hash() uint64 {
	h := fnv1a64(0, "typeparam:"+t.ParamName)
	for _, b := range t.Bounds {
		h = mixHash(h, b.Hash())
	}
	return h
}

// IsFree reports whether name appears among a set of already-bound
// parameter names — used by IsRecursivelyParameterized.
func (t TypeParameter) IsFree(bound map[string]bool) bool {
	return !bound[t.ParamName]
}
