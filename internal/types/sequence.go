package types

import "strings"

// SequenceType is an ordered list of modified types, used for multi-return
// and tuple-like parameter packs. A sequence of size 0 maps to
// void and a sequence of size 1 transparently unwraps to its single
// element everywhere a Type is expected.
type SequenceType struct {
	Elements []ModifiedType
}

// NewSequence builds a SequenceType, unless it can unwrap to a single
// Type, in which case that Type is returned directly — callers that want
// the raw sequence (e.g. the TAC builder assembling a method's formal
// parameter list) should build SequenceType{Elements: ...} themselves.
func NewSequence(elements ...ModifiedType) Type {
	switch len(elements) {
	case 0:
		return Void
	case 1:
		return elements[0].Type
	default:
		return &SequenceType{Elements: elements}
	}
}

// Void is the canonical empty-sequence type.
var Void Type = &SequenceType{}

func (s *SequenceType) typeNode()             {}
func (s *SequenceType) Name() string          { return s.String() }
func (s *SequenceType) QualifiedName() string { return s.String() }
func (s *SequenceType) Modifiers() Modifiers  { return 0 }

func (s *SequenceType) String() string {
	if len(s.Elements) == 0 {
		return "void"
	}
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = e.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (s *SequenceType) Equals(other Type) bool {
	o, ok := other.(*SequenceType)
	if !ok || len(o.Elements) != len(s.Elements) {
		return false
	}
	for i := range s.Elements {
		if !s.Elements[i].Equals(o.Elements[i]) {
			return false
		}
	}
	return true
}

// IsSubtype for sequences is element-wise subtyping with matching arity.
func (s *SequenceType) IsSubtype(other Type) bool {
	o, ok := other.(*SequenceType)
	if !ok {
		if len(s.Elements) == 1 {
			return s.Elements[0].Type.IsSubtype(other)
		}
		return false
	}
	if len(o.Elements) != len(s.Elements) {
		return false
	}
	for i := range s.Elements {
		if !s.Elements[i].Type.IsSubtype(o.Elements[i].Type) {
			return false
		}
	}
	return true
}

func (s *SequenceType) Replace(formals []TypeParameter, actuals []Type) Type {
	newElems := make([]ModifiedType, len(s.Elements))
	for i, e := range s.Elements {
		newElems[i] = ModifiedType{Type: e.Type.Replace(formals, actuals), Modifiers: e.Modifiers}
	}
	return NewSequence(newElems...)
}

func (s *SequenceType) Hash() uint64 {
	h := fnv1a64(0, "sequence")
	for _, e := range s.Elements {
		h = mixHash(h, e.Type.Hash())
	}
	return h
}

// Len is the number of elements without unwrapping.
func (s *SequenceType) Len() int { return len(s.Elements) }
