package types

// PrimitiveKind enumerates the closed set of primitive types.
type PrimitiveKind uint8

const (
	Boolean PrimitiveKind = iota
	Byte
	UByte
	Short
	UShort
	Int
	UInt
	Code
	Long
	ULong
	Float
	Double
)

var primitiveNames = map[PrimitiveKind]string{
	Boolean: "boolean",
	Byte:    "byte",
	UByte:   "ubyte",
	Short:   "short",
	UShort:  "ushort",
	Int:     "int",
	UInt:    "uint",
	Code:    "code",
	Long:    "long",
	ULong:   "ulong",
	Float:   "float",
	Double:  "double",
}

// PrimitiveType is the enumerated set {boolean, byte, ubyte, short,
// ushort, int, uint, code, long, ulong, float, double}.
// Numeric primitive types are pairwise disjoint under IsSubtype — an
// explicit Cast TAC node is required to convert between them; only
// reflexive equality makes IsSubtype true.
type PrimitiveType struct {
	Kind PrimitiveKind
}

var primitiveSingletons = func() map[PrimitiveKind]*PrimitiveType {
	m := make(map[PrimitiveKind]*PrimitiveType, len(primitiveNames))
	for k := range primitiveNames {
		m[k] = &PrimitiveType{Kind: k}
	}
	return m
}()

// Primitive returns the canonical instance for kind, so that pointer
// identity holds for primitive types the way the instantiation cache
// guarantees it for generics.
func Primitive(kind PrimitiveKind) *PrimitiveType {
	return primitiveSingletons[kind]
}

func (p *PrimitiveType) typeNode()             {}
func (p *PrimitiveType) Name() string          { return primitiveNames[p.Kind] }
func (p *PrimitiveType) QualifiedName() string { return primitiveNames[p.Kind] }
func (p *PrimitiveType) String() string        { return p.Name() }
func (p *PrimitiveType) Modifiers() Modifiers  { return Public | Immutable }

func (p *PrimitiveType) Equals(other Type) bool {
	o, ok := other.(*PrimitiveType)
	return ok && o.Kind == p.Kind
}

// IsSubtype is reflexive-only: primitive-to-primitive subtyping never
// holds implicitly, even between widening pairs like int/long. Numeric
// types are disjoint; converting between them always requires an
// explicit cast.
func (p *PrimitiveType) IsSubtype(other Type) bool {
	return p.Equals(other)
}

func (p *PrimitiveType) Replace([]TypeParameter, []Type) Type { return p }

func (p *PrimitiveType) Hash() uint64 {
	return fnv1a64(0, "primitive:"+p.Name())
}

// IsNumeric reports whether the kind is anything other than boolean or
// code, matching the arithmetic-operand check the TAC builder runs
// before emitting a Binary node for +, -, *, /, etc.
func (p *PrimitiveType) IsNumeric() bool {
	switch p.Kind {
	case Boolean, Code:
		return false
	default:
		return true
	}
}
