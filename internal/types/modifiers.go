package types

// Modifiers is the bitset carried by every Type, field, and method.
type Modifiers uint16

const (
	Public Modifiers = 1 << iota
	Private
	Protected
	Immutable
	Nullable
	Readonly
	Constant
	Get
	Set
	Abstract
	Final
	Static
	Native
	Unused
)

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

func (m Modifiers) With(flag Modifiers) Modifiers { return m | flag }

func (m Modifiers) Without(flag Modifiers) Modifiers { return m &^ flag }

func (m Modifiers) IsPublic() bool    { return m.Has(Public) }
func (m Modifiers) IsPrivate() bool   { return m.Has(Private) }
func (m Modifiers) IsImmutable() bool { return m.Has(Immutable) }
func (m Modifiers) IsNullable() bool  { return m.Has(Nullable) }
func (m Modifiers) IsReadonly() bool  { return m.Has(Readonly) }
func (m Modifiers) IsConstant() bool  { return m.Has(Constant) }
func (m Modifiers) HasGetter() bool   { return m.Has(Get) }
func (m Modifiers) HasSetter() bool   { return m.Has(Set) }
func (m Modifiers) IsUnused() bool    { return m.Has(Unused) }
func (m Modifiers) IsAbstract() bool  { return m.Has(Abstract) }
func (m Modifiers) IsStatic() bool    { return m.Has(Static) }
func (m Modifiers) IsFinal() bool     { return m.Has(Final) }
func (m Modifiers) IsNative() bool    { return m.Has(Native) }

// AssignedAtMostOnce is true for readonly and constant fields. The CFG
// field-initialization analysis does not consult it and does not report
// a second assignment to such a field.
func (m Modifiers) AssignedAtMostOnce() bool {
	return m.IsReadonly() || m.IsConstant()
}

var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{Public, "public"},
	{Private, "private"},
	{Protected, "protected"},
	{Immutable, "immutable"},
	{Nullable, "nullable"},
	{Readonly, "readonly"},
	{Constant, "constant"},
	{Get, "get"},
	{Set, "set"},
	{Abstract, "abstract"},
	{Final, "final"},
	{Static, "static"},
	{Native, "native"},
}

func (m Modifiers) String() string {
	s := ""
	for _, entry := range modifierNames {
		if m.Has(entry.flag) {
			if s != "" {
				s += " "
			}
			s += entry.name
		}
	}
	return s
}

// ModifiedType pairs a Type with the modifiers of its declaration site —
// a field's declared type, a parameter's declared type, and so on all
// carry modifiers independent of the referenced Type's own.
type ModifiedType struct {
	Type      Type
	Modifiers Modifiers
}

func (m ModifiedType) IsNullable() bool { return m.Modifiers.IsNullable() }

func (m ModifiedType) Equals(other ModifiedType) bool {
	return m.Modifiers == other.Modifiers && typesEqual(m.Type, other.Type)
}
