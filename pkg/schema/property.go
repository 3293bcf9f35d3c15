package schema

// PropertyType describes the logical type of a property or of a nested item.
type PropertyType interface {
	Type() TypeKind
	IsNullable() bool
}

// ScopePropertyType is a PropertyType whose values contain other values.
type ScopePropertyType interface {
	PropertyType
	IsImmutable() bool
}

// Property is a named field of a schema or nested object.
type Property struct {
	Path         string
	PropertyType PropertyType
}

// PrimitivePropertyType is a leaf type. Length is the declared maximum (variable) or exact
// (fixed utf8/binary) length in bytes; zero means unbounded.
type PrimitivePropertyType struct {
	Kind     TypeKind
	Nullable bool
	Storage  StorageKind
	Length   int
}

func (p *PrimitivePropertyType) Type() TypeKind   { return p.Kind }
func (p *PrimitivePropertyType) IsNullable() bool { return p.Nullable }

// ObjectPropertyType is a nested object with its own properties.
type ObjectPropertyType struct {
	Nullable   bool
	Immutable  bool
	Properties []*Property
}

func (p *ObjectPropertyType) Type() TypeKind    { return Object }
func (p *ObjectPropertyType) IsNullable() bool  { return p.Nullable }
func (p *ObjectPropertyType) IsImmutable() bool { return p.Immutable }

// ArrayPropertyType is an ordered list. Nil Items means elements of any type.
type ArrayPropertyType struct {
	Nullable  bool
	Immutable bool
	Items     PropertyType
}

func (p *ArrayPropertyType) Type() TypeKind    { return Array }
func (p *ArrayPropertyType) IsNullable() bool  { return p.Nullable }
func (p *ArrayPropertyType) IsImmutable() bool { return p.Immutable }

// SetPropertyType is a collection of unique items.
type SetPropertyType struct {
	Nullable  bool
	Immutable bool
	Items     PropertyType
}

func (p *SetPropertyType) Type() TypeKind    { return Set }
func (p *SetPropertyType) IsNullable() bool  { return p.Nullable }
func (p *SetPropertyType) IsImmutable() bool { return p.Immutable }

// MapPropertyType is a collection of unique keys, each with a value.
type MapPropertyType struct {
	Nullable  bool
	Immutable bool
	Keys      PropertyType
	Values    PropertyType
}

func (p *MapPropertyType) Type() TypeKind    { return Map }
func (p *MapPropertyType) IsNullable() bool  { return p.Nullable }
func (p *MapPropertyType) IsImmutable() bool { return p.Immutable }

// TuplePropertyType is a fixed number of positional items.
type TuplePropertyType struct {
	Nullable  bool
	Immutable bool
	Items     []PropertyType
}

func (p *TuplePropertyType) Type() TypeKind    { return Tuple }
func (p *TuplePropertyType) IsNullable() bool  { return p.Nullable }
func (p *TuplePropertyType) IsImmutable() bool { return p.Immutable }

// TaggedPropertyType is a uint8 tag followed by one or two items.
type TaggedPropertyType struct {
	Nullable  bool
	Immutable bool
	Items     []PropertyType
}

func (p *TaggedPropertyType) Type() TypeKind    { return Tagged }
func (p *TaggedPropertyType) IsNullable() bool  { return p.Nullable }
func (p *TaggedPropertyType) IsImmutable() bool { return p.Immutable }

// UdtPropertyType references another schema of the same namespace by name,
// and optionally by id.
type UdtPropertyType struct {
	Nullable  bool
	Immutable bool
	Name      string
	SchemaID  SchemaID
}

func (p *UdtPropertyType) Type() TypeKind    { return UDT }
func (p *UdtPropertyType) IsNullable() bool  { return p.Nullable }
func (p *UdtPropertyType) IsImmutable() bool { return p.Immutable }

// IsAny reports whether t leaves the item type unconstrained.
func IsAny(t PropertyType) bool {
	return t == nil || t.Type() == Any
}
