package layout

type typeFlags uint16

const (
	flagFixed typeFlags = 1 << iota
	flagBool
	flagNull
	flagVarint
	flagScope
	flagSized
	flagFixedArity
	flagUnique
	flagTyped
	flagIndexed
)

// Type is one physical type of the catalog. Instances are immutable singletons and are
// compared by identity.
type Type struct {
	code      Code
	name      string
	immutable bool
	size      int
	flags     typeFlags
}

func (t *Type) Code() Code        { return t.code }
func (t *Type) Name() string      { return t.name }
func (t *Type) String() string    { return t.name }
func (t *Type) Size() int         { return t.size }
func (t *Type) IsImmutable() bool { return t.immutable }

func (t *Type) IsFixed() bool        { return t.flags&flagFixed != 0 }
func (t *Type) IsBool() bool         { return t.flags&flagBool != 0 }
func (t *Type) IsNull() bool         { return t.flags&flagNull != 0 }
func (t *Type) IsVarint() bool       { return t.flags&flagVarint != 0 }
func (t *Type) AllowVariable() bool  { return !t.IsFixed() }
func (t *Type) IsScope() bool        { return t.flags&flagScope != 0 }
func (t *Type) IsSizedScope() bool   { return t.flags&flagSized != 0 }
func (t *Type) IsFixedArity() bool   { return t.flags&flagFixedArity != 0 }
func (t *Type) IsUniqueScope() bool  { return t.flags&flagUnique != 0 }
func (t *Type) IsTypedScope() bool   { return t.flags&flagTyped != 0 }
func (t *Type) IsIndexedScope() bool { return t.flags&flagIndexed != 0 }

// kind is the mutable code, shared by both twins of a scope type.
func (t *Type) kind() Code { return t.code.ClearImmutableBit() }

func (t *Type) IsUDT() bool        { return t.kind() == CodeSchema }
func (t *Type) IsNullable() bool   { return t.kind() == CodeNullableScope }
func (t *Type) IsTypedMap() bool   { return t.kind() == CodeTypedMapScope }
func (t *Type) IsTypedTuple() bool { return t.kind() == CodeTypedTupleScope }
func (t *Type) IsEndScope() bool   { return t.code == CodeEndScope }

// IsTagged reports whether t is a tagged union scope of either arity.
func (t *Type) IsTagged() bool {
	k := t.kind()
	return k == CodeTaggedScope || k == CodeTagged2Scope
}

// Mutable returns the mutable twin of an immutable scope type, or t itself.
func (t *Type) Mutable() *Type {
	if !t.immutable {
		return t
	}
	return catalog[t.kind()]
}

// Immutable returns the immutable twin of a scope type, or t itself.
func (t *Type) Immutable() *Type {
	if !t.IsScope() || t.immutable {
		return t
	}
	return catalog[t.code|immutableBit]
}

func newPrimitive(code Code, name string, size int, flags typeFlags) *Type {
	if size > 0 || flags&(flagBool|flagNull) != 0 {
		flags |= flagFixed
	}
	return &Type{code: code, name: name, size: size, flags: flags}
}

func newScope(code Code, name string, flags typeFlags) (*Type, *Type) {
	flags |= flagScope
	mutable := &Type{code: code, name: name, flags: flags}
	immutable := &Type{code: code | immutableBit, name: "im" + name, immutable: true, flags: flags}
	return mutable, immutable
}

var (
	Null            = newPrimitive(CodeNull, "null", 0, flagNull)
	Boolean         = newPrimitive(CodeBoolean, "bool", 0, flagBool)
	BooleanFalse    = newPrimitive(CodeBooleanFalse, "bool", 0, flagBool)
	Int8            = newPrimitive(CodeInt8, "int8", 1, 0)
	Int16           = newPrimitive(CodeInt16, "int16", 2, 0)
	Int32           = newPrimitive(CodeInt32, "int32", 4, 0)
	Int64           = newPrimitive(CodeInt64, "int64", 8, 0)
	UInt8           = newPrimitive(CodeUInt8, "uint8", 1, 0)
	UInt16          = newPrimitive(CodeUInt16, "uint16", 2, 0)
	UInt32          = newPrimitive(CodeUInt32, "uint32", 4, 0)
	UInt64          = newPrimitive(CodeUInt64, "uint64", 8, 0)
	VarInt          = newPrimitive(CodeVarInt, "varint", 0, flagVarint)
	VarUInt         = newPrimitive(CodeVarUInt, "varuint", 0, flagVarint)
	Float32         = newPrimitive(CodeFloat32, "float32", 4, 0)
	Float64         = newPrimitive(CodeFloat64, "float64", 8, 0)
	Float128        = newPrimitive(CodeFloat128, "float128", 16, 0)
	Decimal         = newPrimitive(CodeDecimal, "decimal", 16, 0)
	DateTime        = newPrimitive(CodeDateTime, "datetime", 8, 0)
	UnixDateTime    = newPrimitive(CodeUnixDateTime, "unixdatetime", 8, 0)
	Guid            = newPrimitive(CodeGuid, "guid", 16, 0)
	MongoDbObjectID = newPrimitive(CodeMongoDbObjectID, "mongodbobjectid", 12, 0)
	Utf8            = newPrimitive(CodeUtf8, "utf8", 0, 0)
	Binary          = newPrimitive(CodeBinary, "binary", 0, 0)

	Object, ImmutableObject         = newScope(CodeObjectScope, "object", 0)
	Array, ImmutableArray           = newScope(CodeArrayScope, "array", flagIndexed)
	TypedArray, ImmutableTypedArray = newScope(CodeTypedArrayScope, "array_t", flagSized|flagTyped|flagIndexed)
	TypedSet, ImmutableTypedSet     = newScope(CodeTypedSetScope, "set_t", flagSized|flagTyped|flagIndexed|flagUnique)
	TypedMap, ImmutableTypedMap     = newScope(CodeTypedMapScope, "map_t", flagSized|flagTyped|flagIndexed|flagUnique)
	Tuple, ImmutableTuple           = newScope(CodeTupleScope, "tuple", flagFixedArity|flagIndexed)
	TypedTuple, ImmutableTypedTuple = newScope(CodeTypedTupleScope, "tuple_t", flagSized|flagFixedArity|flagTyped|flagIndexed)
	Tagged, ImmutableTagged         = newScope(CodeTaggedScope, "tagged_t", flagSized|flagFixedArity|flagTyped|flagIndexed)
	Tagged2, ImmutableTagged2       = newScope(CodeTagged2Scope, "tagged2_t", flagSized|flagFixedArity|flagTyped|flagIndexed)
	Nullable, ImmutableNullable     = newScope(CodeNullableScope, "nullable", flagSized|flagFixedArity|flagTyped|flagIndexed)
	UDT, ImmutableUDT               = newScope(CodeSchema, "udt", 0)

	EndScope = &Type{code: CodeEndScope, name: "end", flags: flagScope}
)

var catalog = func() [256]*Type {
	var table [256]*Type
	for _, t := range []*Type{
		Null, Boolean, BooleanFalse,
		Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64, VarInt, VarUInt,
		Float32, Float64, Float128, Decimal, DateTime, UnixDateTime, Guid, MongoDbObjectID,
		Utf8, Binary,
		Object, ImmutableObject, Array, ImmutableArray, TypedArray, ImmutableTypedArray,
		TypedSet, ImmutableTypedSet, TypedMap, ImmutableTypedMap, Tuple, ImmutableTuple,
		TypedTuple, ImmutableTypedTuple, Tagged, ImmutableTagged, Tagged2, ImmutableTagged2,
		Nullable, ImmutableNullable, UDT, ImmutableUDT, EndScope,
	} {
		table[t.code] = t
	}
	return table
}()

// FromCode returns the catalog type tagged by c.
func FromCode(c Code) (*Type, bool) {
	t := catalog[c]
	return t, t != nil
}

// MustFromCode is FromCode for codes read from a row. An unknown code means the row
// is corrupt and panics.
func MustFromCode(c Code) *Type {
	t := catalog[c]
	if t == nil {
		panic("layout: unknown type code " + c.String())
	}
	return t
}
