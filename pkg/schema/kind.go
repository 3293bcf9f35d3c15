package schema

import (
	"github.com/pkg/errors"
)

// SchemaID identifies a schema within a namespace. It is encoded as 4 little-endian bytes.
type SchemaID int32

const (
	// InvalidSchemaID is never assigned to a schema.
	InvalidSchemaID SchemaID = 0

	// SchemaIDSize is the wire width of a SchemaID.
	SchemaIDSize = 4
)

// TypeKind is the logical type of a property.
type TypeKind int

const (
	Invalid TypeKind = iota
	Null
	Boolean
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	VarInt
	VarUInt
	Float32
	Float64
	Float128
	Decimal
	DateTime
	UnixDateTime
	Guid
	MongoDbObjectID
	Utf8
	Binary
	Object
	Array
	Set
	Map
	Tuple
	Tagged
	// UDT is a reference to another schema, spelled "schema" in documents.
	UDT
	Any
)

var typeKindNames = map[TypeKind]string{
	Null:            "null",
	Boolean:         "bool",
	Int8:            "int8",
	Int16:           "int16",
	Int32:           "int32",
	Int64:           "int64",
	UInt8:           "uint8",
	UInt16:          "uint16",
	UInt32:          "uint32",
	UInt64:          "uint64",
	VarInt:          "varint",
	VarUInt:         "varuint",
	Float32:         "float32",
	Float64:         "float64",
	Float128:        "float128",
	Decimal:         "decimal",
	DateTime:        "datetime",
	UnixDateTime:    "unixdatetime",
	Guid:            "guid",
	MongoDbObjectID: "mongodbobjectid",
	Utf8:            "utf8",
	Binary:          "binary",
	Object:          "object",
	Array:           "array",
	Set:             "set",
	Map:             "map",
	Tuple:           "tuple",
	Tagged:          "tagged",
	UDT:             "schema",
	Any:             "any",
}

var typeKindByName = func() map[string]TypeKind {
	m := make(map[string]TypeKind, len(typeKindNames))
	for k, name := range typeKindNames {
		m[name] = k
	}
	return m
}()

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsScope reports whether values of this kind nest other values.
func (k TypeKind) IsScope() bool {
	switch k {
	case Object, Array, Set, Map, Tuple, Tagged, UDT:
		return true
	default:
		return false
	}
}

func (k TypeKind) MarshalText() ([]byte, error) {
	name, ok := typeKindNames[k]
	if !ok {
		return nil, errors.Errorf("unknown type kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *TypeKind) UnmarshalText(text []byte) error {
	v, ok := typeKindByName[string(text)]
	if !ok {
		return errors.Errorf("unknown type kind %q", text)
	}
	*k = v
	return nil
}

// StorageKind says where a primitive property lives inside a row.
type StorageKind int

const (
	// Sparse properties are self-describing fields in the sparse segment.
	Sparse StorageKind = iota
	// Fixed properties have a reserved offset after the presence bitmask.
	Fixed
	// Variable properties are length-prefixed in the variable segment.
	Variable
)

func (s StorageKind) String() string {
	switch s {
	case Sparse:
		return "sparse"
	case Fixed:
		return "fixed"
	case Variable:
		return "variable"
	default:
		return "unknown"
	}
}

func (s StorageKind) MarshalText() ([]byte, error) {
	switch s {
	case Sparse, Fixed, Variable:
		return []byte(s.String()), nil
	default:
		return nil, errors.Errorf("unknown storage kind %d", int(s))
	}
}

func (s *StorageKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "sparse", "":
		*s = Sparse
	case "fixed":
		*s = Fixed
	case "variable":
		*s = Variable
	default:
		return errors.Errorf("unknown storage kind %q", text)
	}
	return nil
}
