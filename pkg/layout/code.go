package layout

import "fmt"

// Code is the one-byte wire tag of a physical type. Values are stable across versions.
// An immutable scope code is its mutable twin with bit 0 set.
type Code byte

const (
	CodeInvalid         Code = 0
	CodeNull            Code = 1
	CodeBooleanFalse    Code = 2
	CodeBoolean         Code = 3
	CodeInt8            Code = 5
	CodeInt16           Code = 6
	CodeInt32           Code = 7
	CodeInt64           Code = 8
	CodeUInt8           Code = 9
	CodeUInt16          Code = 10
	CodeUInt32          Code = 11
	CodeUInt64          Code = 12
	CodeVarInt          Code = 13
	CodeVarUInt         Code = 14
	CodeFloat32         Code = 15
	CodeFloat64         Code = 16
	CodeDecimal         Code = 17
	CodeDateTime        Code = 18
	CodeGuid            Code = 19
	CodeUtf8            Code = 20
	CodeBinary          Code = 21
	CodeFloat128        Code = 22
	CodeUnixDateTime    Code = 23
	CodeMongoDbObjectID Code = 24

	CodeObjectScope              Code = 30
	CodeImmutableObjectScope     Code = 31
	CodeArrayScope               Code = 32
	CodeImmutableArrayScope      Code = 33
	CodeTypedArrayScope          Code = 34
	CodeImmutableTypedArrayScope Code = 35
	CodeTupleScope               Code = 36
	CodeImmutableTupleScope      Code = 37
	CodeTypedTupleScope          Code = 38
	CodeImmutableTypedTupleScope Code = 39
	CodeMapScope                 Code = 40
	CodeImmutableMapScope        Code = 41
	CodeTypedMapScope            Code = 42
	CodeImmutableTypedMapScope   Code = 43
	CodeSetScope                 Code = 44
	CodeImmutableSetScope        Code = 45
	CodeTypedSetScope            Code = 46
	CodeImmutableTypedSetScope   Code = 47
	CodeNullableScope            Code = 48
	CodeImmutableNullableScope   Code = 49
	CodeTaggedScope              Code = 50
	CodeImmutableTaggedScope     Code = 51
	CodeTagged2Scope             Code = 52
	CodeImmutableTagged2Scope    Code = 53
	CodeSchema                   Code = 68
	CodeImmutableSchema          Code = 69
	CodeEndScope                 Code = 70
)

const immutableBit Code = 1

// IsScope reports whether c tags a nested scope (EndScope excluded).
func (c Code) IsScope() bool {
	return c >= CodeObjectScope && c <= CodeImmutableSchema
}

// IsImmutable reports whether c is the immutable twin of a scope code.
func (c Code) IsImmutable() bool {
	return c.IsScope() && c&immutableBit != 0
}

// ClearImmutableBit maps an immutable scope code to its mutable twin. Other codes are returned as is.
func (c Code) ClearImmutableBit() Code {
	if !c.IsScope() {
		return c
	}
	return c &^ immutableBit
}

// Canonical folds value-carrying variants onto one code for type comparison.
func (c Code) Canonical() Code {
	if c == CodeBooleanFalse {
		return CodeBoolean
	}
	return c
}

// AlwaysRequiresTypeCode reports whether values of c are carried by the code byte itself,
// so the code can never be elided.
func (c Code) AlwaysRequiresTypeCode() bool {
	switch c {
	case CodeNull, CodeBoolean, CodeBooleanFalse:
		return true
	default:
		return false
	}
}

var codeNames = map[Code]string{
	CodeInvalid:                  "Invalid",
	CodeNull:                     "Null",
	CodeBooleanFalse:             "BooleanFalse",
	CodeBoolean:                  "Boolean",
	CodeInt8:                     "Int8",
	CodeInt16:                    "Int16",
	CodeInt32:                    "Int32",
	CodeInt64:                    "Int64",
	CodeUInt8:                    "UInt8",
	CodeUInt16:                   "UInt16",
	CodeUInt32:                   "UInt32",
	CodeUInt64:                   "UInt64",
	CodeVarInt:                   "VarInt",
	CodeVarUInt:                  "VarUInt",
	CodeFloat32:                  "Float32",
	CodeFloat64:                  "Float64",
	CodeDecimal:                  "Decimal",
	CodeDateTime:                 "DateTime",
	CodeGuid:                     "Guid",
	CodeUtf8:                     "Utf8",
	CodeBinary:                   "Binary",
	CodeFloat128:                 "Float128",
	CodeUnixDateTime:             "UnixDateTime",
	CodeMongoDbObjectID:          "MongoDbObjectId",
	CodeObjectScope:              "ObjectScope",
	CodeImmutableObjectScope:     "ImmutableObjectScope",
	CodeArrayScope:               "ArrayScope",
	CodeImmutableArrayScope:      "ImmutableArrayScope",
	CodeTypedArrayScope:          "TypedArrayScope",
	CodeImmutableTypedArrayScope: "ImmutableTypedArrayScope",
	CodeTupleScope:               "TupleScope",
	CodeImmutableTupleScope:      "ImmutableTupleScope",
	CodeTypedTupleScope:          "TypedTupleScope",
	CodeImmutableTypedTupleScope: "ImmutableTypedTupleScope",
	CodeMapScope:                 "MapScope",
	CodeImmutableMapScope:        "ImmutableMapScope",
	CodeTypedMapScope:            "TypedMapScope",
	CodeImmutableTypedMapScope:   "ImmutableTypedMapScope",
	CodeSetScope:                 "SetScope",
	CodeImmutableSetScope:        "ImmutableSetScope",
	CodeTypedSetScope:            "TypedSetScope",
	CodeImmutableTypedSetScope:   "ImmutableTypedSetScope",
	CodeNullableScope:            "NullableScope",
	CodeImmutableNullableScope:   "ImmutableNullableScope",
	CodeTaggedScope:              "TaggedScope",
	CodeImmutableTaggedScope:     "ImmutableTaggedScope",
	CodeTagged2Scope:             "Tagged2Scope",
	CodeImmutableTagged2Scope:    "ImmutableTagged2Scope",
	CodeSchema:                   "Schema",
	CodeImmutableSchema:          "ImmutableSchema",
	CodeEndScope:                 "EndScope",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", byte(c))
}
