package layout

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NullValue is the only value of the Null type.
type NullValue struct{}

// Float128Value is an IEEE 754 binary128 value stored as two little-endian halves.
type Float128Value struct {
	Low  int64
	High int64
}

// DecimalValue is a 128-bit decimal in its raw 16-byte wire form.
type DecimalValue [16]byte

// UnixDateTimeValue is milliseconds since the Unix epoch.
type UnixDateTimeValue int64

// MinDateTime is the zero tick of the DateTime encoding, and the DateTime default.
var MinDateTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// acceptsValue reports whether v has the Go type that carries values of t.
func acceptsValue(t *Type, v any) bool {
	switch t.code {
	case CodeNull:
		_, ok := v.(NullValue)
		return ok
	case CodeBoolean, CodeBooleanFalse:
		_, ok := v.(bool)
		return ok
	case CodeInt8:
		_, ok := v.(int8)
		return ok
	case CodeInt16:
		_, ok := v.(int16)
		return ok
	case CodeInt32:
		_, ok := v.(int32)
		return ok
	case CodeInt64, CodeVarInt:
		_, ok := v.(int64)
		return ok
	case CodeUInt8:
		_, ok := v.(uint8)
		return ok
	case CodeUInt16:
		_, ok := v.(uint16)
		return ok
	case CodeUInt32:
		_, ok := v.(uint32)
		return ok
	case CodeUInt64, CodeVarUInt:
		_, ok := v.(uint64)
		return ok
	case CodeFloat32:
		_, ok := v.(float32)
		return ok
	case CodeFloat64:
		_, ok := v.(float64)
		return ok
	case CodeFloat128:
		_, ok := v.(Float128Value)
		return ok
	case CodeDecimal:
		_, ok := v.(DecimalValue)
		return ok
	case CodeDateTime:
		_, ok := v.(time.Time)
		return ok
	case CodeUnixDateTime:
		_, ok := v.(UnixDateTimeValue)
		return ok
	case CodeGuid:
		_, ok := v.(uuid.UUID)
		return ok
	case CodeMongoDbObjectID:
		_, ok := v.(primitive.ObjectID)
		return ok
	case CodeUtf8:
		_, ok := v.(string)
		return ok
	case CodeBinary:
		_, ok := v.([]byte)
		return ok
	default:
		return false
	}
}

// DefaultValue returns the value a freshly created element of t holds.
// Scope types have no value and return nil.
func DefaultValue(t *Type) any {
	switch t.code {
	case CodeNull:
		return NullValue{}
	case CodeBoolean, CodeBooleanFalse:
		return false
	case CodeInt8:
		return int8(0)
	case CodeInt16:
		return int16(0)
	case CodeInt32:
		return int32(0)
	case CodeInt64, CodeVarInt:
		return int64(0)
	case CodeUInt8:
		return uint8(0)
	case CodeUInt16:
		return uint16(0)
	case CodeUInt32:
		return uint32(0)
	case CodeUInt64, CodeVarUInt:
		return uint64(0)
	case CodeFloat32:
		return float32(0)
	case CodeFloat64:
		return float64(0)
	case CodeFloat128:
		return Float128Value{}
	case CodeDecimal:
		return DecimalValue{}
	case CodeDateTime:
		return MinDateTime
	case CodeUnixDateTime:
		return UnixDateTimeValue(0)
	case CodeGuid:
		return uuid.Nil
	case CodeMongoDbObjectID:
		return primitive.NilObjectID
	case CodeUtf8:
		return ""
	case CodeBinary:
		return []byte{}
	default:
		return nil
	}
}
