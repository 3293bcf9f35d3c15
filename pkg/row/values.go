package row

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huynhanx03/go-hybridrow/pkg/encoding"
	"github.com/huynhanx03/go-hybridrow/pkg/layout"
)

func timeToTicks(t time.Time) int64 {
	return t.Unix()*ticksPerSecond + int64(t.Nanosecond())/100 + unixEpochTicks
}

func ticksToTime(ticks int64) time.Time {
	d := ticks - unixEpochTicks
	sec, rem := d/ticksPerSecond, d%ticksPerSecond
	if rem < 0 {
		rem += ticksPerSecond
		sec--
	}
	return time.Unix(sec, rem*100).UTC()
}

// appendFixed appends the fixed-width encoding of v. Size is the exact length of
// fixed utf8 and binary values.
func appendFixed(dst []byte, t *layout.Type, v any) []byte {
	le := binary.LittleEndian
	switch t.Code() {
	case layout.CodeInt8:
		return append(dst, byte(v.(int8)))
	case layout.CodeInt16:
		return le.AppendUint16(dst, uint16(v.(int16)))
	case layout.CodeInt32:
		return le.AppendUint32(dst, uint32(v.(int32)))
	case layout.CodeInt64:
		return le.AppendUint64(dst, uint64(v.(int64)))
	case layout.CodeUInt8:
		return append(dst, v.(uint8))
	case layout.CodeUInt16:
		return le.AppendUint16(dst, v.(uint16))
	case layout.CodeUInt32:
		return le.AppendUint32(dst, v.(uint32))
	case layout.CodeUInt64:
		return le.AppendUint64(dst, v.(uint64))
	case layout.CodeFloat32:
		return le.AppendUint32(dst, math.Float32bits(v.(float32)))
	case layout.CodeFloat64:
		return le.AppendUint64(dst, math.Float64bits(v.(float64)))
	case layout.CodeFloat128:
		f := v.(layout.Float128Value)
		dst = le.AppendUint64(dst, uint64(f.Low))
		return le.AppendUint64(dst, uint64(f.High))
	case layout.CodeDecimal:
		d := v.(layout.DecimalValue)
		return append(dst, d[:]...)
	case layout.CodeDateTime:
		return le.AppendUint64(dst, uint64(timeToTicks(v.(time.Time))))
	case layout.CodeUnixDateTime:
		return le.AppendUint64(dst, uint64(v.(layout.UnixDateTimeValue)))
	case layout.CodeGuid:
		g := v.(uuid.UUID)
		return append(dst, g[:]...)
	case layout.CodeMongoDbObjectID:
		id := v.(primitive.ObjectID)
		return append(dst, id[:]...)
	case layout.CodeUtf8:
		return append(dst, v.(string)...)
	case layout.CodeBinary:
		return append(dst, v.([]byte)...)
	default:
		return dst
	}
}

func (b *Buffer) readFixedValue(offset int, t *layout.Type, size int) any {
	le := binary.LittleEndian
	src := b.data[offset:]
	switch t.Code() {
	case layout.CodeInt8:
		return int8(src[0])
	case layout.CodeInt16:
		return int16(le.Uint16(src))
	case layout.CodeInt32:
		return int32(le.Uint32(src))
	case layout.CodeInt64:
		return int64(le.Uint64(src))
	case layout.CodeUInt8:
		return src[0]
	case layout.CodeUInt16:
		return le.Uint16(src)
	case layout.CodeUInt32:
		return le.Uint32(src)
	case layout.CodeUInt64:
		return le.Uint64(src)
	case layout.CodeFloat32:
		return math.Float32frombits(le.Uint32(src))
	case layout.CodeFloat64:
		return math.Float64frombits(le.Uint64(src))
	case layout.CodeFloat128:
		return layout.Float128Value{Low: int64(le.Uint64(src)), High: int64(le.Uint64(src[8:]))}
	case layout.CodeDecimal:
		var d layout.DecimalValue
		copy(d[:], src)
		return d
	case layout.CodeDateTime:
		return ticksToTime(int64(le.Uint64(src)))
	case layout.CodeUnixDateTime:
		return layout.UnixDateTimeValue(le.Uint64(src))
	case layout.CodeGuid:
		var g uuid.UUID
		copy(g[:], src)
		return g
	case layout.CodeMongoDbObjectID:
		var id primitive.ObjectID
		copy(id[:], src)
		return id
	case layout.CodeUtf8:
		return string(src[:size])
	case layout.CodeBinary:
		return append([]byte(nil), src[:size]...)
	default:
		return nil
	}
}

// appendVariable appends the length-prefixed or varint encoding of v.
func appendVariable(dst []byte, t *layout.Type, v any) []byte {
	switch t.Code() {
	case layout.CodeUtf8:
		s := v.(string)
		dst = encoding.AppendUvarint(dst, uint64(len(s)))
		return append(dst, s...)
	case layout.CodeBinary:
		p := v.([]byte)
		dst = encoding.AppendUvarint(dst, uint64(len(p)))
		return append(dst, p...)
	case layout.CodeVarInt:
		var tmp [encoding.MaxVarintLen]byte
		n := encoding.PutVarint(tmp[:], v.(int64))
		return append(dst, tmp[:n]...)
	case layout.CodeVarUInt:
		return encoding.AppendUvarint(dst, v.(uint64))
	default:
		return dst
	}
}

func (b *Buffer) readVariableValue(offset int, t *layout.Type) any {
	switch t.Code() {
	case layout.CodeUtf8:
		n, m := encoding.Uvarint(b.data[offset:])
		return string(b.data[offset+m : offset+m+int(n)])
	case layout.CodeBinary:
		n, m := encoding.Uvarint(b.data[offset:])
		return append([]byte(nil), b.data[offset+m:offset+m+int(n)]...)
	case layout.CodeVarInt:
		v, _ := encoding.Varint(b.data[offset:])
		return v
	case layout.CodeVarUInt:
		v, _ := encoding.Uvarint(b.data[offset:])
		return v
	default:
		return nil
	}
}

// variableSize returns the encoded size of the variable value of t at offset.
func (b *Buffer) variableSize(offset int, t *layout.Type) int {
	n, m := encoding.Uvarint(b.data[offset:])
	if t.IsVarint() {
		return m
	}
	return m + int(n)
}

// valueSize returns the encoded size of the sparse primitive value of t at offset.
func (b *Buffer) valueSize(offset int, t *layout.Type) int {
	switch {
	case t.IsNull(), t.IsBool():
		return 0
	case t.IsFixed():
		return t.Size()
	default:
		return b.variableSize(offset, t)
	}
}

// appendValue appends the sparse encoding of a primitive value. Booleans and nulls
// live in the type code and take no bytes.
func appendValue(dst []byte, t *layout.Type, v any) []byte {
	switch {
	case t.IsNull(), t.IsBool():
		return dst
	case t.IsFixed():
		return appendFixed(dst, t, v)
	default:
		return appendVariable(dst, t, v)
	}
}

func (b *Buffer) readValue(offset int, t *layout.Type) any {
	switch {
	case t.IsNull():
		return layout.NullValue{}
	case t.IsBool():
		return t.Code() == layout.CodeBoolean
	case t.IsFixed():
		return b.readFixedValue(offset, t, t.Size())
	default:
		return b.readVariableValue(offset, t)
	}
}

// =============================================================================
// Fixed and variable segments
// =============================================================================

func (b *Buffer) ReadFixed(offset int, t *layout.Type, size int) any {
	return b.readFixedValue(offset, t, size)
}

func (b *Buffer) WriteFixed(offset int, t *layout.Type, size int, value any) {
	enc := appendFixed(make([]byte, 0, size), t, value)
	copy(b.data[offset:offset+size], enc)
}

func (b *Buffer) ComputeVariableValueOffset(l *layout.Layout, scopeOffset, varIndex int) int {
	if l == nil {
		return scopeOffset
	}

	offset := scopeOffset + l.Size()
	for i := l.NumFixed(); i < l.NumFixed()+varIndex; i++ {
		col := l.ColumnAt(i)
		if b.ReadBit(scopeOffset, col.NullBit()) {
			offset += b.variableSize(offset, col.Type())
		}
	}
	return offset
}

func (b *Buffer) ReadVariable(offset int, t *layout.Type) any {
	return b.readVariableValue(offset, t)
}

func (b *Buffer) WriteVariable(offset int, t *layout.Type, value any, exists bool) int {
	enc := appendVariable(nil, t, value)
	old := 0
	if exists {
		old = b.variableSize(offset, t)
	}

	delta := len(enc) - old
	b.shift(offset+old, delta)
	copy(b.data[offset:], enc)
	return delta
}

func (b *Buffer) DeleteVariable(offset int, t *layout.Type) int {
	old := b.variableSize(offset, t)
	b.shift(offset+old, -old)
	return -old
}
