package row

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/huynhanx03/go-hybridrow/pkg/encoding"
	"github.com/huynhanx03/go-hybridrow/pkg/layout"
	"github.com/huynhanx03/go-hybridrow/pkg/pool"
	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

var (
	// ErrInvalidRow is returned for bytes that do not start with a valid header.
	ErrInvalidRow = errors.New("row: invalid row")

	backing = pool.NewBytes()

	_ layout.RowBuffer = (*Buffer)(nil)
)

// Buffer is a row under construction or being read. The slice length is the row length.
// It is NOT thread-safe.
type Buffer struct {
	data     []byte
	resolver layout.Resolver
	layout   *layout.Layout

	// pooled is set when data came from the backing pool and may be returned to it.
	pooled bool
}

// New creates an empty buffer. InitLayout must be called before use.
func New(capacity int, resolver layout.Resolver) *Buffer {
	if capacity < defaultCapacity {
		capacity = defaultCapacity
	}
	return &Buffer{
		data:     backing.Get(capacity),
		resolver: resolver,
		pooled:   true,
	}
}

// FromBytes wraps an existing row. The layout is resolved from the schema id in the header.
// The buffer takes ownership of data.
func FromBytes(data []byte, resolver layout.Resolver) (*Buffer, error) {
	if len(data) < HeaderSize {
		return nil, errors.Wrapf(ErrInvalidRow, "%d bytes is shorter than the header", len(data))
	}
	h := readHeader(data)
	if h.Version != VersionV1 {
		return nil, errors.Wrapf(ErrInvalidRow, "unsupported version 0x%02x", byte(h.Version))
	}

	l, err := resolver.Resolve(h.SchemaID)
	if err != nil {
		return nil, errors.Wrap(err, "row")
	}
	if len(data) < HeaderSize+l.Size() {
		return nil, errors.Wrapf(ErrInvalidRow, "%d bytes is shorter than layout %q", len(data), l.Name())
	}

	return &Buffer{data: data, resolver: resolver, layout: l}, nil
}

// InitLayout resets the buffer to an empty row of l.
func (b *Buffer) InitLayout(version Version, l *layout.Layout) {
	b.layout = l
	b.data = b.data[:0]
	b.grow(HeaderSize + l.Size())
	b.data = b.data[:HeaderSize+l.Size()]
	clear(b.data)
	Header{Version: version, SchemaID: l.SchemaID()}.put(b.data)
}

// Bytes returns the encoded row. The slice is valid until the next write or Release.
func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) Length() int               { return len(b.data) }
func (b *Buffer) Header() Header            { return readHeader(b.data) }
func (b *Buffer) Layout() *layout.Layout    { return b.layout }
func (b *Buffer) Resolver() layout.Resolver { return b.resolver }

// Root returns a cursor on the root scope of the row.
func (b *Buffer) Root() layout.RowCursor {
	meta := b.ComputeVariableValueOffset(b.layout, HeaderSize, b.layout.NumVariable())
	return layout.RowCursor{
		Layout:        b.layout,
		ScopeType:     layout.UDT,
		ScopeTypeArgs: layout.NewUDTTypeArgumentList(b.layout.SchemaID()),
		Start:         HeaderSize,
		MetaOffset:    meta,
		ValueOffset:   meta,
	}
}

// AppendCursor returns a cursor at the end of the row for staging a field that is then
// moved into a unique scope or used as a Find pattern. Fields written through it belong
// to the root scope until deleted.
func (b *Buffer) AppendCursor() layout.RowCursor {
	return layout.RowCursor{
		Layout:        b.layout,
		ScopeType:     layout.UDT,
		ScopeTypeArgs: layout.NewUDTTypeArgumentList(b.layout.SchemaID()),
		Start:         len(b.data),
		MetaOffset:    len(b.data),
		ValueOffset:   len(b.data),
	}
}

// grow ensures there is room for another n bytes.
func (b *Buffer) grow(n int) {
	need := len(b.data) + n
	if need <= cap(b.data) {
		return
	}

	growBy := cap(b.data) + n
	if growBy > maxGrowth {
		growBy = maxGrowth
	}
	if n > growBy {
		growBy = n
	}

	data := backing.Get(cap(b.data) + growBy)[:len(b.data)]
	copy(data, b.data)
	if b.pooled {
		backing.Put(b.data)
	}
	b.data, b.pooled = data, true
}

// Release returns the buffer's memory for reuse by other buffers. The buffer and any
// slice obtained from Bytes must not be used afterwards.
func (b *Buffer) Release() {
	if b.pooled {
		backing.Put(b.data)
	}
	b.data, b.pooled = nil, false
}

// shift moves the bytes from at to the end of the row by delta, growing or
// shrinking the row.
func (b *Buffer) shift(at, delta int) {
	switch {
	case delta > 0:
		end := len(b.data)
		b.grow(delta)
		b.data = b.data[:end+delta]
		copy(b.data[at+delta:], b.data[at:end])
	case delta < 0:
		copy(b.data[at+delta:], b.data[at:])
		b.data = b.data[:len(b.data)+delta]
	}
}

func (b *Buffer) mustResolve(id schema.SchemaID) *layout.Layout {
	l, err := b.resolver.Resolve(id)
	if err != nil {
		panic(fmt.Sprintf("row: nested schema %d: %v", id, err))
	}
	return l
}

// =============================================================================
// Bits
// =============================================================================

func (b *Buffer) ReadBit(offset int, bit layout.Bit) bool {
	if bit.IsInvalid() {
		return true
	}
	return b.data[bit.Offset(offset)]&bit.Mask() != 0
}

func (b *Buffer) SetBit(offset int, bit layout.Bit) {
	if bit.IsInvalid() {
		return
	}
	b.data[bit.Offset(offset)] |= bit.Mask()
}

func (b *Buffer) UnsetBit(offset int, bit layout.Bit) {
	if bit.IsInvalid() {
		return
	}
	b.data[bit.Offset(offset)] &^= bit.Mask()
}

// =============================================================================
// Signatures
// =============================================================================

func (b *Buffer) ReadCode(offset int) layout.Code {
	return layout.Code(b.data[offset])
}

func (b *Buffer) WriteCode(offset int, c layout.Code) {
	b.data[offset] = byte(c)
}

func (b *Buffer) ReadUvarint(offset int) (uint64, int) {
	return encoding.Uvarint(b.data[offset:])
}

func (b *Buffer) WriteUvarint(offset int, v uint64) int {
	return encoding.PutUvarint(b.data[offset:], v)
}

func (b *Buffer) ReadSchemaID(offset int) schema.SchemaID {
	return schema.SchemaID(binary.LittleEndian.Uint32(b.data[offset:]))
}

func (b *Buffer) WriteSchemaID(offset int, id schema.SchemaID) {
	binary.LittleEndian.PutUint32(b.data[offset:], uint32(id))
}

// signature is a standalone byte slice a signature can be written into.
type signature []byte

func (s signature) WriteCode(offset int, c layout.Code) { s[offset] = byte(c) }

func (s signature) WriteUvarint(offset int, v uint64) int {
	return encoding.PutUvarint(s[offset:], v)
}

func (s signature) WriteSchemaID(offset int, id schema.SchemaID) {
	binary.LittleEndian.PutUint32(s[offset:], uint32(id))
}

func encodeSignature(t *layout.Type, args layout.TypeArgumentList) []byte {
	sig := make(signature, t.CountTypeArgument(args))
	t.WriteTypeArgument(sig, 0, args)
	return sig
}
