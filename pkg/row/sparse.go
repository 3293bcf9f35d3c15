package row

import (
	"encoding/binary"

	"github.com/huynhanx03/go-hybridrow/pkg/encoding"
	"github.com/huynhanx03/go-hybridrow/pkg/layout"
)

// =============================================================================
// Iteration
// =============================================================================

func (b *Buffer) SparseIteratorMoveNext(edit *layout.RowCursor) bool {
	if edit.CellType == layout.EndScope {
		return false
	}

	if edit.CellType != nil {
		if edit.ScopeType.IsIndexedScope() {
			edit.Index++
		}
		// A nested scope may have grown since EndOffset was recorded.
		if edit.EndOffset != 0 && !edit.CellType.IsScope() {
			edit.MetaOffset = edit.EndOffset
		} else {
			edit.MetaOffset += b.sparseComputeSize(edit)
		}
		edit.EndOffset = 0
	}

	if edit.MetaOffset < len(b.data) && (!edit.ScopeType.IsSizedScope() || edit.Index != edit.Count) {
		b.readSparseMetadata(edit)
		if !edit.CellType.IsEndScope() {
			edit.Exists = true
			return true
		}
	}

	edit.CellType = layout.EndScope
	edit.CellTypeArgs = layout.TypeArgumentList{}
	edit.Exists = false
	edit.ValueOffset = edit.MetaOffset
	return false
}

// readSparseMetadata decodes the type and path of the element at edit.MetaOffset.
func (b *Buffer) readSparseMetadata(edit *layout.RowCursor) {
	if edit.ScopeType.HasImplicitTypeCode(edit) {
		edit.ScopeType.SetImplicitTypeCode(edit)
		edit.ValueOffset = edit.MetaOffset
	} else {
		edit.CellType = layout.MustFromCode(b.ReadCode(edit.MetaOffset))
		edit.CellTypeArgs = layout.TypeArgumentList{}
		edit.ValueOffset = edit.MetaOffset + 1
		if edit.CellType.IsEndScope() {
			return
		}
		args, n := edit.CellType.ReadTypeArgumentList(b, edit.ValueOffset)
		edit.CellTypeArgs = args
		edit.ValueOffset += n
	}
	b.readSparsePathMetadata(edit)
}

// readSparsePathMetadata decodes the path that follows the type of an element in a
// non-indexed scope and moves ValueOffset past it. A path is a token id, or the
// token count plus the byte length followed by the bytes.
func (b *Buffer) readSparsePathMetadata(edit *layout.RowCursor) {
	if edit.ScopeType.IsIndexedScope() {
		edit.PathToken, edit.PathOffset = 0, 0
		return
	}

	token, n := b.ReadUvarint(edit.ValueOffset)
	count := uint64(edit.Layout.Tokenizer().Count())
	edit.PathToken = token
	if token < count {
		edit.PathOffset = edit.ValueOffset
		edit.ValueOffset += n
		return
	}
	edit.PathOffset = edit.ValueOffset + n
	edit.ValueOffset += n + int(token-count)
}

func (b *Buffer) ReadSparsePath(edit *layout.RowCursor) string {
	tz := edit.Layout.Tokenizer()
	if count := uint64(tz.Count()); edit.PathToken >= count {
		return string(b.data[edit.PathOffset : edit.PathOffset+int(edit.PathToken-count)])
	}
	path, _ := tz.TryFindString(edit.PathToken)
	return path
}

// sparseComputeSize returns the size of the element at edit, metadata included.
func (b *Buffer) sparseComputeSize(edit *layout.RowCursor) int {
	if !edit.CellType.IsScope() {
		return edit.ValueOffset - edit.MetaOffset + b.valueSize(edit.ValueOffset, edit.CellType)
	}
	child := b.SparseIteratorReadScope(edit, true)
	return b.SkipScope(&child) - edit.MetaOffset
}

// =============================================================================
// Writes
// =============================================================================

// sparsePath encodes the path of the element being written at edit. An existing field
// written without a path keeps its own.
func (b *Buffer) sparsePath(edit *layout.RowCursor) []byte {
	if edit.ScopeType.IsIndexedScope() {
		return nil
	}
	if edit.WritePathToken.Varint != nil {
		return edit.WritePathToken.Varint
	}

	path := edit.WritePath
	if path == "" && edit.Exists {
		path = b.ReadSparsePath(edit)
	}
	tz := edit.Layout.Tokenizer()
	if tok, ok := tz.TryFindToken(path); ok {
		return tok.Varint
	}
	enc := encoding.AppendUvarint(nil, uint64(tz.Count()+len(path)))
	return append(enc, path...)
}

// ensureSparse makes room at edit for an element of t whose value is valueSize bytes,
// replacing the current element if it exists, and writes the element metadata. On
// return edit is positioned on the new element with ValueOffset at its value.
func (b *Buffer) ensureSparse(edit *layout.RowCursor, t *layout.Type, args layout.TypeArgumentList, valueSize int) {
	var sig []byte
	if !edit.ScopeType.HasImplicitTypeCode(edit) {
		sig = encodeSignature(t, args)
	}
	path := b.sparsePath(edit)
	size := len(sig) + len(path) + valueSize

	if edit.Exists {
		old := b.sparseComputeSize(edit)
		b.shift(edit.MetaOffset+old, size-old)
	} else {
		b.shift(edit.MetaOffset, size)
		if edit.ScopeType.IsSizedScope() && !edit.ScopeType.IsFixedArity() {
			b.addCount(edit.Start, 1)
			edit.Count++
		}
	}

	copy(b.data[edit.MetaOffset:], sig)
	copy(b.data[edit.MetaOffset+len(sig):], path)

	edit.CellType = t
	edit.CellTypeArgs = args
	edit.ValueOffset = edit.MetaOffset + len(sig)
	b.readSparsePathMetadata(edit)
	edit.EndOffset = edit.MetaOffset + size
	edit.Exists = true
}

func (b *Buffer) addCount(offset, delta int) {
	n := binary.LittleEndian.Uint32(b.data[offset:])
	binary.LittleEndian.PutUint32(b.data[offset:], uint32(int(n)+delta))
}

func (b *Buffer) ReadSparse(edit *layout.RowCursor) any {
	return b.readValue(edit.ValueOffset, edit.CellType)
}

func (b *Buffer) WriteSparse(edit *layout.RowCursor, t *layout.Type, value any, _ layout.UpdateOptions) {
	// The boolean value is carried by the code.
	if t.IsBool() {
		t = layout.BooleanFalse
		if value.(bool) {
			t = layout.Boolean
		}
	}

	enc := appendValue(nil, t, value)
	b.ensureSparse(edit, t, layout.TypeArgumentList{}, len(enc))
	copy(b.data[edit.ValueOffset:], enc)
}

func (b *Buffer) DeleteSparse(edit *layout.RowCursor) {
	if !edit.Exists {
		return
	}

	size := b.sparseComputeSize(edit)
	b.shift(edit.MetaOffset+size, -size)
	if edit.ScopeType.IsSizedScope() && !edit.ScopeType.IsFixedArity() {
		b.addCount(edit.Start, -1)
		edit.Count--
	}

	edit.Exists = false
	edit.CellType = nil
	edit.CellTypeArgs = layout.TypeArgumentList{}
	edit.ValueOffset = edit.MetaOffset
	edit.EndOffset = 0
}
