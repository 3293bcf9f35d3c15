package row

import (
	"bytes"
	"encoding/binary"
	"slices"

	"github.com/huynhanx03/go-hybridrow/pkg/layout"
)

// uniqueKey returns the ordering key of the element at edit: the type code followed
// by the encoded value, without the length prefix of utf8 and binary values. The key
// of a map element is its key item.
func (b *Buffer) uniqueKey(scopeType *layout.Type, edit *layout.RowCursor) []byte {
	if scopeType.IsTypedMap() {
		tuple := b.SparseIteratorReadScope(edit, true)
		b.SparseIteratorMoveNext(&tuple)
		edit = &tuple
	}

	t := edit.CellType
	start, end := edit.ValueOffset, edit.MetaOffset+b.sparseComputeSize(edit)
	if !t.IsScope() && !t.IsFixed() && !t.IsVarint() {
		_, n := b.ReadUvarint(start)
		start += n
	}

	key := make([]byte, 0, 1+end-start)
	key = append(key, byte(t.Code()))
	return append(key, b.data[start:end]...)
}

// rewind returns a cursor before the first element of a unique scope.
func (b *Buffer) rewind(scope *layout.RowCursor) layout.RowCursor {
	return layout.RowCursor{
		Layout:           scope.Layout,
		ScopeType:        scope.ScopeType,
		ScopeTypeArgs:    scope.ScopeTypeArgs,
		Immutable:        scope.Immutable,
		DeferUniqueIndex: scope.DeferUniqueIndex,
		Start:            scope.Start,
		MetaOffset:       scope.Start + countSize,
		ValueOffset:      scope.Start + countSize,
		Count:            int(binary.LittleEndian.Uint32(b.data[scope.Start:])),
	}
}

func (b *Buffer) PrepareSparseMove(scope, src *layout.RowCursor) layout.RowCursor {
	key := b.uniqueKey(scope.ScopeType, src)

	dst := b.rewind(scope)
	for b.SparseIteratorMoveNext(&dst) {
		switch c := bytes.Compare(b.uniqueKey(scope.ScopeType, &dst), key); {
		case c == 0:
			return dst
		case c > 0:
			dst.Exists = false
			return dst
		}
	}
	return dst
}

func (b *Buffer) TypedCollectionMoveField(dst, src *layout.RowCursor, _ layout.UpdateOptions) {
	end := src.MetaOffset + b.sparseComputeSize(src)
	value := slices.Clone(b.data[src.ValueOffset:end])
	t, args := src.CellType, src.CellTypeArgs

	before, at := len(b.data), src.MetaOffset
	b.DeleteSparse(src)
	if at < dst.MetaOffset {
		shift := len(b.data) - before
		dst.Start += shift
		dst.MetaOffset += shift
		dst.ValueOffset += shift
	}

	b.ensureSparse(dst, t, args, len(value))
	copy(b.data[dst.ValueOffset:], value)
}

func (b *Buffer) TypedCollectionUniqueIndexRebuild(scope *layout.RowCursor) layout.Result {
	type element struct {
		key []byte
		raw []byte
	}

	c := b.rewind(scope)
	var elems []element
	for b.SparseIteratorMoveNext(&c) {
		end := c.MetaOffset + b.sparseComputeSize(&c)
		elems = append(elems, element{
			key: b.uniqueKey(scope.ScopeType, &c),
			raw: slices.Clone(b.data[c.MetaOffset:end]),
		})
	}

	slices.SortStableFunc(elems, func(x, y element) int {
		return bytes.Compare(x.key, y.key)
	})
	for i := 1; i < len(elems); i++ {
		if bytes.Equal(elems[i-1].key, elems[i].key) {
			return layout.Exists
		}
	}

	offset := scope.Start + countSize
	for _, e := range elems {
		offset += copy(b.data[offset:], e.raw)
	}
	return layout.Success
}
