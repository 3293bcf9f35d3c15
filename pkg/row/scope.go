package row

import (
	"encoding/binary"

	"github.com/huynhanx03/go-hybridrow/pkg/layout"
)

func (b *Buffer) SparseIteratorReadScope(edit *layout.RowCursor, immutable bool) layout.RowCursor {
	t := edit.CellType
	scope := layout.RowCursor{
		Layout:        edit.Layout,
		ScopeType:     t,
		ScopeTypeArgs: edit.CellTypeArgs,
		Immutable:     immutable,
		Start:         edit.ValueOffset,
		MetaOffset:    edit.ValueOffset,
	}

	switch {
	case t.IsUDT():
		l := b.mustResolve(edit.CellTypeArgs.SchemaID())
		scope.Layout = l
		scope.MetaOffset = b.ComputeVariableValueOffset(l, edit.ValueOffset, l.NumVariable())
	case t.IsNullable():
		scope.MetaOffset++
		scope.Count = 1
	case t.IsFixedArity():
		scope.Count = edit.CellTypeArgs.Len()
	case t.IsSizedScope():
		scope.Count = int(binary.LittleEndian.Uint32(b.data[edit.ValueOffset:]))
		scope.MetaOffset += countSize
	}

	scope.ValueOffset = scope.MetaOffset
	return scope
}

func (b *Buffer) SkipScope(scope *layout.RowCursor) int {
	for b.SparseIteratorMoveNext(scope) {
	}
	if !scope.ScopeType.IsSizedScope() {
		// Past the end marker.
		scope.MetaOffset++
	}
	return scope.MetaOffset
}

func (b *Buffer) WriteSparseScope(edit *layout.RowCursor, t *layout.Type, args layout.TypeArgumentList, _ layout.UpdateOptions) layout.RowCursor {
	body := b.appendDefaultBody(nil, t, args)
	b.ensureSparse(edit, t, args, len(body))
	copy(b.data[edit.ValueOffset:], body)
	return b.openNewScope(edit)
}

func (b *Buffer) WriteSparseUDT(edit *layout.RowCursor, t *layout.Type, udt *layout.Layout, _ layout.UpdateOptions) layout.RowCursor {
	args := layout.NewUDTTypeArgumentList(udt.SchemaID())
	body := make([]byte, udt.Size()+1)
	body[udt.Size()] = byte(layout.CodeEndScope)
	b.ensureSparse(edit, t, args, len(body))
	copy(b.data[edit.ValueOffset:], body)

	return layout.RowCursor{
		Layout:        udt,
		ScopeType:     t,
		ScopeTypeArgs: args,
		Start:         edit.ValueOffset,
		MetaOffset:    edit.ValueOffset + udt.Size(),
		ValueOffset:   edit.ValueOffset + udt.Size(),
	}
}

func (b *Buffer) WriteNullable(edit *layout.RowCursor, t *layout.Type, args layout.TypeArgumentList, hasValue bool, _ layout.UpdateOptions) layout.RowCursor {
	body := b.appendDefaultBody(nil, t, args)
	if hasValue {
		body[0] = 1
	}
	b.ensureSparse(edit, t, args, len(body))
	copy(b.data[edit.ValueOffset:], body)
	return b.openNewScope(edit)
}

func (b *Buffer) NullableHasValue(scope *layout.RowCursor) bool {
	return b.data[scope.Start] != 0
}

// openNewScope returns a cursor into the scope just written at edit. Fixed arity
// scopes come back positioned on their first element so that writes replace the
// defaults.
func (b *Buffer) openNewScope(edit *layout.RowCursor) layout.RowCursor {
	scope := b.SparseIteratorReadScope(edit, false)
	if scope.ScopeType.IsFixedArity() {
		b.SparseIteratorMoveNext(&scope)
	}
	return scope
}

// appendDefaultBody appends the body of a fresh element of t: empty collections,
// and fixed arity scopes filled with default elements.
func (b *Buffer) appendDefaultBody(dst []byte, t *layout.Type, args layout.TypeArgumentList) []byte {
	switch {
	case t.IsUDT():
		l := b.mustResolve(args.SchemaID())
		dst = append(dst, make([]byte, l.Size())...)
		return append(dst, byte(layout.CodeEndScope))

	case t.IsNullable():
		dst = append(dst, 0)
		a := args.At(0)
		return b.appendDefaultElement(dst, a, !a.Type().Code().AlwaysRequiresTypeCode())

	case t.IsFixedArity():
		for _, a := range args.All() {
			implicit := t.IsTypedScope() && !a.Type().Code().AlwaysRequiresTypeCode()
			dst = b.appendDefaultElement(dst, a, implicit)
		}
		if !t.IsSizedScope() {
			dst = append(dst, byte(layout.CodeEndScope))
		}
		return dst

	case t.IsSizedScope():
		return binary.LittleEndian.AppendUint32(dst, 0)

	case t.IsScope():
		return append(dst, byte(layout.CodeEndScope))

	default:
		return appendValue(dst, t, layout.DefaultValue(t))
	}
}

func (b *Buffer) appendDefaultElement(dst []byte, a layout.TypeArgument, implicit bool) []byte {
	t := a.Type()
	if t.IsBool() {
		t = layout.BooleanFalse
	}
	if !implicit {
		dst = append(dst, encodeSignature(t, a.TypeArgs())...)
	}
	return b.appendDefaultBody(dst, t, a.TypeArgs())
}
