package layout

import "github.com/huynhanx03/go-hybridrow/pkg/schema"

// ReadVariable reads the variable column col of the schema scope.
func (t *Type) ReadVariable(b RowBuffer, scope *RowCursor, col *Column) (any, Result) {
	if r := t.checkColumn(scope, col, schema.Variable); r != Success {
		return nil, r
	}
	if !b.ReadBit(scope.Start, col.nullBit) {
		return nil, NotFound
	}

	offset := b.ComputeVariableValueOffset(scope.Layout, scope.Start, col.offset)
	return b.ReadVariable(offset, t), Success
}

// WriteVariable writes value into the variable column col of the schema scope. The
// cursor's offsets move with the bytes that follow the value.
func (t *Type) WriteVariable(b RowBuffer, scope *RowCursor, col *Column, value any) Result {
	if r := t.checkColumn(scope, col, schema.Variable); r != Success {
		return r
	}
	if scope.Immutable {
		return InsufficientPermissions
	}
	if !acceptsValue(t, value) {
		return TypeMismatch
	}
	if col.size > 0 && valueLen(value) > col.size {
		return TooBig
	}

	exists := b.ReadBit(scope.Start, col.nullBit)
	offset := b.ComputeVariableValueOffset(scope.Layout, scope.Start, col.offset)
	shift := b.WriteVariable(offset, t, value, exists)
	b.SetBit(scope.Start, col.nullBit)
	scope.MetaOffset += shift
	scope.ValueOffset += shift
	return Success
}

// DeleteVariable removes the variable column col of the schema scope, if present.
func (t *Type) DeleteVariable(b RowBuffer, scope *RowCursor, col *Column) Result {
	if r := t.checkColumn(scope, col, schema.Variable); r != Success {
		return r
	}
	if scope.Immutable {
		return InsufficientPermissions
	}

	if b.ReadBit(scope.Start, col.nullBit) {
		offset := b.ComputeVariableValueOffset(scope.Layout, scope.Start, col.offset)
		shift := b.DeleteVariable(offset, t)
		b.UnsetBit(scope.Start, col.nullBit)
		scope.MetaOffset += shift
		scope.ValueOffset += shift
	}
	return Success
}
