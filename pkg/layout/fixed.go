package layout

import "github.com/huynhanx03/go-hybridrow/pkg/schema"

// ReadFixed reads the fixed column col of the schema scope.
func (t *Type) ReadFixed(b RowBuffer, scope *RowCursor, col *Column) (any, Result) {
	if r := t.checkColumn(scope, col, schema.Fixed); r != Success {
		return nil, r
	}
	if !b.ReadBit(scope.Start, col.nullBit) {
		return nil, NotFound
	}

	switch {
	case t.IsNull():
		return NullValue{}, Success
	case t.IsBool():
		return b.ReadBit(scope.Start, col.boolBit), Success
	default:
		return b.ReadFixed(scope.Start+col.offset, t, col.size), Success
	}
}

// WriteFixed writes value into the fixed column col of the schema scope.
func (t *Type) WriteFixed(b RowBuffer, scope *RowCursor, col *Column, value any) Result {
	if r := t.checkColumn(scope, col, schema.Fixed); r != Success {
		return r
	}
	if scope.Immutable {
		return InsufficientPermissions
	}
	if !acceptsValue(t, value) {
		return TypeMismatch
	}

	switch {
	case t.IsNull():
	case t.IsBool():
		if value.(bool) {
			b.SetBit(scope.Start, col.boolBit)
		} else {
			b.UnsetBit(scope.Start, col.boolBit)
		}
	default:
		if !t.IsFixed() {
			// Fixed utf8 and binary columns hold exactly the declared length.
			n := valueLen(value)
			if n > col.size {
				return TooBig
			}
			if n < col.size {
				return TypeConstraint
			}
		}
		b.WriteFixed(scope.Start+col.offset, t, col.size, value)
	}

	b.SetBit(scope.Start, col.nullBit)
	return Success
}

// DeleteFixed marks the fixed column col of the schema scope as absent.
func (t *Type) DeleteFixed(b RowBuffer, scope *RowCursor, col *Column) Result {
	if r := t.checkColumn(scope, col, schema.Fixed); r != Success {
		return r
	}
	if scope.Immutable {
		return InsufficientPermissions
	}
	if col.nullBit.IsInvalid() {
		return TypeConstraint
	}

	b.UnsetBit(scope.Start, col.nullBit)
	if t.IsBool() {
		b.UnsetBit(scope.Start, col.boolBit)
	}
	return Success
}

// checkColumn rejects columns that are not addressed through a schema scope. Fixed
// and variable columns only exist in the region that follows a UDT's bitmask.
func (t *Type) checkColumn(scope *RowCursor, col *Column, storage schema.StorageKind) Result {
	if scope.ScopeType == nil || !scope.ScopeType.IsUDT() {
		return Failure
	}
	if col.storage != storage || t.IsScope() {
		return Failure
	}
	if storage == schema.Fixed && t.IsVarint() || storage == schema.Variable && t.IsFixed() {
		return Failure
	}
	if col.Type().code.Canonical() != t.code.Canonical() {
		return TypeMismatch
	}
	return Success
}

func valueLen(value any) int {
	switch v := value.(type) {
	case string:
		return len(v)
	case []byte:
		return len(v)
	default:
		return 0
	}
}
