package layout

// ReadSparse reads the primitive field at edit.
func (t *Type) ReadSparse(b RowBuffer, edit *RowCursor) (any, Result) {
	if t.IsScope() {
		return nil, Failure
	}
	if r := PrepareSparseRead(edit, t.code); r != Success {
		return nil, r
	}
	return b.ReadSparse(edit), Success
}

// WriteSparse writes a primitive value at edit.
func (t *Type) WriteSparse(b RowBuffer, edit *RowCursor, value any, options UpdateOptions) Result {
	if t.IsScope() {
		return Failure
	}
	if !acceptsValue(t, value) {
		return TypeMismatch
	}
	if r := PrepareSparseWrite(edit, NewTypeArgument(t.sparseWriteType(), TypeArgumentList{}), options); r != Success {
		return r
	}

	b.WriteSparse(edit, t, value, options)
	return Success
}

// DeleteSparse removes the primitive field at edit, if present.
func (t *Type) DeleteSparse(b RowBuffer, edit *RowCursor) Result {
	if t.IsScope() {
		return Failure
	}
	if r := PrepareSparseDelete(edit, t.code); r != Success {
		return r
	}
	b.DeleteSparse(edit)
	return Success
}

// sparseWriteType is the type a value is constrained as. Both boolean codes
// constrain as Boolean.
func (t *Type) sparseWriteType() *Type {
	if t == BooleanFalse {
		return Boolean
	}
	return t
}
