package layout

// ReadScope opens the scope at edit for reading. Scopes nested in an immutable or
// unique scope are read as immutable.
func (t *Type) ReadScope(b RowBuffer, edit *RowCursor) (RowCursor, Result) {
	if !t.IsScope() || t.IsEndScope() {
		return RowCursor{}, Failure
	}
	if r := PrepareSparseRead(edit, t.code); r != Success {
		return RowCursor{}, r
	}
	if t.IsUDT() {
		if _, err := b.Resolver().Resolve(edit.CellTypeArgs.SchemaID()); err != nil {
			return RowCursor{}, InvalidRow
		}
	}

	immutable := t.immutable || edit.Immutable || edit.ScopeType.IsUniqueScope()
	return b.SparseIteratorReadScope(edit, immutable), Success
}

// WriteScope creates an empty scope of t at edit and returns a cursor into it.
// Fixed arity scopes are created with every element set to its default.
func (t *Type) WriteScope(b RowBuffer, edit *RowCursor, args TypeArgumentList, options UpdateOptions) (RowCursor, Result) {
	if t.IsNullable() {
		return t.WriteNullableScope(b, edit, args, true, options)
	}
	if !t.IsScope() || t.IsEndScope() {
		return RowCursor{}, Failure
	}
	if r := PrepareSparseWrite(edit, NewTypeArgument(t, args), options); r != Success {
		return RowCursor{}, r
	}

	if t.IsUDT() {
		udt, err := b.Resolver().Resolve(args.SchemaID())
		if err != nil {
			return RowCursor{}, NotFound
		}
		return b.WriteSparseUDT(edit, t, udt, options), Success
	}
	return b.WriteSparseScope(edit, t, args, options), Success
}

// WriteNullableScope creates a nullable scope at edit. Its element is always present
// and starts at its default; hasValue says whether that element is meaningful.
func (t *Type) WriteNullableScope(b RowBuffer, edit *RowCursor, args TypeArgumentList, hasValue bool, options UpdateOptions) (RowCursor, Result) {
	if !t.IsNullable() {
		return RowCursor{}, Failure
	}
	if r := PrepareSparseWrite(edit, NewTypeArgument(t, args), options); r != Success {
		return RowCursor{}, r
	}
	return b.WriteNullable(edit, t, args, hasValue, options), Success
}

// HasValue reports Success if the nullable scope holds a value and NotFound otherwise.
func (t *Type) HasValue(b RowBuffer, scope *RowCursor) Result {
	if !scope.ScopeType.IsNullable() {
		return Failure
	}
	if !b.NullableHasValue(scope) {
		return NotFound
	}
	return Success
}

// DeleteScope removes the scope at edit and everything in it.
func (t *Type) DeleteScope(b RowBuffer, edit *RowCursor) Result {
	if !t.IsScope() || t.IsEndScope() {
		return Failure
	}
	if r := PrepareSparseDelete(edit, t.code); r != Success {
		return r
	}
	b.DeleteSparse(edit)
	return Success
}

// HasImplicitTypeCode reports whether the element at edit, inside a scope of type t,
// omits its type code because the scope's arguments pin it.
func (t *Type) HasImplicitTypeCode(edit *RowCursor) bool {
	switch t.kind() {
	case CodeTypedArrayScope, CodeTypedSetScope:
		return !edit.ScopeTypeArgs.At(0).typ.code.AlwaysRequiresTypeCode()
	case CodeTypedMapScope:
		return true
	case CodeTypedTupleScope, CodeTaggedScope, CodeTagged2Scope, CodeNullableScope:
		if edit.Index < 0 || edit.Index >= edit.ScopeTypeArgs.Len() {
			return false
		}
		return !edit.ScopeTypeArgs.At(edit.Index).typ.code.AlwaysRequiresTypeCode()
	default:
		return false
	}
}

// SetImplicitTypeCode sets the cell type of edit from the scope's arguments. It is only
// valid when HasImplicitTypeCode holds.
func (t *Type) SetImplicitTypeCode(edit *RowCursor) {
	var a TypeArgument
	switch t.kind() {
	case CodeTypedArrayScope, CodeTypedSetScope:
		a = edit.ScopeTypeArgs.At(0)
	case CodeTypedMapScope:
		tuple := TypedTuple
		if t.immutable {
			tuple = ImmutableTypedTuple
		}
		a = NewTypeArgument(tuple, edit.ScopeTypeArgs)
	default:
		a = edit.ScopeTypeArgs.At(edit.Index)
	}
	edit.CellType = a.typ
	edit.CellTypeArgs = a.args
}
