package layout

// PrepareSparseRead checks that edit points at an existing field of code.
func PrepareSparseRead(edit *RowCursor, code Code) Result {
	if !edit.Exists {
		return NotFound
	}
	if edit.CellType.code.Canonical() != code.Canonical() {
		return TypeMismatch
	}
	return Success
}

// PrepareSparseWrite checks that a value of typeArg may be written at edit under options.
// InsertAt clears edit.Exists so the write never overwrites.
func PrepareSparseWrite(edit *RowCursor, typeArg TypeArgument, options UpdateOptions) Result {
	scope := edit.ScopeType
	if edit.Immutable || (scope.IsUniqueScope() && !edit.DeferUniqueIndex) {
		return InsufficientPermissions
	}

	switch {
	case scope.IsFixedArity() && !scope.IsNullable():
		if edit.Index >= edit.ScopeTypeArgs.Len() {
			return TypeConstraint
		}
		if !typeArg.Equal(edit.ScopeTypeArgs.At(edit.Index)) {
			return TypeConstraint
		}
	case scope.IsTypedMap():
		if !typeArg.typ.IsTypedTuple() || !typeArg.args.Equal(edit.ScopeTypeArgs) {
			return TypeConstraint
		}
	case scope.IsTypedScope():
		if !typeArg.Equal(edit.ScopeTypeArgs.At(0)) {
			return TypeConstraint
		}
	}

	if options == InsertAt {
		if scope.IsFixedArity() {
			return TypeConstraint
		}
		edit.Exists = false
	}
	if options == Update && !edit.Exists {
		return NotFound
	}
	if options == Insert && edit.Exists {
		return Exists
	}
	return Success
}

// PrepareSparseDelete checks that the field at edit, if any, may be deleted as code.
func PrepareSparseDelete(edit *RowCursor, code Code) Result {
	if edit.ScopeType.IsFixedArity() {
		return TypeConstraint
	}
	if edit.Immutable {
		return InsufficientPermissions
	}
	if edit.Exists && edit.CellType.code.Canonical() != code.Canonical() {
		return TypeMismatch
	}
	return Success
}

// PrepareSparseMove checks that src may be moved into the unique scope as elementType
// and returns the destination cursor. Once src is known to be deletable it is consumed:
// every later failure deletes src before returning.
func PrepareSparseMove(b RowBuffer, scope *RowCursor, elementType TypeArgument, src *RowCursor, options UpdateOptions) (RowCursor, Result) {
	if r := PrepareSparseDelete(src, elementType.typ.code); r != Success {
		return RowCursor{}, r
	}
	if !src.Exists {
		return RowCursor{}, NotFound
	}

	fail := func(r Result) (RowCursor, Result) {
		b.DeleteSparse(src)
		return RowCursor{}, r
	}
	if scope.Immutable {
		return fail(InsufficientPermissions)
	}
	if !src.CellTypeArgs.Equal(elementType.args) {
		return fail(TypeConstraint)
	}
	if options == InsertAt {
		return fail(TypeConstraint)
	}

	dst := b.PrepareSparseMove(scope, src)
	if options == Update && !dst.Exists {
		return fail(NotFound)
	}
	if options == Insert && dst.Exists {
		return fail(Exists)
	}
	return dst, Success
}
