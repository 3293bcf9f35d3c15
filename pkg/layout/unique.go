package layout

// FieldType returns the type of the elements of the unique scope. Map elements are
// (key, value) tuples.
func (t *Type) FieldType(scope *RowCursor) TypeArgument {
	if t.IsTypedMap() {
		tuple := TypedTuple
		if scope.ScopeType.immutable {
			tuple = ImmutableTypedTuple
		}
		return NewTypeArgument(tuple, scope.ScopeTypeArgs)
	}
	return scope.ScopeTypeArgs.At(0)
}

// MoveField moves the field at src into the unique scope, keeping the scope ordered.
// src is deleted whether or not the move succeeds, unless it could not be deleted.
func (t *Type) MoveField(b RowBuffer, scope, src *RowCursor, options UpdateOptions) Result {
	if !t.IsUniqueScope() || scope.ScopeType.Mutable() != t.Mutable() {
		return Failure
	}

	dst, r := PrepareSparseMove(b, scope, t.FieldType(scope), src, options)
	if r != Success {
		return r
	}

	b.TypedCollectionMoveField(&dst, src, options)

	// The scope itself moves if src preceded it in the row.
	if delta := dst.Start - scope.Start; delta != 0 {
		scope.Start += delta
		scope.MetaOffset += delta
		scope.ValueOffset += delta
	}
	scope.Count = dst.Count
	return Success
}

// Find looks for an element equal to pattern in the unique scope and returns a cursor
// at it. The pattern field is always deleted.
func (t *Type) Find(b RowBuffer, scope, pattern *RowCursor) (RowCursor, Result) {
	if !t.IsUniqueScope() || scope.ScopeType.Mutable() != t.Mutable() {
		return RowCursor{}, Failure
	}

	dst, r := PrepareSparseMove(b, scope, t.FieldType(scope), pattern, Update)
	if r != Success {
		return RowCursor{}, r
	}

	before, at := b.Length(), pattern.MetaOffset
	b.DeleteSparse(pattern)
	if at < dst.MetaOffset {
		shift := b.Length() - before
		dst.Start += shift
		dst.MetaOffset += shift
		dst.ValueOffset += shift
	}
	return dst, Success
}

// RebuildUniqueIndex restores the ordering of a unique scope written with
// DeferUniqueIndex. It fails Exists if two elements share a key.
func (t *Type) RebuildUniqueIndex(b RowBuffer, scope *RowCursor) Result {
	if !t.IsUniqueScope() || scope.ScopeType.Mutable() != t.Mutable() {
		return Failure
	}
	return b.TypedCollectionUniqueIndexRebuild(scope)
}
