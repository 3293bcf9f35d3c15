package layout

// RowBuffer is the byte-level row storage the type catalog reads and writes through.
// Offsets are absolute positions in the row. Implementations are not safe for
// concurrent use.
type RowBuffer interface {
	SignatureReader
	SignatureWriter

	// Resolver resolves the schemas of nested UDT scopes.
	Resolver() Resolver

	// ReadBit reports whether bit is set in the bitmask starting at offset.
	// InvalidBit always reads as set, and setting or clearing it is a no-op.
	ReadBit(offset int, bit Bit) bool
	SetBit(offset int, bit Bit)
	UnsetBit(offset int, bit Bit)

	// ReadFixed and WriteFixed access a fixed-width value of t. Size is the
	// declared length of fixed utf8 and binary values.
	ReadFixed(offset int, t *Type, size int) any
	WriteFixed(offset int, t *Type, size int, value any)

	// ComputeVariableValueOffset returns the offset of the varIndex-th variable value
	// of a scope with layout l starting at scopeOffset.
	ComputeVariableValueOffset(l *Layout, scopeOffset, varIndex int) int
	ReadVariable(offset int, t *Type) any
	// WriteVariable writes or replaces a variable value and returns the change in row length.
	WriteVariable(offset int, t *Type, value any, exists bool) int
	// DeleteVariable removes a variable value and returns the change in row length.
	DeleteVariable(offset int, t *Type) int

	SparseIteratorMoveNext(edit *RowCursor) bool
	SparseIteratorReadScope(edit *RowCursor, immutable bool) RowCursor
	ReadSparsePath(edit *RowCursor) string
	// SkipScope advances scope past its last element and returns the offset just past the scope.
	SkipScope(scope *RowCursor) int

	ReadSparse(edit *RowCursor) any
	WriteSparse(edit *RowCursor, t *Type, value any, options UpdateOptions)
	WriteSparseScope(edit *RowCursor, t *Type, args TypeArgumentList, options UpdateOptions) RowCursor
	WriteSparseUDT(edit *RowCursor, t *Type, udt *Layout, options UpdateOptions) RowCursor
	WriteNullable(edit *RowCursor, t *Type, args TypeArgumentList, hasValue bool, options UpdateOptions) RowCursor
	NullableHasValue(scope *RowCursor) bool
	DeleteSparse(edit *RowCursor)

	// PrepareSparseMove positions a cursor in the unique scope at the element matching
	// the key of src, or where it would be inserted.
	PrepareSparseMove(scope, src *RowCursor) RowCursor
	TypedCollectionMoveField(dst, src *RowCursor, options UpdateOptions)
	TypedCollectionUniqueIndexRebuild(scope *RowCursor) Result
}
