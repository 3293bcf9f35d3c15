package layout

import (
	"github.com/huynhanx03/go-hybridrow/pkg/tokenizer"
)

// RowCursor is a position inside one scope of a row. The scope fields describe the
// enclosing scope; the cell fields describe the element at the current position.
type RowCursor struct {
	// Layout is the layout of the nearest enclosing schema scope.
	Layout           *Layout
	ScopeType        *Type
	ScopeTypeArgs    TypeArgumentList
	Immutable        bool
	DeferUniqueIndex bool
	// Start is the first byte of the scope body. Sized scopes keep their element
	// count there.
	Start int

	Exists         bool
	WritePath      string
	WritePathToken tokenizer.Token
	PathOffset     int
	PathToken      uint64
	MetaOffset     int
	CellType       *Type
	CellTypeArgs   TypeArgumentList
	ValueOffset    int
	// EndOffset, when non-zero, is the known end of the current element.
	EndOffset int
	Count     int
	Index     int
}

// Clone returns an independent copy of c.
func (c *RowCursor) Clone() RowCursor {
	return *c
}

// Find advances c to the field named path within a non-indexed scope. If the field
// does not exist c is left at the end of the scope, where a write would append it.
func (c *RowCursor) Find(b RowBuffer, path string) *RowCursor {
	if c.CellType != EndScope {
		for b.SparseIteratorMoveNext(c) {
			if b.ReadSparsePath(c) == path {
				c.Exists = true
				break
			}
		}
	}

	c.WritePath = path
	c.WritePathToken = tokenizer.Token{}
	if c.Layout != nil {
		if tok, ok := c.Layout.Tokenizer().TryFindToken(path); ok {
			c.WritePathToken = tok
		}
	}
	return c
}

// MoveNext advances c to the next element and reports whether one exists.
func (c *RowCursor) MoveNext(b RowBuffer) bool {
	c.WritePath = ""
	c.WritePathToken = tokenizer.Token{}
	return b.SparseIteratorMoveNext(c)
}

// MoveTo positions c on the element at index of an indexed scope. It returns false,
// leaving c at the end of the scope, if the scope has fewer elements. Cursors only
// move forward: an index behind c reports false and leaves c where it is.
func (c *RowCursor) MoveTo(b RowBuffer, index int) bool {
	c.WritePath = ""
	c.WritePathToken = tokenizer.Token{}
	if c.CellType == nil && !b.SparseIteratorMoveNext(c) {
		return false
	}
	if c.Index > index {
		return false
	}
	for c.Index < index {
		if !b.SparseIteratorMoveNext(c) {
			return false
		}
	}
	return c.Exists
}

// Skip moves c past child, a scope opened at c's current element, so that the next
// MoveNext accounts for anything written into child.
func (c *RowCursor) Skip(b RowBuffer, child *RowCursor) {
	c.EndOffset = b.SkipScope(child)
}
