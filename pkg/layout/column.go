package layout

import (
	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

// Column is one compiled field of a layout. Columns are immutable.
type Column struct {
	path     string
	fullPath string
	typeArg  TypeArgument
	storage  schema.StorageKind
	parent   *Column
	index    int
	offset   int
	nullBit  Bit
	boolBit  Bit
	size     int
}

// Path is the path relative to the parent column.
func (c *Column) Path() string { return c.path }

// FullPath is the path from the schema root, with "." after objects and "[]" after collections.
func (c *Column) FullPath() string { return c.fullPath }

func (c *Column) Type() *Type                 { return c.typeArg.typ }
func (c *Column) TypeArgs() TypeArgumentList  { return c.typeArg.args }
func (c *Column) TypeArg() TypeArgument       { return c.typeArg }
func (c *Column) Storage() schema.StorageKind { return c.storage }
func (c *Column) Parent() *Column             { return c.parent }

// Index is the position among columns of the same storage. Variable indices continue
// after the fixed columns.
func (c *Column) Index() int { return c.index }

// Offset is the byte offset of a fixed column within its scope, or the ordinal of a
// variable column within the variable segment. Sparse columns have none.
func (c *Column) Offset() int { return c.offset }

func (c *Column) NullBit() Bit    { return c.nullBit }
func (c *Column) BooleanBit() Bit { return c.boolBit }

// Size is the fixed width, or the declared maximum length of a variable column.
func (c *Column) Size() int { return c.size }

// draftColumn is a column under construction. Build freezes it into a Column.
type draftColumn struct {
	path    string
	typeArg TypeArgument
	storage schema.StorageKind
	parent  *draftColumn
	index   int
	offset  int
	nullBit Bit
	boolBit Bit
	size    int
}

func newDraftColumn(path string, typeArg TypeArgument, storage schema.StorageKind, parent *draftColumn, index, offset int, nullBit, boolBit Bit, length int) *draftColumn {
	size := length
	if typeArg.typ.IsFixed() {
		size = typeArg.typ.Size()
	}
	return &draftColumn{
		path:    path,
		typeArg: typeArg,
		storage: storage,
		parent:  parent,
		index:   index,
		offset:  offset,
		nullBit: nullBit,
		boolBit: boolBit,
		size:    size,
	}
}

func (d *draftColumn) freeze(parent *Column) *Column {
	return &Column{
		path:     d.path,
		fullPath: fullPath(parent, d.path),
		typeArg:  d.typeArg,
		storage:  d.storage,
		parent:   parent,
		index:    d.index,
		offset:   d.offset,
		nullBit:  d.nullBit,
		boolBit:  d.boolBit,
		size:     d.size,
	}
}

func fullPath(parent *Column, path string) string {
	if parent == nil {
		return path
	}
	switch parent.Type().kind() {
	case CodeArrayScope, CodeTypedArrayScope, CodeTypedSetScope, CodeTypedMapScope:
		return parent.fullPath + "[]" + path
	default:
		return parent.fullPath + "." + path
	}
}
