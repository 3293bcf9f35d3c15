package layout

import (
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

// ErrBuilderConsumed is returned by every Builder method once Build has run.
var ErrBuilderConsumed = errors.New("layout: builder already built")

// Builder accumulates the columns of one schema. It is single use: Build freezes the
// columns into a Layout and retires the builder.
type Builder struct {
	name     string
	schemaID schema.SchemaID

	bits      BitAllocator
	fixedSize int
	fixed     []*draftColumn
	variable  []*draftColumn
	sparse    []*draftColumn
	scopes    []*draftColumn
	built     bool
}

// NewBuilder starts a layout for the schema name with id.
func NewBuilder(name string, id schema.SchemaID) *Builder {
	return &Builder{name: name, schemaID: id}
}

func (b *Builder) parent() *draftColumn {
	if len(b.scopes) == 0 {
		return nil
	}
	return b.scopes[len(b.scopes)-1]
}

// AddFixedColumn adds a column at the next fixed offset. Null and boolean columns take
// bits but no bytes; utf8 and binary take exactly length bytes.
func (b *Builder) AddFixedColumn(path string, t *Type, nullable bool, length int) error {
	if b.built {
		return ErrBuilderConsumed
	}
	switch {
	case t.IsVarint():
		return compileErrorf("Fixed storage is not supported for %s column '%s'.", t, path)
	case t.IsScope():
		return compileErrorf("Fixed storage is not supported for %s column '%s'.", t, path)
	case t.IsNull() && !nullable:
		return compileErrorf("Non-nullable null columns are not supported.")
	case !t.IsFixed() && length <= 0:
		return compileErrorf("Fixed %s column '%s' requires a length.", t, path)
	}

	var col *draftColumn
	arg := NewTypeArgument(t, TypeArgumentList{})
	switch {
	case t.IsNull():
		col = newDraftColumn(path, arg, schema.Fixed, b.parent(), len(b.fixed), 0, b.bits.Allocate(), InvalidBit, 0)
	case t.IsBool():
		nullBit := InvalidBit
		if nullable {
			nullBit = b.bits.Allocate()
		}
		col = newDraftColumn(path, arg, schema.Fixed, b.parent(), len(b.fixed), 0, nullBit, b.bits.Allocate(), 0)
	default:
		nullBit := InvalidBit
		if nullable {
			nullBit = b.bits.Allocate()
		}
		col = newDraftColumn(path, arg, schema.Fixed, b.parent(), len(b.fixed), b.fixedSize, nullBit, InvalidBit, length)
		b.fixedSize += col.size
	}

	b.fixed = append(b.fixed, col)
	return nil
}

// AddVariableColumn adds a column at the next position of the variable segment.
// Length is the maximum value length in bytes, zero for unbounded.
func (b *Builder) AddVariableColumn(path string, t *Type, length int) error {
	if b.built {
		return ErrBuilderConsumed
	}
	if !t.AllowVariable() || t.IsScope() {
		return compileErrorf("Variable storage is not supported for %s column '%s'.", t, path)
	}

	n := len(b.variable)
	col := newDraftColumn(path, NewTypeArgument(t, TypeArgumentList{}), schema.Variable, b.parent(), n, n, b.bits.Allocate(), InvalidBit, length)
	b.variable = append(b.variable, col)
	return nil
}

// AddSparseColumn adds a sparse primitive column.
func (b *Builder) AddSparseColumn(path string, t *Type) error {
	return b.addSparse(path, NewTypeArgument(t, TypeArgumentList{}))
}

// AddObjectScope adds a sparse object column and makes it the parent of the columns
// added until the matching EndObjectScope.
func (b *Builder) AddObjectScope(path string, t *Type) error {
	if err := b.addSparse(path, NewTypeArgument(t, TypeArgumentList{})); err != nil {
		return err
	}
	b.scopes = append(b.scopes, b.sparse[len(b.sparse)-1])
	return nil
}

// EndObjectScope closes the innermost object scope.
func (b *Builder) EndObjectScope() error {
	if b.built {
		return ErrBuilderConsumed
	}
	if len(b.scopes) == 0 {
		return errors.New("layout: no open object scope")
	}
	b.scopes = b.scopes[:len(b.scopes)-1]
	return nil
}

// AddTypedScope adds a sparse scope column of t with its type arguments.
func (b *Builder) AddTypedScope(path string, t *Type, args TypeArgumentList) error {
	return b.addSparse(path, NewTypeArgument(t, args))
}

func (b *Builder) addSparse(path string, arg TypeArgument) error {
	if b.built {
		return ErrBuilderConsumed
	}
	col := newDraftColumn(path, arg, schema.Sparse, b.parent(), len(b.sparse), -1, InvalidBit, InvalidBit, 0)
	b.sparse = append(b.sparse, col)
	return nil
}

// Build freezes the columns into a Layout. Fixed offsets are moved past the bitmask and
// variable indices continue after the fixed columns.
func (b *Builder) Build() (*Layout, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}
	if len(b.scopes) != 0 {
		return nil, errors.Errorf("layout: object scope %q left open", b.parent().path)
	}
	b.built = true

	numBitmaskBytes := b.bits.NumBytes()
	size := numBitmaskBytes
	for _, col := range b.fixed {
		col.offset += numBitmaskBytes
		size += col.size
	}
	for _, col := range b.variable {
		col.index += len(b.fixed)
	}

	drafts := make([]*draftColumn, 0, len(b.fixed)+len(b.variable)+len(b.sparse))
	drafts = append(drafts, b.fixed...)
	drafts = append(drafts, b.variable...)
	drafts = append(drafts, b.sparse...)

	frozen := make(map[*draftColumn]*Column, len(drafts))
	seen := make(map[string]struct{}, len(drafts))
	columns := make([]*Column, len(drafts))
	for i, d := range drafts {
		col := d.freeze(frozen[d.parent])
		if _, dup := seen[col.fullPath]; dup {
			return nil, compileErrorf("Duplicate column path '%s'.", col.fullPath)
		}
		seen[col.fullPath] = struct{}{}
		frozen[d] = col
		columns[i] = col
	}

	b.fixed, b.variable, b.sparse = nil, nil, nil
	return newLayout(b.name, b.schemaID, numBitmaskBytes, size, columns), nil
}
