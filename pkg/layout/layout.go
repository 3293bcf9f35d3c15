package layout

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/huynhanx03/go-hybridrow/pkg/schema"
	"github.com/huynhanx03/go-hybridrow/pkg/tokenizer"
)

// Layout is the compiled physical layout of one schema. It is immutable and safe for
// concurrent use.
type Layout struct {
	name            string
	schemaID        schema.SchemaID
	numBitmaskBytes int
	numFixed        int
	numVariable     int
	size            int
	columns         []*Column
	top             []*Column
	byPath          map[string]*Column
	byUTF16         map[string]*Column
	tokenizer       *tokenizer.StringTokenizer
}

func newLayout(name string, id schema.SchemaID, numBitmaskBytes, size int, columns []*Column) *Layout {
	l := &Layout{
		name:            name,
		schemaID:        id,
		numBitmaskBytes: numBitmaskBytes,
		size:            size,
		columns:         columns,
		byPath:          make(map[string]*Column, len(columns)),
		byUTF16:         make(map[string]*Column, len(columns)),
		tokenizer:       tokenizer.New(),
	}

	for _, col := range columns {
		l.tokenizer.Add(col.path)
		l.byPath[col.fullPath] = col
		l.byUTF16[tokenizer.UTF16Key(utf16.Encode([]rune(col.fullPath)))] = col

		if col.parent == nil {
			l.top = append(l.top, col)
		}
		switch col.storage {
		case schema.Fixed:
			l.numFixed++
		case schema.Variable:
			l.numVariable++
		}
	}
	return l
}

func (l *Layout) Name() string              { return l.name }
func (l *Layout) SchemaID() schema.SchemaID { return l.schemaID }

// NumBitmaskBytes is the size of the presence bitmask at the start of the scope.
func (l *Layout) NumBitmaskBytes() int { return l.numBitmaskBytes }
func (l *Layout) NumFixed() int        { return l.numFixed }
func (l *Layout) NumVariable() int     { return l.numVariable }

// Size is the minimum scope size: the bitmask and fixed values, with no variable or
// sparse fields.
func (l *Layout) Size() int { return l.size }

// Columns returns a copy of the top-level columns: fixed, then variable, then sparse.
func (l *Layout) Columns() []*Column { return slices.Clone(l.top) }

// ColumnAt returns the i-th top-level column, in the order of Columns.
func (l *Layout) ColumnAt(i int) *Column { return l.top[i] }

// AllColumns returns a copy of every column, nested ones included.
func (l *Layout) AllColumns() []*Column { return slices.Clone(l.columns) }

// Tokenizer interns the relative paths of the layout's columns. Row encodings depend
// on its token count, so only a read-only view is handed out.
func (l *Layout) Tokenizer() tokenizer.View { return l.tokenizer.View() }

// TryFind returns the column at the full path.
func (l *Layout) TryFind(path string) (*Column, bool) {
	col, ok := l.byPath[path]
	return col, ok
}

// TryFindUTF16 is TryFind for a UTF-16 encoded path.
func (l *Layout) TryFindUTF16(path []uint16) (*Column, bool) {
	col, ok := l.byUTF16[tokenizer.UTF16Key(path)]
	return col, ok
}

func (l *Layout) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Layout:\n\tCount: %d\n\tFixedSize: %d\n", len(l.columns), l.size)
	for _, col := range l.columns {
		switch col.storage {
		case schema.Fixed:
			if col.Type().IsBool() {
				fmt.Fprintf(&sb, "\t%s: %s @ %s:%d:%d\n", col.fullPath, col.typeArg, col.storage, col.nullBit, col.boolBit)
			} else {
				fmt.Fprintf(&sb, "\t%s: %s @ %s:%d:%d\n", col.fullPath, col.typeArg, col.storage, col.nullBit, col.offset)
			}
		case schema.Variable:
			fmt.Fprintf(&sb, "\t%s: %s @ %s:%d:%d\n", col.fullPath, col.typeArg, col.storage, col.nullBit, col.index)
		default:
			fmt.Fprintf(&sb, "\t%s: %s @ %s\n", col.fullPath, col.typeArg, col.storage)
		}
	}
	return sb.String()
}
