package layout

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/huynhanx03/go-hybridrow/pkg/encoding"
	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

// TypeArgument is a physical type paired with its generic parameters.
// The zero value is the absent argument.
type TypeArgument struct {
	typ  *Type
	args TypeArgumentList
}

// NewTypeArgument pairs t with args.
func NewTypeArgument(t *Type, args TypeArgumentList) TypeArgument {
	return TypeArgument{typ: t, args: args}
}

func (a TypeArgument) Type() *Type                { return a.typ }
func (a TypeArgument) TypeArgs() TypeArgumentList { return a.args }

// IsNone reports whether a is the absent argument.
func (a TypeArgument) IsNone() bool {
	return a.typ == nil
}

// Equal compares type identity and arguments recursively.
func (a TypeArgument) Equal(b TypeArgument) bool {
	return a.typ == b.typ && a.args.Equal(b.args)
}

func (a TypeArgument) String() string {
	if a.typ == nil {
		return ""
	}
	return a.typ.name + a.args.String()
}

// TypeArgumentList is either an ordered list of arguments or a schema reference.
// It is never modified once built.
type TypeArgumentList struct {
	args     []TypeArgument
	schemaID schema.SchemaID
}

// NewTypeArgumentList copies args into a new list.
func NewTypeArgumentList(args ...TypeArgument) TypeArgumentList {
	if len(args) == 0 {
		return TypeArgumentList{}
	}
	return TypeArgumentList{args: append([]TypeArgument(nil), args...)}
}

// NewUDTTypeArgumentList references the schema id.
func NewUDTTypeArgumentList(id schema.SchemaID) TypeArgumentList {
	return TypeArgumentList{schemaID: id}
}

func (l TypeArgumentList) Len() int                  { return len(l.args) }
func (l TypeArgumentList) SchemaID() schema.SchemaID { return l.schemaID }

// At returns the i-th argument, or the absent argument when i is out of range.
func (l TypeArgumentList) At(i int) TypeArgument {
	if i < 0 || i >= len(l.args) {
		return TypeArgument{}
	}
	return l.args[i]
}

// All iterates the arguments in order.
func (l TypeArgumentList) All() iter.Seq2[int, TypeArgument] {
	return func(yield func(int, TypeArgument) bool) {
		for i, a := range l.args {
			if !yield(i, a) {
				return
			}
		}
	}
}

func (l TypeArgumentList) Equal(o TypeArgumentList) bool {
	if l.schemaID != o.schemaID || len(l.args) != len(o.args) {
		return false
	}
	for i := range l.args {
		if !l.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (l TypeArgumentList) String() string {
	if l.schemaID != schema.InvalidSchemaID {
		return "<" + strconv.Itoa(int(l.schemaID)) + ">"
	}
	if len(l.args) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('<')
	for i, a := range l.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// SignatureReader reads the pieces of an encoded type signature.
type SignatureReader interface {
	Length() int
	ReadCode(offset int) Code
	ReadUvarint(offset int) (uint64, int)
	ReadSchemaID(offset int) schema.SchemaID
}

// SignatureWriter writes the pieces of an encoded type signature into reserved space.
type SignatureWriter interface {
	WriteCode(offset int, c Code)
	WriteUvarint(offset int, v uint64) int
	WriteSchemaID(offset int, id schema.SchemaID)
}

// WriteTypeArgument encodes t and its args at offset and returns the bytes written.
// The signature is written in pre-order: the code, then the per-kind argument payload.
func (t *Type) WriteTypeArgument(w SignatureWriter, offset int, args TypeArgumentList) int {
	w.WriteCode(offset, t.code)
	return 1 + t.writeTypeArgs(w, offset+1, args)
}

func (t *Type) writeTypeArgs(w SignatureWriter, offset int, args TypeArgumentList) int {
	switch t.kind() {
	case CodeTypedArrayScope, CodeTypedSetScope, CodeNullableScope:
		a := args.At(0)
		return a.typ.WriteTypeArgument(w, offset, a.args)

	case CodeTypedMapScope:
		n := 0
		for i := 0; i < 2; i++ {
			a := args.At(i)
			n += a.typ.WriteTypeArgument(w, offset+n, a.args)
		}
		return n

	case CodeTupleScope, CodeTypedTupleScope:
		n := w.WriteUvarint(offset, uint64(args.Len()))
		for _, a := range args.args {
			n += a.typ.WriteTypeArgument(w, offset+n, a.args)
		}
		return n

	case CodeTaggedScope, CodeTagged2Scope:
		// The leading uint8 tag argument is implied by the kind.
		n := 0
		for _, a := range args.args[1:] {
			n += a.typ.WriteTypeArgument(w, offset+n, a.args)
		}
		return n

	case CodeSchema:
		w.WriteSchemaID(offset, args.schemaID)
		return schema.SchemaIDSize

	default:
		return 0
	}
}

// CountTypeArgument returns the bytes WriteTypeArgument would write.
func (t *Type) CountTypeArgument(args TypeArgumentList) int {
	n := 1
	switch t.kind() {
	case CodeTypedArrayScope, CodeTypedSetScope, CodeNullableScope:
		a := args.At(0)
		n += a.typ.CountTypeArgument(a.args)
	case CodeTypedMapScope:
		for i := 0; i < 2; i++ {
			a := args.At(i)
			n += a.typ.CountTypeArgument(a.args)
		}
	case CodeTupleScope, CodeTypedTupleScope:
		n += encoding.UvarintSize(uint64(args.Len()))
		for _, a := range args.args {
			n += a.typ.CountTypeArgument(a.args)
		}
	case CodeTaggedScope, CodeTagged2Scope:
		for _, a := range args.args[1:] {
			n += a.typ.CountTypeArgument(a.args)
		}
	case CodeSchema:
		n += schema.SchemaIDSize
	}
	return n
}

// ReadTypeArgument decodes one type argument at offset.
func ReadTypeArgument(r SignatureReader, offset int) (TypeArgument, int) {
	t := MustFromCode(r.ReadCode(offset))
	args, n := t.ReadTypeArgumentList(r, offset+1)
	return NewTypeArgument(t, args), 1 + n
}

// ReadTypeArgumentList decodes the argument payload of t that starts at offset,
// just past t's code, and returns it with the bytes consumed.
func (t *Type) ReadTypeArgumentList(r SignatureReader, offset int) (TypeArgumentList, int) {
	switch t.kind() {
	case CodeTypedArrayScope, CodeTypedSetScope, CodeNullableScope:
		a, n := ReadTypeArgument(r, offset)
		return NewTypeArgumentList(a), n

	case CodeTypedMapScope:
		key, n := ReadTypeArgument(r, offset)
		value, m := ReadTypeArgument(r, offset+n)
		return NewTypeArgumentList(key, value), n + m

	case CodeTupleScope, CodeTypedTupleScope:
		count, n := r.ReadUvarint(offset)
		// Every argument takes at least one byte.
		if remaining := r.Length() - offset - n; count > uint64(max(remaining, 0)) {
			panic(fmt.Sprintf("layout: tuple arity %d exceeds the %d bytes left in the signature", count, remaining))
		}
		args := make([]TypeArgument, count)
		for i := range args {
			a, m := ReadTypeArgument(r, offset+n)
			args[i] = a
			n += m
		}
		return TypeArgumentList{args: args}, n

	case CodeTaggedScope, CodeTagged2Scope:
		arity := 1
		if t.kind() == CodeTagged2Scope {
			arity = 2
		}
		args := make([]TypeArgument, 0, arity+1)
		args = append(args, NewTypeArgument(UInt8, TypeArgumentList{}))
		n := 0
		for i := 0; i < arity; i++ {
			a, m := ReadTypeArgument(r, offset+n)
			args = append(args, a)
			n += m
		}
		return TypeArgumentList{args: args}, n

	case CodeSchema:
		return NewUDTTypeArgumentList(r.ReadSchemaID(offset)), schema.SchemaIDSize

	default:
		return TypeArgumentList{}, 0
	}
}
