package row_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-hybridrow/pkg/layout"
	"github.com/huynhanx03/go-hybridrow/pkg/row"
	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

const personNamespace = `{
  "name": "people",
  "schemas": [
    {
      "name": "Person",
      "id": 1,
      "properties": [
        {"path": "id", "type": {"type": "int64", "storage": "fixed", "nullable": false}},
        {"path": "active", "type": {"type": "bool", "storage": "fixed"}},
        {"path": "code", "type": {"type": "utf8", "storage": "fixed", "length": 3}},
        {"path": "name", "type": {"type": "utf8", "storage": "variable", "length": 8}},
        {"path": "bio", "type": {"type": "utf8", "storage": "variable"}},
        {"path": "nick", "type": {"type": "utf8"}},
        {"path": "scores", "type": {"type": "array", "items": {"type": "int8", "nullable": false}}},
        {"path": "maybe", "type": {"type": "array", "items": {"type": "int32"}}},
        {"path": "tags", "type": {"type": "set", "items": {"type": "utf8", "nullable": false}}},
        {"path": "prices", "type": {"type": "map", "keys": {"type": "utf8", "nullable": false}, "values": {"type": "float64", "nullable": false}}},
        {"path": "pair", "type": {"type": "tuple", "items": [{"type": "int32", "nullable": false}, {"type": "utf8", "nullable": false}]}},
        {"path": "choice", "type": {"type": "tagged", "items": [{"type": "utf8", "nullable": false}]}},
        {"path": "home", "type": {"type": "schema", "name": "Address"}},
        {"path": "misc", "type": {"type": "object", "properties": [
          {"path": "note", "type": {"type": "utf8"}}
        ]}}
      ]
    },
    {
      "name": "Address",
      "id": 2,
      "properties": [
        {"path": "zip", "type": {"type": "int32", "storage": "fixed"}},
        {"path": "city", "type": {"type": "utf8"}}
      ]
    }
  ]
}`

type fixture struct {
	resolver *layout.NamespaceResolver
	layout   *layout.Layout
	buf      *row.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ns, err := schema.ParseNamespace([]byte(personNamespace))
	require.NoError(t, err)

	r := layout.NewNamespaceResolver(ns)
	l, err := r.Resolve(1)
	require.NoError(t, err)

	b := row.New(0, r)
	b.InitLayout(row.VersionV1, l)
	return &fixture{resolver: r, layout: l, buf: b}
}

func (f *fixture) column(t *testing.T, path string) *layout.Column {
	t.Helper()
	col, ok := f.layout.TryFind(path)
	require.True(t, ok, path)
	return col
}

// field returns a root cursor positioned at the sparse field path.
func (f *fixture) field(path string) layout.RowCursor {
	c := f.buf.Root()
	c.Find(f.buf, path)
	return c
}

// =============================================================================
// Header Tests
// =============================================================================

func TestInitLayout(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, row.HeaderSize+f.layout.Size(), f.buf.Length())
	assert.Equal(t, row.Header{Version: row.VersionV1, SchemaID: 1}, f.buf.Header())
	assert.Equal(t, byte(0x81), f.buf.Bytes()[0])
	assert.Same(t, f.layout, f.buf.Layout())

	root := f.buf.Root()
	assert.Equal(t, row.HeaderSize, root.Start)
	assert.Equal(t, f.buf.Length(), root.MetaOffset)
	assert.False(t, root.MoveNext(f.buf), "an empty row has no sparse fields")
}

func TestFromBytes(t *testing.T) {
	f := newFixture(t)
	root := f.buf.Root()
	require.Equal(t, layout.Success, layout.Int64.WriteFixed(f.buf, &root, f.column(t, "id"), int64(42)))
	nick := f.field("nick")
	require.Equal(t, layout.Success, layout.Utf8.WriteSparse(f.buf, &nick, "abc", layout.Upsert))

	data := append([]byte(nil), f.buf.Bytes()...)
	b2, err := row.FromBytes(data, f.resolver)
	require.NoError(t, err)

	root2 := b2.Root()
	v, r := layout.Int64.ReadFixed(b2, &root2, f.column(t, "id"))
	require.Equal(t, layout.Success, r)
	assert.Equal(t, int64(42), v)

	root2.Find(b2, "nick")
	s, r := layout.Utf8.ReadSparse(b2, &root2)
	require.Equal(t, layout.Success, r)
	assert.Equal(t, "abc", s)
}

func TestFromBytes_Errors(t *testing.T) {
	f := newFixture(t)
	valid := f.buf.Bytes()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"shorter_than_header", []byte{0x81, 1}, row.ErrInvalidRow},
		{"unknown_version", append([]byte{0x80}, valid[1:]...), row.ErrInvalidRow},
		{"unknown_schema", []byte{0x81, 9, 0, 0, 0}, layout.ErrSchemaNotFound},
		{"shorter_than_layout", valid[:row.HeaderSize], row.ErrInvalidRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := row.FromBytes(tt.data, f.resolver)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// =============================================================================
// Fixed Column Tests
// =============================================================================

func TestFixedColumns(t *testing.T) {
	f := newFixture(t)
	root := f.buf.Root()
	id, active, code := f.column(t, "id"), f.column(t, "active"), f.column(t, "code")

	v, r := layout.Int64.ReadFixed(f.buf, &root, id)
	require.Equal(t, layout.Success, r, "non-nullable columns are always present")
	assert.Equal(t, int64(0), v)

	_, r = layout.Boolean.ReadFixed(f.buf, &root, active)
	assert.Equal(t, layout.NotFound, r)

	for _, want := range []bool{true, false} {
		require.Equal(t, layout.Success, layout.Boolean.WriteFixed(f.buf, &root, active, want))
		v, r = layout.Boolean.ReadFixed(f.buf, &root, active)
		require.Equal(t, layout.Success, r)
		assert.Equal(t, want, v)
	}
	require.Equal(t, layout.Success, layout.Boolean.DeleteFixed(f.buf, &root, active))
	_, r = layout.Boolean.ReadFixed(f.buf, &root, active)
	assert.Equal(t, layout.NotFound, r)

	assert.Equal(t, layout.TooBig, layout.Utf8.WriteFixed(f.buf, &root, code, "abcd"))
	assert.Equal(t, layout.TypeConstraint, layout.Utf8.WriteFixed(f.buf, &root, code, "ab"))
	require.Equal(t, layout.Success, layout.Utf8.WriteFixed(f.buf, &root, code, "xyz"))
	v, r = layout.Utf8.ReadFixed(f.buf, &root, code)
	require.Equal(t, layout.Success, r)
	assert.Equal(t, "xyz", v)

	require.Equal(t, layout.Success, layout.Int64.WriteFixed(f.buf, &root, id, int64(-7)))
	v, _ = layout.Int64.ReadFixed(f.buf, &root, id)
	assert.Equal(t, int64(-7), v)
	assert.Equal(t, row.HeaderSize+f.layout.Size(), f.buf.Length(), "fixed writes never resize the row")
}

func TestFixedColumns_Rejections(t *testing.T) {
	f := newFixture(t)
	root := f.buf.Root()
	id := f.column(t, "id")

	assert.Equal(t, layout.TypeMismatch, layout.Int64.WriteFixed(f.buf, &root, id, int32(1)), "wrong Go type")
	assert.Equal(t, layout.TypeMismatch, layout.Int32.WriteFixed(f.buf, &root, id, int32(1)), "wrong layout type")
	assert.Equal(t, layout.TypeConstraint, layout.Int64.DeleteFixed(f.buf, &root, id))
	assert.Equal(t, layout.Failure, layout.Utf8.WriteFixed(f.buf, &root, f.column(t, "bio"), "x"), "variable column")

	root.Immutable = true
	assert.Equal(t, layout.InsufficientPermissions, layout.Int64.WriteFixed(f.buf, &root, id, int64(1)))
}

// =============================================================================
// Variable Column Tests
// =============================================================================

func TestVariableColumns(t *testing.T) {
	f := newFixture(t)
	root := f.buf.Root()
	name, bio := f.column(t, "name"), f.column(t, "bio")
	base := f.buf.Length()

	_, r := layout.Utf8.ReadVariable(f.buf, &root, name)
	assert.Equal(t, layout.NotFound, r)

	require.Equal(t, layout.Success, layout.Utf8.WriteVariable(f.buf, &root, bio, "hello"))
	require.Equal(t, layout.Success, layout.Utf8.WriteVariable(f.buf, &root, name, "bob"))
	assert.Equal(t, base+(1+3)+(1+5), f.buf.Length())
	assert.Equal(t, f.buf.Length(), root.MetaOffset, "the sparse segment moves with the variable values")

	require.Equal(t, layout.Success, layout.Utf8.WriteVariable(f.buf, &root, name, "alexandr"))
	assert.Equal(t, layout.TooBig, layout.Utf8.WriteVariable(f.buf, &root, name, "alexandria"))

	v, r := layout.Utf8.ReadVariable(f.buf, &root, name)
	require.Equal(t, layout.Success, r)
	assert.Equal(t, "alexandr", v)
	v, _ = layout.Utf8.ReadVariable(f.buf, &root, bio)
	assert.Equal(t, "hello", v)

	require.Equal(t, layout.Success, layout.Utf8.DeleteVariable(f.buf, &root, name))
	_, r = layout.Utf8.ReadVariable(f.buf, &root, name)
	assert.Equal(t, layout.NotFound, r)
	v, _ = layout.Utf8.ReadVariable(f.buf, &root, bio)
	assert.Equal(t, "hello", v)
	assert.Equal(t, base+1+5, f.buf.Length())
	assert.Equal(t, f.buf.Length(), root.MetaOffset)
}

func TestVariableColumns_ShiftsSparseFields(t *testing.T) {
	f := newFixture(t)
	nick := f.field("nick")
	require.Equal(t, layout.Success, layout.Utf8.WriteSparse(f.buf, &nick, "abc", layout.Upsert))

	root := f.buf.Root()
	require.Equal(t, layout.Success, layout.Utf8.WriteVariable(f.buf, &root, f.column(t, "bio"), "a longer biography"))

	nick = f.field("nick")
	v, r := layout.Utf8.ReadSparse(f.buf, &nick)
	require.Equal(t, layout.Success, r)
	assert.Equal(t, "abc", v)
}

func TestRelease_Reuse(t *testing.T) {
	f := newFixture(t)
	nick := f.field("nick")
	require.Equal(t, layout.Success, layout.Utf8.WriteSparse(f.buf, &nick, string(make([]byte, 300)), layout.Upsert))

	f.buf.Release()
	assert.Zero(t, f.buf.Length())

	// A released buffer can start over.
	f.buf.InitLayout(row.VersionV1, f.layout)
	assert.Equal(t, row.HeaderSize+f.layout.Size(), f.buf.Length())
	assert.False(t, f.field("nick").Exists)

	// Borrowed memory never leaks old contents into a new row.
	b := row.New(512, f.resolver)
	b.InitLayout(row.VersionV1, f.layout)
	root := b.Root()
	assert.False(t, root.MoveNext(b))
}
