package layout_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-hybridrow/pkg/layout"
	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

const storeNamespace = `{
  "name": "store",
  "schemas": [
    {
      "name": "Order",
      "id": 1,
      "properties": [
        {"path": "id", "type": {"type": "int64", "storage": "fixed", "nullable": false}},
        {"path": "paid", "type": {"type": "bool", "storage": "fixed"}},
        {"path": "note", "type": {"type": "utf8", "storage": "variable", "length": 16}},
        {"path": "lines", "type": {"type": "array", "items": {"type": "int8", "nullable": false}}},
        {"path": "anything", "type": {"type": "array"}},
        {"path": "tags", "type": {"type": "set", "items": {"type": "utf8"}}},
        {"path": "prices", "type": {"type": "map", "keys": {"type": "utf8", "nullable": false}, "values": {"type": "float64", "nullable": false}}},
        {"path": "pair", "type": {"type": "tuple", "immutable": true, "items": [{"type": "int32", "nullable": false}, {"type": "utf8", "nullable": false}]}},
        {"path": "choice", "type": {"type": "tagged", "items": [{"type": "utf8", "nullable": false}]}},
        {"path": "either", "type": {"type": "tagged", "items": [{"type": "utf8", "nullable": false}, {"type": "int64", "nullable": false}]}},
        {"path": "ship", "type": {"type": "schema", "name": "Address"}},
        {"path": "meta", "type": {"type": "object", "properties": [
          {"path": "source", "type": {"type": "utf8"}}
        ]}}
      ]
    },
    {"name": "Address", "id": 2, "properties": [{"path": "city", "type": {"type": "utf8"}}]}
  ]
}`

func mustNamespace(t *testing.T, doc string) *schema.Namespace {
	t.Helper()
	ns, err := schema.ParseNamespace([]byte(doc))
	require.NoError(t, err)
	return ns
}

func scalar(typ *layout.Type) layout.TypeArgument {
	return layout.NewTypeArgument(typ, layout.TypeArgumentList{})
}

// =============================================================================
// Compile Tests
// =============================================================================

func TestCompile(t *testing.T) {
	ns := mustNamespace(t, storeNamespace)
	l, err := layout.Compile(ns, ns.Schemas[0])
	require.NoError(t, err)

	assert.Equal(t, 2, l.NumFixed())
	assert.Equal(t, 1, l.NumVariable())
	// id, paid null bit, paid value bit, note null bit.
	assert.Equal(t, 1, l.NumBitmaskBytes())
	assert.Equal(t, 1+8, l.Size())

	tests := []struct {
		path string
		typ  *layout.Type
		args layout.TypeArgumentList
	}{
		{"id", layout.Int64, layout.TypeArgumentList{}},
		{"paid", layout.Boolean, layout.TypeArgumentList{}},
		{"note", layout.Utf8, layout.TypeArgumentList{}},
		{"lines", layout.TypedArray, layout.NewTypeArgumentList(scalar(layout.Int8))},
		{"anything", layout.Array, layout.TypeArgumentList{}},
		{"tags", layout.TypedSet, layout.NewTypeArgumentList(
			layout.NewTypeArgument(layout.Nullable, layout.NewTypeArgumentList(scalar(layout.Utf8))),
		)},
		{"prices", layout.TypedMap, layout.NewTypeArgumentList(scalar(layout.Utf8), scalar(layout.Float64))},
		{"pair", layout.ImmutableTypedTuple, layout.NewTypeArgumentList(scalar(layout.Int32), scalar(layout.Utf8))},
		{"choice", layout.Tagged, layout.NewTypeArgumentList(scalar(layout.UInt8), scalar(layout.Utf8))},
		{"either", layout.Tagged2, layout.NewTypeArgumentList(scalar(layout.UInt8), scalar(layout.Utf8), scalar(layout.Int64))},
		{"ship", layout.UDT, layout.NewUDTTypeArgumentList(2)},
		{"meta", layout.Object, layout.TypeArgumentList{}},
		{"meta.source", layout.Utf8, layout.TypeArgumentList{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			col, ok := l.TryFind(tt.path)
			require.True(t, ok)
			assert.Same(t, tt.typ, col.Type())
			assert.True(t, tt.args.Equal(col.TypeArgs()), "got %s", col.TypeArgs())
		})
	}

	note, _ := l.TryFind("note")
	assert.Equal(t, 16, note.Size())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prop    string
		wantMsg string
	}{
		{"tagged_no_items", `{"type": "tagged", "items": []}`, "Invalid number of arguments in Tagged"},
		{"tagged_three_items", `{"type": "tagged", "items": [{"type": "int8"}, {"type": "int8"}, {"type": "int8"}]}`, "Invalid number of arguments in Tagged"},
		{"untyped_set", `{"type": "set"}`, "Untyped sparse sets are not supported."},
		{"untyped_map", `{"type": "map", "keys": {"type": "utf8"}}`, "Untyped sparse maps are not supported."},
		{"fixed_varint", `{"type": "varint", "storage": "fixed"}`, "Fixed storage is not supported"},
		{"fixed_utf8_without_length", `{"type": "utf8", "storage": "fixed"}`, "requires a length"},
		{"non_nullable_null", `{"type": "null", "storage": "fixed", "nullable": false}`, "Non-nullable null columns are not supported."},
		{"non_nullable_variable", `{"type": "utf8", "storage": "variable", "nullable": false}`, "Non-nullable variable columns are not supported."},
		{"non_nullable_sparse", `{"type": "int32", "nullable": false}`, "Non-nullable sparse columns are not supported."},
		{"non_nullable_scope", `{"type": "array", "nullable": false}`, "Non-nullable sparse column are not supported."},
		{"fixed_in_object", `{"type": "object", "properties": [{"path": "x", "type": {"type": "int8", "storage": "fixed"}}]}`, "Cannot have fixed storage within a sparse scope."},
		{"variable_in_object", `{"type": "object", "properties": [{"path": "x", "type": {"type": "utf8", "storage": "variable"}}]}`, "Cannot have variable storage within a sparse scope."},
		{"unknown_udt_name", `{"type": "schema", "name": "Missing"}`, "Cannot resolve schema reference 'Missing:0'"},
		{"unknown_udt_id", `{"type": "schema", "name": "A", "id": 9}`, "Cannot resolve schema reference 'A:9'"},
		{"udt_id_name_mismatch", `{"type": "schema", "name": "B", "id": 1}`, "Ambiguous schema reference: 'B:1'"},
		{"ambiguous_udt_name", `{"type": "schema", "name": "Twin"}`, "Ambiguous schema reference: 'Twin:0'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fmt.Sprintf(`{"name": "x", "schemas": [
				{"name": "A", "id": 1, "properties": [{"path": "p", "type": %s}]},
				{"name": "Twin", "id": 2},
				{"name": "Twin", "id": 3}
			]}`, tt.prop)
			ns := mustNamespace(t, doc)

			_, err := layout.Compile(ns, ns.Schemas[0])
			require.Error(t, err)
			assert.True(t, layout.IsCompilationError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCompile_TaggedArity(t *testing.T) {
	for arity, want := range map[int]*layout.Type{1: layout.Tagged, 2: layout.Tagged2} {
		t.Run(fmt.Sprintf("arity_%d", arity), func(t *testing.T) {
			items := `{"type": "int8", "nullable": false}`
			if arity == 2 {
				items += `, {"type": "bool", "nullable": false}`
			}
			ns := mustNamespace(t, fmt.Sprintf(`{"name": "x", "schemas": [
				{"name": "A", "id": 1, "properties": [{"path": "t", "type": {"type": "tagged", "items": [%s]}}]}
			]}`, items))

			l, err := layout.Compile(ns, ns.Schemas[0])
			require.NoError(t, err)

			col, _ := l.TryFind("t")
			assert.Same(t, want, col.Type())
			require.Equal(t, arity+1, col.TypeArgs().Len())
			assert.Same(t, layout.UInt8, col.TypeArgs().At(0).Type())
		})
	}
}
