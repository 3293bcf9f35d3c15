package row_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-hybridrow/pkg/layout"
)

func (f *fixture) newSet(t *testing.T) layout.RowCursor {
	t.Helper()
	tags := f.column(t, "tags")
	c := f.field("tags")
	set, r := layout.TypedSet.WriteScope(f.buf, &c, tags.TypeArgs(), layout.Upsert)
	require.Equal(t, layout.Success, r)
	return set
}

// stage writes value at the end of the row, ready to be moved into a unique scope.
func (f *fixture) stage(t *testing.T, value string) layout.RowCursor {
	t.Helper()
	c := f.buf.AppendCursor()
	require.Equal(t, layout.Success, layout.Utf8.WriteSparse(f.buf, &c, value, layout.Upsert))
	return c
}

func (f *fixture) readSet(t *testing.T) []string {
	t.Helper()
	c := f.field("tags")
	set, r := layout.TypedSet.ReadScope(f.buf, &c)
	require.Equal(t, layout.Success, r)

	var got []string
	for set.MoveNext(f.buf) {
		v, r := layout.Utf8.ReadSparse(f.buf, &set)
		require.Equal(t, layout.Success, r)
		got = append(got, v.(string))
	}
	return got
}

// =============================================================================
// Typed Set Tests
// =============================================================================

func TestTypedSet_DirectWriteRejected(t *testing.T) {
	f := newFixture(t)
	set := f.newSet(t)
	assert.Equal(t, layout.InsufficientPermissions, layout.Utf8.WriteSparse(f.buf, &set, "x", layout.Insert))
}

func TestTypedSet_MoveFieldKeepsOrder(t *testing.T) {
	f := newFixture(t)
	set := f.newSet(t)

	for _, v := range []string{"pear", "apple", "fig"} {
		src := f.stage(t, v)
		require.Equal(t, layout.Success, layout.TypedSet.MoveField(f.buf, &set, &src, layout.Upsert), v)
		assert.False(t, src.Exists, "the staged field is consumed")
	}
	assert.Equal(t, 3, set.Count)
	assert.Equal(t, []string{"apple", "fig", "pear"}, f.readSet(t))
}

func TestTypedSet_Duplicates(t *testing.T) {
	f := newFixture(t)
	set := f.newSet(t)
	for _, v := range []string{"b", "a"} {
		src := f.stage(t, v)
		require.Equal(t, layout.Success, layout.TypedSet.MoveField(f.buf, &set, &src, layout.Upsert))
	}
	length := f.buf.Length()

	src := f.stage(t, "a")
	assert.Equal(t, layout.Exists, layout.TypedSet.MoveField(f.buf, &set, &src, layout.Insert))
	assert.Equal(t, length, f.buf.Length(), "a failed move still deletes the staged field")

	src = f.stage(t, "a")
	assert.Equal(t, layout.Success, layout.TypedSet.MoveField(f.buf, &set, &src, layout.Upsert))
	assert.Equal(t, 2, set.Count)

	src = f.stage(t, "c")
	assert.Equal(t, layout.NotFound, layout.TypedSet.MoveField(f.buf, &set, &src, layout.Update))
	assert.Equal(t, []string{"a", "b"}, f.readSet(t))
}

func TestTypedSet_MoveFieldErrors(t *testing.T) {
	f := newFixture(t)
	set := f.newSet(t)

	src := f.stage(t, "a")
	assert.Equal(t, layout.TypeConstraint, layout.TypedSet.MoveField(f.buf, &set, &src, layout.InsertAt))
	assert.False(t, src.Exists)

	src = f.buf.AppendCursor()
	require.Equal(t, layout.Success, layout.Int32.WriteSparse(f.buf, &src, int32(1), layout.Upsert))
	assert.Equal(t, layout.TypeMismatch, layout.TypedSet.MoveField(f.buf, &set, &src, layout.Upsert))
	assert.True(t, src.Exists, "a field of the wrong type is left alone")

	empty := f.buf.AppendCursor()
	assert.Equal(t, layout.NotFound, layout.TypedSet.MoveField(f.buf, &set, &empty, layout.Upsert))
	assert.Equal(t, layout.Failure, layout.TypedArray.MoveField(f.buf, &set, &src, layout.Upsert))
}

func TestTypedSet_Find(t *testing.T) {
	f := newFixture(t)
	set := f.newSet(t)
	for _, v := range []string{"pear", "fig"} {
		src := f.stage(t, v)
		require.Equal(t, layout.Success, layout.TypedSet.MoveField(f.buf, &set, &src, layout.Upsert))
	}
	length := f.buf.Length()

	pattern := f.stage(t, "fig")
	found, r := layout.TypedSet.Find(f.buf, &set, &pattern)
	require.Equal(t, layout.Success, r)
	v, r := layout.Utf8.ReadSparse(f.buf, &found)
	require.Equal(t, layout.Success, r)
	assert.Equal(t, "fig", v)
	assert.Equal(t, 0, found.Index)
	assert.Equal(t, length, f.buf.Length())

	pattern = f.stage(t, "kiwi")
	_, r = layout.TypedSet.Find(f.buf, &set, &pattern)
	assert.Equal(t, layout.NotFound, r)
	assert.Equal(t, length, f.buf.Length())
}

func TestTypedSet_DeferredIndex(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   layout.Result
	}{
		{"sorts", []string{"c", "a", "b"}, layout.Success},
		{"duplicate", []string{"c", "a", "c"}, layout.Exists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			set := f.newSet(t)
			set.DeferUniqueIndex = true

			for _, v := range tt.values {
				require.Equal(t, layout.Success, layout.Utf8.WriteSparse(f.buf, &set, v, layout.Insert))
				set.MoveNext(f.buf)
			}
			require.Equal(t, tt.want, layout.TypedSet.RebuildUniqueIndex(f.buf, &set))
			if tt.want == layout.Success {
				assert.Equal(t, []string{"a", "b", "c"}, f.readSet(t))
			}
		})
	}
}

// =============================================================================
// Typed Map Tests
// =============================================================================

func TestTypedMap(t *testing.T) {
	f := newFixture(t)
	prices := f.column(t, "prices")

	c := f.field("prices")
	m, r := layout.TypedMap.WriteScope(f.buf, &c, prices.TypeArgs(), layout.Upsert)
	require.Equal(t, layout.Success, r)

	entries := []struct {
		key   string
		value float64
	}{
		{"pear", 2.5},
		{"apple", 1.25},
		{"pear", 3},
	}
	for _, e := range entries {
		src := f.buf.AppendCursor()
		tuple, r := layout.TypedTuple.WriteScope(f.buf, &src, prices.TypeArgs(), layout.Upsert)
		require.Equal(t, layout.Success, r)
		require.Equal(t, layout.Success, layout.Utf8.WriteSparse(f.buf, &tuple, e.key, layout.Upsert))
		require.True(t, tuple.MoveNext(f.buf))
		require.Equal(t, layout.Success, layout.Float64.WriteSparse(f.buf, &tuple, e.value, layout.Upsert))

		require.Equal(t, layout.Success, layout.TypedMap.MoveField(f.buf, &m, &src, layout.Upsert))
	}
	assert.Equal(t, 2, m.Count)

	c = f.field("prices")
	read, r := layout.TypedMap.ReadScope(f.buf, &c)
	require.Equal(t, layout.Success, r)

	got := map[string]float64{}
	var keys []string
	for read.MoveNext(f.buf) {
		tuple, r := layout.TypedTuple.ReadScope(f.buf, &read)
		require.Equal(t, layout.Success, r)
		assert.True(t, tuple.Immutable, "map entries are read only")

		require.True(t, tuple.MoveNext(f.buf))
		k, _ := layout.Utf8.ReadSparse(f.buf, &tuple)
		require.True(t, tuple.MoveNext(f.buf))
		assert.Equal(t, layout.InsufficientPermissions, layout.Float64.WriteSparse(f.buf, &tuple, 0.0, layout.Update))
		v, _ := layout.Float64.ReadSparse(f.buf, &tuple)

		keys = append(keys, k.(string))
		got[k.(string)] = v.(float64)
	}
	assert.Equal(t, []string{"apple", "pear"}, keys)
	assert.Equal(t, map[string]float64{"apple": 1.25, "pear": 3}, got)
}

func TestTypedMap_DirectWriteRejected(t *testing.T) {
	f := newFixture(t)
	prices := f.column(t, "prices")

	c := f.field("prices")
	m, r := layout.TypedMap.WriteScope(f.buf, &c, prices.TypeArgs(), layout.Upsert)
	require.Equal(t, layout.Success, r)

	_, r = layout.TypedTuple.WriteScope(f.buf, &m, prices.TypeArgs(), layout.Insert)
	assert.Equal(t, layout.InsufficientPermissions, r)
}
