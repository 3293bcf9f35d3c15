package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Uvarint
// =============================================================================

func TestUvarint(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"max_single_byte", 127, []byte{0x7f}},
		{"min_two_bytes", 128, []byte{0x80, 0x01}},
		{"three_hundred", 300, []byte{0xac, 0x02}},
		{"max_uint32", math.MaxUint32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, MaxVarintLen)
			n := PutUvarint(buf, tt.value)
			assert.Equal(t, tt.want, buf[:n])
			assert.Equal(t, len(tt.want), UvarintSize(tt.value))
			assert.Equal(t, tt.want, AppendUvarint(nil, tt.value))

			got, read := Uvarint(buf[:n])
			require.Equal(t, n, read)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestUvarint_Truncated(t *testing.T) {
	_, n := Uvarint([]byte{0x80})
	assert.LessOrEqual(t, n, 0)
}

func TestUvarintSize_Max(t *testing.T) {
	assert.Equal(t, MaxVarintLen, UvarintSize(math.MaxUint64))
}

// =============================================================================
// Varint
// =============================================================================

func TestVarint(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		size  int
	}{
		{"zero", 0, 1},
		{"minus_one", -1, 1},
		{"sixty_three", 63, 1},
		{"minus_sixty_five", -65, 2},
		{"min_int64", math.MinInt64, MaxVarintLen},
		{"max_int64", math.MaxInt64, MaxVarintLen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, MaxVarintLen)
			n := PutVarint(buf, tt.value)
			assert.Equal(t, tt.size, n)
			assert.Equal(t, tt.size, VarintSize(tt.value))

			got, read := Varint(buf[:n])
			require.Equal(t, n, read)
			assert.Equal(t, tt.value, got)
		})
	}
}
