package pool_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-hybridrow/pkg/pool"
)

// =============================================================================
// Bytes Tests
// =============================================================================

func TestBytes_Get(t *testing.T) {
	p := pool.NewBytes()

	tests := []struct {
		name    string
		size    int
		wantCap int
	}{
		{"zero", 0, pool.MinSize},
		{"small", 10, pool.MinSize},
		{"exact_bucket", 128, 128},
		{"between_buckets", 129, 256},
		{"over_max", pool.MaxSize + 1, pool.MaxSize + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := p.Get(tt.size)
			assert.Empty(t, b)
			assert.GreaterOrEqual(t, cap(b), tt.wantCap)
		})
	}
}

func TestBytes_PutOddCapacity(t *testing.T) {
	p := pool.NewBytes()

	// A 100 byte slice may only serve requests up to 64 bytes.
	p.Put(make([]byte, 100))
	for i := 0; i < 10; i++ {
		b := p.Get(100)
		require.GreaterOrEqual(t, cap(b), 100)
	}

	p.Put(make([]byte, 10))
	p.Put(nil)
}

func TestBytes_Calibrate(t *testing.T) {
	p := pool.NewBytes()
	assert.Zero(t, p.Limit())

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 11000; i++ {
				p.Put(make([]byte, 0, 256))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 256, p.Limit())
	assert.Equal(t, 0, pool.BucketSize(-1))
	assert.Equal(t, pool.MaxSize, pool.BucketSize(19))
}
