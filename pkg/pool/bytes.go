package pool

import (
	"math/bits"
	"slices"
	"sync"
	"sync/atomic"
)

const (
	minBitSize = 6  // 64 bytes (CPU cache line)
	steps      = 20 // 64B to 32MB

	// MinSize is the smallest slice capacity handed out.
	MinSize = 1 << minBitSize
	// MaxSize is the largest capacity the pool retains.
	MaxSize = 1 << (minBitSize + steps - 1)

	calibrateThreshold = 42000
	percentile95       = 0.95
)

// Bytes is a pool of byte slices bucketed by power-of-two capacity. After enough
// returns it calibrates: capacities above those covering 95% of returns are no
// longer retained.
type Bytes struct {
	calls       [steps]uint64
	calibrating uint64
	maxSize     uint64
	buckets     [steps]sync.Pool
}

// NewBytes creates an empty pool.
func NewBytes() *Bytes {
	p := &Bytes{}
	for i := range p.buckets {
		size := MinSize << i
		p.buckets[i].New = func() any {
			b := make([]byte, size)
			return &b
		}
	}
	return p
}

// Get returns a zero-length slice with capacity of at least size.
func (p *Bytes) Get(size int) []byte {
	if size <= 0 {
		size = MinSize
	}
	idx := bucketIndex(size)
	if idx >= steps {
		return make([]byte, 0, size)
	}

	b := *p.buckets[idx].Get().(*[]byte)
	return b[:0]
}

// Put hands b back to the pool. The caller must not use b afterwards.
func (p *Bytes) Put(b []byte) {
	size := cap(b)
	if size < MinSize {
		return
	}
	// Filed under the largest bucket size that fits, so Get never sees a short slice.
	idx := bits.Len(uint(size>>minBitSize)) - 1
	if idx >= steps {
		return
	}

	if atomic.AddUint64(&p.calls[idx], 1) > calibrateThreshold {
		p.calibrate()
	}
	if limit := atomic.LoadUint64(&p.maxSize); limit > 0 && uint64(size) > limit {
		return
	}

	b = b[:0]
	p.buckets[idx].Put(&b)
}

// Limit returns the largest capacity the pool currently retains, zero before the
// first calibration.
func (p *Bytes) Limit() int {
	return int(atomic.LoadUint64(&p.maxSize))
}

func (p *Bytes) calibrate() {
	if !atomic.CompareAndSwapUint64(&p.calibrating, 0, 1) {
		return
	}
	defer atomic.StoreUint64(&p.calibrating, 0)

	type bucket struct {
		calls uint64
		size  uint64
	}
	stats := make([]bucket, 0, steps)
	var total uint64
	for i := range p.calls {
		calls := atomic.SwapUint64(&p.calls[i], 0)
		total += calls
		stats = append(stats, bucket{calls: calls, size: uint64(MinSize) << i})
	}
	slices.SortFunc(stats, func(a, b bucket) int {
		switch {
		case a.calls > b.calls:
			return -1
		case a.calls < b.calls:
			return 1
		}
		return 0
	})

	maxSize := stats[0].size
	threshold := uint64(float64(total) * percentile95)
	var sum uint64
	for _, s := range stats {
		if sum > threshold {
			break
		}
		sum += s.calls
		maxSize = max(maxSize, s.size)
	}
	atomic.StoreUint64(&p.maxSize, maxSize)
}

// bucketIndex returns the bucket whose slices hold at least n bytes.
func bucketIndex(n int) int {
	n--
	n >>= minBitSize
	idx := 0
	for n > 0 {
		n >>= 1
		idx++
	}
	return idx
}

// BucketSize returns the capacity of the slices in bucket i.
func BucketSize(i int) int {
	if i < 0 || i >= steps {
		return 0
	}
	return MinSize << i
}
