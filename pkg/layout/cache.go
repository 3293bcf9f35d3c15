package layout

import (
	"encoding/binary"
	"math/bits"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

const defaultCacheShards = 16

// layoutCache is a sharded, lock-striped map from schema id to compiled layout.
type layoutCache struct {
	shards []*cacheShard
	mask   uint64
}

type cacheShard struct {
	sync.RWMutex
	data map[schema.SchemaID]*Layout

	// Keeps neighbouring shards off the same cache line.
	pad [64]byte
}

// newLayoutCache rounds shards up to a power of two.
func newLayoutCache(shards int) *layoutCache {
	if shards <= 0 {
		shards = defaultCacheShards
	}
	n := 1
	if shards > 1 {
		n = 1 << bits.Len(uint(shards-1))
	}

	c := &layoutCache{
		shards: make([]*cacheShard, n),
		mask:   uint64(n - 1),
	}
	for i := range c.shards {
		c.shards[i] = &cacheShard{data: make(map[schema.SchemaID]*Layout)}
	}
	return c
}

func (c *layoutCache) shard(id schema.SchemaID) *cacheShard {
	var key [schema.SchemaIDSize]byte
	binary.LittleEndian.PutUint32(key[:], uint32(id))
	return c.shards[xxhash.Sum64(key[:])&c.mask]
}

func (c *layoutCache) Get(id schema.SchemaID) (*Layout, bool) {
	s := c.shard(id)
	s.RLock()
	l, ok := s.data[id]
	s.RUnlock()
	return l, ok
}

func (c *layoutCache) Set(id schema.SchemaID, l *Layout) {
	s := c.shard(id)
	s.Lock()
	s.data[id] = l
	s.Unlock()
}

// Len counts entries shard by shard; it is not atomic across shards.
func (c *layoutCache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.RLock()
		total += len(s.data)
		s.RUnlock()
	}
	return total
}
