package magicdiv

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache memoizes Dividers per divisor. Synthesis is cheap but not free
// (the 64-bit path runs 256-bit preparation arithmetic), and generated code
// tends to reuse a small set of divisors, so lookups are the common case.
// Shards keep concurrent readers off a single lock. The zero Cache is not
// usable; construct with NewCache.
type Cache[T Integer] struct {
	shards []cacheShard[T]
	mask   uint64
}

type cacheShard[T Integer] struct {
	mu sync.RWMutex
	m  map[T]*Divider[T]
}

// DefaultShards is the shard count used when NewCache is given n <= 0.
const DefaultShards = 16

// NewCache creates a cache with n shards, rounded up to a power of two.
func NewCache[T Integer](n int) *Cache[T] {
	if n <= 0 {
		n = DefaultShards
	}
	size := 1
	for size < n {
		size <<= 1
	}
	c := &Cache[T]{
		shards: make([]cacheShard[T], size),
		mask:   uint64(size - 1),
	}
	for i := range c.shards {
		c.shards[i].m = make(map[T]*Divider[T])
	}
	return c
}

// shard hashes the divisor's 8-byte encoding so numerically close divisors
// do not pile onto the same lock.
func (c *Cache[T]) shard(d T) *cacheShard[T] {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(d)))
	return &c.shards[xxhash.Sum64(buf[:])&c.mask]
}

// Get returns the cached Divider for d, synthesizing and storing it on the
// first request. Repeated calls for the same divisor return the same
// pointer. Zero and power-of-two divisors fail exactly like New and are
// never stored.
func (c *Cache[T]) Get(d T) (*Divider[T], error) {
	s := c.shard(d)
	s.mu.RLock()
	dv, ok := s.m[d]
	s.mu.RUnlock()
	if ok {
		return dv, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if dv, ok := s.m[d]; ok {
		return dv, nil
	}
	dv, err := New(d)
	if err != nil {
		return nil, err
	}
	s.m[d] = dv
	return dv, nil
}

// Len reports the number of cached dividers across all shards.
func (c *Cache[T]) Len() int {
	n := 0
	for i := range c.shards {
		c.shards[i].mu.RLock()
		n += len(c.shards[i].m)
		c.shards[i].mu.RUnlock()
	}
	return n
}
