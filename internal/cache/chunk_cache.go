package cache

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/przecze/rooms-of-roaming/internal/dungeon"
)

// ChunkKey identifies a chunk by its integer coordinate.
type ChunkKey struct {
	CX, CY int
}

func (k ChunkKey) String() string {
	return fmt.Sprintf("%d,%d", k.CX, k.CY)
}

// BuildFunc generates a chunk. It must be pure and safe to call
// concurrently for distinct keys (the Generator's own contract). Declared
// as an alias, not a defined type, so *ChunkCache satisfies
// dungeon.ChunkCache's GetOrBuild signature without an adapter.
type BuildFunc = func(cx, cy int) (*dungeon.Chunk, error)

// ChunkCache is the §5 Chunk Cache: an LRU of generated chunks, keyed by
// coordinate, with singleflight coalescing so that N concurrent requests
// for the same missing chunk trigger exactly one build (I2/P6).
//
// A chunk that fails generation (e.g. InternalConsistencyViolation) is
// never cached, so a later request gets a fresh attempt.
type ChunkCache struct {
	lru    *lruCache[ChunkKey, *dungeon.Chunk]
	flight singleflight.Group
}

// NewChunkCache creates a cache holding at most capacity chunks.
func NewChunkCache(capacity int) *ChunkCache {
	return &ChunkCache{lru: newLRUCache[ChunkKey, *dungeon.Chunk](capacity)}
}

// GetOrBuild returns the cached chunk at (cx,cy), building it with build
// if absent. No lock is held while build runs — only one goroutine at a
// time per key actually calls build, by virtue of singleflight; other
// callers for the same key block on that call and share its result.
func (c *ChunkCache) GetOrBuild(cx, cy int, build BuildFunc) (*dungeon.Chunk, error) {
	key := ChunkKey{CX: cx, CY: cy}

	if chunk, ok := c.lru.get(key); ok {
		return chunk, nil
	}

	v, err, _ := c.flight.Do(key.String(), func() (interface{}, error) {
		// Re-check: another goroutine may have populated the cache while
		// we were waiting to be selected as the flight leader. The map is
		// read directly so that this request's miss, already counted by the
		// lookup above, is not counted a second time.
		c.lru.mu.RLock()
		elem, ok := c.lru.items[key]
		var cached *dungeon.Chunk
		if ok {
			cached = elem.Value.(*lruEntry[ChunkKey, *dungeon.Chunk]).value
		}
		c.lru.mu.RUnlock()
		if ok {
			return cached, nil
		}
		chunk, err := build(cx, cy)
		if err != nil {
			return nil, err
		}
		c.lru.set(key, chunk)
		return chunk, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dungeon.Chunk), nil
}

// Len returns the number of chunks currently cached.
func (c *ChunkCache) Len() int { return c.lru.len() }

// Stats reports cumulative hit/miss/eviction counts (P7).
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// Stats returns the cache's cumulative statistics.
func (c *ChunkCache) Stats() Stats {
	hits, misses, evictions := c.lru.stats()
	return Stats{Hits: hits, Misses: misses, Evictions: evictions}
}
