package cache

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/przecze/rooms-of-roaming/internal/dungeon"
)

func TestGetOrBuildCachesResult(t *testing.T) {
	c := NewChunkCache(4)
	var calls int32

	build := func(cx, cy int) (*dungeon.Chunk, error) {
		atomic.AddInt32(&calls, 1)
		cfg := dungeon.DefaultConfig()
		return dungeon.NewGenerator(cfg).Generate(cx, cy)
	}

	if _, err := c.GetOrBuild(0, 0, build); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := c.GetOrBuild(0, 0, build); err != nil {
		t.Fatalf("second build: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected build called once, got %d", got)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestGetOrBuildCoalescesConcurrentMisses(t *testing.T) {
	c := NewChunkCache(4)
	var calls int32
	release := make(chan struct{})

	build := func(cx, cy int) (*dungeon.Chunk, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		cfg := dungeon.DefaultConfig()
		return dungeon.NewGenerator(cfg).Generate(cx, cy)
	}

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.GetOrBuild(1, 1, build)
			errs[i] = err
		}(i)
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly one build call, got %d", got)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewChunkCache(2)
	build := func(cx, cy int) (*dungeon.Chunk, error) {
		cfg := dungeon.DefaultConfig()
		return dungeon.NewGenerator(cfg).Generate(cx, cy)
	}

	mustBuild := func(cx, cy int) {
		if _, err := c.GetOrBuild(cx, cy, build); err != nil {
			t.Fatalf("build(%d,%d): %v", cx, cy, err)
		}
	}

	mustBuild(0, 0)
	mustBuild(1, 0)
	mustBuild(0, 0) // refresh (0,0) to the front
	mustBuild(2, 0) // should evict (1,0), the least recently used

	if c.Len() != 2 {
		t.Fatalf("expected cache length 2, got %d", c.Len())
	}
	if c.Stats().Evictions != 1 {
		t.Fatalf("expected 1 eviction, got %d", c.Stats().Evictions)
	}
}
