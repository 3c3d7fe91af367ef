package ttlcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)}
	return NewWithClock[string](ttl, clock), clock
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("a", "alpha")
	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", got)

	// Повторный Set заменяет значение
	cache.Set("a", "beta")
	got, _ = cache.Get("a")
	assert.Equal(t, "beta", got)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, clock := newTestCache(5 * time.Minute)
	cache.Set("a", "alpha")

	// Ровно на границе TTL запись ещё жива
	clock.Advance(5 * time.Minute)
	_, ok := cache.Get("a")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = cache.Get("a")
	assert.False(t, ok)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	cache.Set("a", "alpha")
	cache.Set("b", "beta")

	cache.Delete("a")

	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Clear(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	for i := 0; i < 50; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), "v")
	}
	require.Equal(t, 50, cache.Len())

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
}

func TestCache_Sweep(t *testing.T) {
	cache, clock := newTestCache(5 * time.Minute)
	cache.Set("old-1", "v")
	cache.Set("old-2", "v")

	clock.Advance(6 * time.Minute)
	cache.Set("fresh", "v")

	// Просроченные записи остаются в памяти до Sweep
	assert.Equal(t, 3, cache.Len())

	removed := cache.Sweep()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get("fresh")
	assert.True(t, ok)

	// Повторный Sweep ничего не находит
	assert.Equal(t, 0, cache.Sweep())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", n, j)
				cache.Set(key, "v")
				_, _ = cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 800, cache.Len())
}
