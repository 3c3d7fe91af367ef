// Package ttlcache потокобезопасный in-process кэш с TTL и шардированием
// по ключу. Проверка TTL выполняется на чтении по внедрённым часам, что
// позволяет тестировать истечение без реальных таймеров.
package ttlcache

import (
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 16

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// SystemClock часы на time.Now
type SystemClock struct{}

// Now возвращает текущее время
func (SystemClock) Now() time.Time { return time.Now() }

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type shard[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
}

// Cache шардированный кэш "ключ -> значение" с фиксированным TTL.
// Значения неизменяемы после вставки: обновление выполняется заменой записи.
type Cache[V any] struct {
	shards [shardCount]*shard[V]
	ttl    time.Duration
	clock  Clock
}

// New создает кэш с заданным TTL и системными часами
func New[V any](ttl time.Duration) *Cache[V] {
	return NewWithClock[V](ttl, SystemClock{})
}

// NewWithClock создает кэш с заданным TTL и внешними часами
func NewWithClock[V any](ttl time.Duration, clock Clock) *Cache[V] {
	c := &Cache[V]{ttl: ttl, clock: clock}
	for i := range c.shards {
		c.shards[i] = &shard[V]{entries: make(map[string]entry[V])}
	}
	return c
}

func (c *Cache[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()%shardCount]
}

// Get возвращает значение по ключу. Просроченная запись считается отсутствующей.
func (c *Cache[V]) Get(key string) (V, bool) {
	s := c.shardFor(key)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || c.clock.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set сохраняет значение по ключу с TTL кэша
func (c *Cache[V]) Set(key string, value V) {
	s := c.shardFor(key)

	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, expiresAt: c.clock.Now().Add(c.ttl)}
	s.mu.Unlock()
}

// Delete удаляет одну запись
func (c *Cache[V]) Delete(key string) {
	s := c.shardFor(key)

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear удаляет все записи
func (c *Cache[V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[string]entry[V])
		s.mu.Unlock()
	}
}

// Sweep удаляет просроченные записи и возвращает их количество.
// Вызывается периодически, чтобы ограничить рост памяти.
func (c *Cache[V]) Sweep() int {
	now := c.clock.Now()
	removed := 0

	for _, s := range c.shards {
		s.mu.Lock()
		for k, e := range s.entries {
			if now.After(e.expiresAt) {
				delete(s.entries, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Len возвращает количество записей (включая ещё не выметенные просроченные)
func (c *Cache[V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}
