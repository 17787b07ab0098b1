package lru

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"storefront/pkg/linkedlist"
	"storefront/pkg/logger"
)

type lruEntry[Key comparable, Value any] struct {
	key       Key
	value     Value
	expiresAt time.Time
}

// CacheLRUInMemory saves up to N Values with LRU eviction and in-memory map storage
//
// It uses given key and value types, e.g. string and models.Sponsor
//
// Entries older than ttl are treated as missing; ttl <= 0 disables expiry.
// A plain sync.Mutex is used because Get reorders the list too
type CacheLRUInMemory[Key comparable, Value any] struct {
	data     map[Key]*linkedlist.Node[lruEntry[Key, Value]]
	keysList *linkedlist.LinkedList[lruEntry[Key, Value]]
	mu       sync.Mutex
	cap      int
	ttl      time.Duration

	now func() time.Time
}

// The list keeps the most recently used entry at the head, the map points straight at list nodes,
// so both GET and SET are O(1)

// NewCacheLRUInMemory creates a cache that holds at most cacheCapacity values (at least 1)
func NewCacheLRUInMemory[Key comparable, Value any](cacheCapacity int, ttl time.Duration) *CacheLRUInMemory[Key, Value] {
	if cacheCapacity < 1 {
		cacheCapacity = 1
	}
	return &CacheLRUInMemory[Key, Value]{
		data:     make(map[Key]*linkedlist.Node[lruEntry[Key, Value]]),
		keysList: linkedlist.NewLinkedList[lruEntry[Key, Value]](),
		cap:      cacheCapacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the value and moves it to the top as the most recently used
func (c *CacheLRUInMemory[Key, Value]) Get(ctx context.Context, key Key) (Value, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.data[key]
	if !ok {
		logger.GetOrCreateLoggerFromCtx(ctx).Debug(ctx, "in-memory LRU cache miss", zap.Any("key", key))
		return *new(Value), false, nil
	}

	if c.expired(node.Value) {
		c.evict(node)
		logger.GetOrCreateLoggerFromCtx(ctx).Debug(ctx, "in-memory LRU cache entry expired", zap.Any("key", key))
		return *new(Value), false, nil
	}

	if err := c.keysList.MoveToFront(node); err != nil {
		return *new(Value), false, err
	}
	return node.Value.value, true, nil
}

// Set saves the value
//
// moves it to the top as the most recently used, evicts the least recently used one if out of space
func (c *CacheLRUInMemory[Key, Value]) Set(ctx context.Context, key Key, value Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := lruEntry[Key, Value]{key: key, value: value, expiresAt: c.expiry()}

	if node, ok := c.data[key]; ok {
		node.Value = entry
		return c.keysList.MoveToFront(node)
	}

	// remove value if we're out of space
	for c.keysList.Len() >= c.cap {
		evicted, err := c.keysList.RemoveLast()
		if err != nil {
			return err
		}
		delete(c.data, evicted.key)
		logger.GetOrCreateLoggerFromCtx(ctx).Debug(ctx, "in-memory LRU cache eviction", zap.Any("key", evicted.key))
	}

	c.data[key] = c.keysList.PushFront(entry)
	return nil
}

// Delete drops the key if present
func (c *CacheLRUInMemory[Key, Value]) Delete(_ context.Context, key Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.data[key]; ok {
		c.evict(node)
	}
	return nil
}

// GetKeysAmount returns the amount of stored keys, expired ones included until touched
func (c *CacheLRUInMemory[Key, Value]) GetKeysAmount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func (c *CacheLRUInMemory[Key, Value]) expiry() time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(c.ttl)
}

func (c *CacheLRUInMemory[Key, Value]) expired(entry lruEntry[Key, Value]) bool {
	return !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt)
}

func (c *CacheLRUInMemory[Key, Value]) evict(node *linkedlist.Node[lruEntry[Key, Value]]) {
	delete(c.data, node.Value.key)
	_ = c.keysList.Remove(node)
}
