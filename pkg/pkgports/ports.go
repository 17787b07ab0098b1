package pkgports

import "context"

// Cache describes a key-value cache that might be
// implemented with different storages (e.g. in-memory, redis)
// and mechanisms (e.g. LRU, TTL)
type Cache[Key comparable, Value any] interface {
	// Get returns the value and whether it was found, error is for storage failures only
	Get(ctx context.Context, key Key) (Value, bool, error)
	Set(ctx context.Context, key Key, value Value) error
	// Delete drops the key, a missing key is not an error
	Delete(ctx context.Context, key Key) error
	GetKeysAmount() int
}

// Publisher describes a message queue producer, e.g. kafka
//
// values are serialized by the implementation
type Publisher[Value any] interface {
	Publish(ctx context.Context, key string, value Value) error
	Close() error
}
