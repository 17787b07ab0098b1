package cache

import (
	"storefront/internal/models"
	"storefront/internal/ports"
	"storefront/pkg/pkgports/adapters/cache/lru"
	"time"
)

// NewSponsorCacheAdapterInMemoryLRU creates a new lru.CacheLRUInMemory
//
// Adapter for service: string as KeyType and models.Sponsor as ValueType
func NewSponsorCacheAdapterInMemoryLRU(capacity int, ttl time.Duration) ports.SponsorCache {
	return lru.NewCacheLRUInMemory[string, models.Sponsor](capacity, ttl)
}

// NewSponsorDirectoryCacheAdapterInMemory creates a single-slot lru.CacheLRUInMemory for the whole directory
func NewSponsorDirectoryCacheAdapterInMemory(ttl time.Duration) ports.SponsorDirectoryCache {
	return lru.NewCacheLRUInMemory[string, []models.Sponsor](1, ttl)
}
