package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"primos.GO/core/kv"
)

// Cache key schema version. Bumping it invalidates every previously stored
// entry without an explicit migration.
const csvCacheVersion = 8

// DefaultCacheTTL is how long cached CSV text stays fresh.
const DefaultCacheTTL = 30 * time.Minute

// CSVCache keeps the last-fetched CSV text in the kv store with a TTL,
// so a page view can render instantly and refresh in the background.
type CSVCache struct {
	store kv.Store
	ttl   time.Duration
	now   func() time.Time
}

type cacheEntry struct {
	Data      string `json:"data"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

func NewCSVCache(store kv.Store, ttl time.Duration) *CSVCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CSVCache{store: store, ttl: ttl, now: time.Now}
}

func cacheKey() string {
	return fmt.Sprintf("productsCsvCache:v%d", csvCacheVersion)
}

// Read returns the cached raw text if present and fresh. An expired entry
// is evicted and reported absent. Storage errors degrade to a miss.
func (c *CSVCache) Read() (string, bool) {
	raw, ok, err := c.store.Get(cacheKey())
	if err != nil {
		log.Printf("[warn] csv cache read: %v", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Printf("[warn] csv cache decode: %v", err)
		return "", false
	}
	age := c.now().UnixMilli() - entry.Timestamp
	if age >= c.ttl.Milliseconds() {
		if err := c.store.Delete(cacheKey()); err != nil {
			log.Printf("[warn] csv cache evict: %v", err)
		}
		return "", false
	}
	return entry.Data, true
}

// Write stores the raw text with the current timestamp, overwriting any
// previous entry. Errors are non-fatal: the system degrades to
// always-fetch behavior.
func (c *CSVCache) Write(text string) {
	entry := cacheEntry{Data: text, Timestamp: c.now().UnixMilli()}
	raw, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[warn] csv cache encode: %v", err)
		return
	}
	if err := c.store.Set(cacheKey(), string(raw)); err != nil {
		log.Printf("[warn] csv cache write: %v", err)
	}
}
