// Package kv abstracts the origin-scoped key-value storage used for the
// cart and the catalog CSV cache. Implementations must be safe for
// concurrent use.
package kv

// Store is a minimal string key-value store. Get returns found=false for
// missing keys; a nil error with found=false is a normal miss, not a
// failure.
type Store interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
