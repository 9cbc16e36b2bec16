// Package cache provides a small keyed byte cache with TTL expiry.
//
// The CLI uses it to memoize slow API reads that do not need to be
// fresh, such as the account's domain list backing shell completion.
// Two implementations are provided: [FileCache] persists entries under
// a directory, and [NullCache] disables caching without changing any
// call sites.
//
// The SDK's publish path never touches a cache; deploys always hit
// the network.
package cache

import (
	"context"
	"time"

	"github.com/surge-sh/surge-go/pkg/observability"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// DomainListKey builds the cache key for an account's domain list.
// Keys embed the endpoint and a token hash so completion never leaks
// one account's domains into another's.
func DomainListKey(endpoint, token string) string {
	return "domains:" + Hash([]byte(endpoint+"\x00"+token))
}

// record reports a hit or miss to the registered observability hooks.
func record(ctx context.Context, keyType string, hit bool) {
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
}
