// Package cache defines the port for byte-oriented key-value caching used by
// the idempotency layer.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache stores opaque values under string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key builds a backend-safe key from a namespace and arbitrary parts.
// Client-supplied parts may contain characters NATS KV rejects, so they are
// hashed.
func Key(namespace string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return namespace + "." + hex.EncodeToString(sum[:])
}
