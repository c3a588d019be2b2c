package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache: key not found")

// Cache is a plain key/value store. The core uses it strictly as a speed
// optimization: write failures are logged and swallowed, never propagated.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

const accountNamespace = "stripe:account:"

// AccountKey returns the namespaced cache key for a user's provider account
// snapshot.
func AccountKey(userID string) string {
	return accountNamespace + userID
}
