package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryClient keeps values in process. It is used when no Redis address
// is configured.
type MemoryClient[T any] struct {
	store *gocache.Cache
}

// NewMemoryClient creates an in-process cache whose entries live for
// expiration. Expired entries are purged every cleanupInterval.
func NewMemoryClient[T any](expiration, cleanupInterval time.Duration) *MemoryClient[T] {
	return &MemoryClient[T]{store: gocache.New(expiration, cleanupInterval)}
}

func (c *MemoryClient[T]) Set(_ context.Context, key string, value T) error {
	c.store.SetDefault(key, value)
	return nil
}

//nolint:ireturn
func (c *MemoryClient[T]) Get(_ context.Context, key string) (T, error) {
	var zero T

	v, found := c.store.Get(key)
	if !found {
		return zero, ErrCacheMiss
	}

	value, ok := v.(T)
	if !ok {
		c.store.Delete(key)
		return zero, ErrCacheMiss
	}
	return value, nil
}

// Len reports how many entries are currently held, expired ones included.
func (c *MemoryClient[T]) Len() int {
	return c.store.ItemCount()
}
