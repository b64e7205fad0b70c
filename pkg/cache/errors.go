package cache

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by [Load] when the key is not present.
var ErrCacheMiss = errors.New("cache miss")

// Load returns the bytes stored under key, or ErrCacheMiss.
func Load(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, ErrCacheMiss
	}
	return data, nil
}
