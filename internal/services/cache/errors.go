package cache

import "errors"

// ErrCacheMiss is returned by every backend when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")
