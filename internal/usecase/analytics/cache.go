package analytics

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"jobwise/internal/metrics"
)

// Cache memoizes derived stats. Keys embed the source store versions, so an
// entry can only be read back while the stores are unchanged; superseded
// entries age out of the LRU.
type Cache struct {
	entries *lru.Cache[string, any]
	group   singleflight.Group
}

func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = 256
	}
	entries, err := lru.New[string, any](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

func cacheKey(kind, owner string, versions ...uint64) string {
	return fmt.Sprintf("%s:%s:%v", kind, owner, versions)
}

// memo returns the value cached under key or computes and stores it.
// Concurrent misses for the same key share one computation. Callers get
// clone of the stored value, so they may modify it. A nil cache always
// computes.
func memo[T any](c *Cache, kind, key string, compute func() (T, error), clone func(T) T) (T, error) {
	if c == nil {
		return compute()
	}

	if v, ok := c.entries.Get(key); ok {
		if out, ok := v.(T); ok {
			metrics.RecordCacheLookup(kind, true)
			return clone(out), nil
		}
	}
	metrics.RecordCacheLookup(kind, false)

	v, err, _ := c.group.Do(key, func() (any, error) {
		out, err := compute()
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, out)
		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return clone(v.(T)), nil
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
