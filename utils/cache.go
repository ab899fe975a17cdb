package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bestsneakers/bestsneakers-api/initializers"
)

var cacheCtx = context.Background()

// CacheGet unmarshals the cached value for key into dest. Returns false on a
// miss, on any redis error, or when no redis client is configured.
func CacheGet(key string, dest any) bool {
	if initializers.RDB == nil {
		return false
	}

	val, err := initializers.RDB.Get(cacheCtx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), dest) == nil
}

func CacheSet(key string, value any, ttl time.Duration) error {
	if initializers.RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return initializers.RDB.Set(cacheCtx, key, data, ttl).Err()
}

// CacheInvalidate drops every key matching pattern. Used after catalog
// writes so stale listings do not outlive their TTL.
func CacheInvalidate(pattern string) {
	if initializers.RDB == nil {
		return
	}

	keys, err := initializers.RDB.Keys(cacheCtx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	initializers.RDB.Del(cacheCtx, keys...)
}
