package common

import (
	"os"

	"avialog/backend/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewCache selects the cache backend. CACHE_BACKEND=redis switches to the
// shared Redis client; anything else stays in-process.
func NewCache(client *redis.Client) CacheInterface {
	if os.Getenv("CACHE_BACKEND") == "redis" {
		logging.Info("Cache backend: redis")
		return NewRedisCacheService(client)
	}
	logging.Info("Cache backend: in-memory")
	return NewCacheService(600, 1200)
}
