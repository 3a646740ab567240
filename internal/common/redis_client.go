package common

import (
	"context"
	"fmt"
	"os"
	"time"

	"avialog/backend/internal/logging"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient() *redis.Client {
	redisHost := EnvOrDefault("REDIS_HOST", "localhost")
	redisPort := EnvOrDefault("REDIS_PORT", "6379")

	// No password by default for local development
	redisPassword := os.Getenv("REDIS_PASSWORD")

	addr := fmt.Sprintf("%s:%s", redisHost, redisPort)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     redisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Still return the client, the connection pool will retry.
		logging.Warn("Redis ping failed", "addr", addr, "error", err.Error())
	}

	return client
}
