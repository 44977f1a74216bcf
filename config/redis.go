package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis builds the optional Redis client used for auth-user caching.
// Returns nil when no address is configured or the server is unreachable;
// callers degrade to store lookups.
func ConnectRedis(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unavailable, auth caching disabled", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return nil
	}
	slog.Info("Connected to Redis", "addr", cfg.RedisAddr)
	return client
}
