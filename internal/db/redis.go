package db

import (
	"github.com/Piroenzo/mini-red-social/internal/config"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when no address is configured; token revocation is
// then disabled.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
