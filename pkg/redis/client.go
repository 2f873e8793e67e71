// Package redis provides Redis client utilities.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Shelkonty/feedback-whole/internal/config"
	"github.com/Shelkonty/feedback-whole/pkg/logger"
)

// NewClient creates a new Redis client instance, or nil when no Redis host
// is configured. The caller treats a nil client as "cache disabled".
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}

	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0,
	}

	// Enable TLS for production environments when password is set
	if cfg.RedisPassword != "" {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(options)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.L.WithError(err).Warn("redis unreachable, taxonomy cache disabled")
		return nil
	}

	return client
}
