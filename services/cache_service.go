package services

import (
	"context"
	"fmt"
	"storefront_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// CacheService wraps the Redis client. It only keeps short-lived counters;
// catalog data is never cached.
type CacheService struct {
	logger *gecho.Logger
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.CacheConfig) *CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		// Connection pool settings
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		// Failures are handled by callers, never retried here
		MaxRetries: -1,
	})

	return &CacheService{logger: logger, client: client}
}

func (cs *CacheService) Close() error {
	return cs.client.Close()
}

// IncrementRateLimit counts one hit for the ip/endpoint pair in a fixed
// window and returns the count so far. The window starts at the first hit.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	count, err := cs.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	// Set expiration only on first increment
	if count == 1 {
		if err := cs.client.Expire(ctx, key, window).Err(); err != nil {
			return int(count), err
		}
	}

	return int(count), nil
}

// Ping tests the Redis connection
func (cs *CacheService) Ping(ctx context.Context) error {
	return cs.client.Ping(ctx).Err()
}
