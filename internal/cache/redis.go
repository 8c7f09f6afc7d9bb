package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/config"
)

// Redis is a Store backed by a Redis server. The connection is established
// on first use and reused afterwards; if that first connection attempt
// fails, the store flips to permanently unavailable and every subsequent
// call behaves like a cache miss. The connection itself is never retried.
type Redis struct {
	cfg    config.CacheConfig
	logger zerolog.Logger

	once        sync.Once
	client      *redis.Client
	unavailable bool
}

// NewRedis creates a Redis-backed store. No connection is made until the
// first Get or Set.
func NewRedis(cfg config.CacheConfig, logger zerolog.Logger) *Redis {
	return &Redis{
		cfg:    cfg,
		logger: logger.With().Str("component", "cache").Logger(),
	}
}

// connect establishes the client on first use.
func (r *Redis) connect(ctx context.Context) *redis.Client {
	r.once.Do(func() {
		client := redis.NewClient(&redis.Options{
			Addr:     r.cfg.Addr,
			Password: r.cfg.Password,
			DB:       r.cfg.DB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			r.logger.Warn().Err(err).Str("addr", r.cfg.Addr).Msg("Redis unavailable, caching disabled")
			r.unavailable = true
			_ = client.Close()
			return
		}

		r.client = client
		r.logger.Info().Str("addr", r.cfg.Addr).Msg("Connected to Redis")
	})

	if r.unavailable {
		return nil
	}
	return r.client
}

// Get retrieves a value by key. Any Redis error is treated as a miss.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	client := r.connect(ctx)
	if client == nil {
		return "", false
	}

	value, err := client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Debug().Err(err).Str("key", key).Msg("Cache get failed")
		}
		return "", false
	}

	return value, true
}

// Set stores a value under key. Failures are logged and swallowed.
func (r *Redis) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	client := r.connect(ctx)
	if client == nil {
		return
	}

	if err := client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Debug().Err(err).Str("key", key).Msg("Cache set failed")
	}
}

// Close releases the underlying connection if one was established.
func (r *Redis) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
