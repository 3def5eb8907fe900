package config

// Redis backs the API rate limiter.  The client parameters are read
// from environment variables; a Redis that cannot be reached at
// startup disables rate limiting rather than taking the service down,
// so NewRedisClient returns nil on failure and callers must degrade
// gracefully.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from the environment.
// Supported variables:
//
//	REDIS_ADDR     - host:port of the Redis server (default localhost:6379)
//	REDIS_PASSWORD - optional password
//	REDIS_DB       - database number (default 0)
//
// The returned client is nil when the server does not answer a ping
// within two seconds.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// RateLimitConfig controls the fixed-window request limiter applied
// to the whole API.  Window counts reset every minute.
type RateLimitConfig struct {
	Enabled   bool
	PerMinute int
}

// LoadRateLimitConfig reads RATE_LIMIT_ENABLED and RATE_LIMIT_PER_MIN
// with sensible defaults: enabled, 120 requests per minute per client.
func LoadRateLimitConfig() RateLimitConfig {
	enabled := true
	if s := os.Getenv("RATE_LIMIT_ENABLED"); s == "false" || s == "0" {
		enabled = false
	}
	perMin := 120
	if s := os.Getenv("RATE_LIMIT_PER_MIN"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			perMin = n
		}
	}
	return RateLimitConfig{Enabled: enabled, PerMinute: perMin}
}
