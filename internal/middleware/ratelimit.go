package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/frocha1012/travel-reservation/internal/config"
)

// RateLimit returns a fixed-window request limiter backed by Redis.
// Each client (authenticated user id, or remote IP for anonymous
// requests) gets cfg.PerMinute requests per minute; the counter key
// expires with the window so idle clients cost nothing.  When rate
// limiting is disabled or no Redis client is available the middleware
// is a pass-through; the booking API stays up without Redis, it just
// loses throttling.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := c.RealIP()
			if uid := c.Get("user_id"); uid != nil {
				client = fmt.Sprintf("u:%v", uid)
			}
			window := time.Now().UTC().Unix() / 60
			key := fmt.Sprintf("rl:%s:%d", client, window)

			ctx := c.Request().Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis being down must not refuse traffic.
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, time.Minute)
			}
			if n > int64(cfg.PerMinute) {
				c.Response().Header().Set("Retry-After", "60")
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
