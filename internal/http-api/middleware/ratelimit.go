package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"tourhub/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimit limits requests per client IP. With a redis client it uses a
// fixed window counter shared across instances; without one it falls back to
// an in-process token bucket, which is enough for a single instance.
func RateLimit(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}

	if rdb != nil {
		return redisRateLimit(cfg, rdb)
	}
	return localRateLimit(cfg)
}

func redisRateLimit(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		window := time.Now().UnixMilli() / cfg.RateLimitWindow.Milliseconds()
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take the API with it
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, cfg.RateLimitWindow)
		}

		if count > int64(cfg.RateLimitBurst) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(cfg.RateLimitWindow.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func localRateLimit(cfg *config.Config) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limit := rate.Every(cfg.RateLimitWindow / time.Duration(cfg.RateLimitBurst))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(limit, cfg.RateLimitBurst)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
