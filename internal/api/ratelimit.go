package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"gymwell/gym-app/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// LimitStore counts hits per key within a fixed window.
type LimitStore interface {
	// Hit increments key and returns the count in the current window and the
	// time left until it resets.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type redisLimitStore struct {
	client *redis.Client
}

func NewRedisLimitStore(client *redis.Client) LimitStore {
	return &redisLimitStore{client: client}
}

func (s *redisLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	// First hit opens the window.
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, err
		}
		return count, window, nil
	}
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return count, window, err
	}
	if ttl < 0 {
		// Key lost its expiry, reopen the window.
		_ = s.client.Expire(ctx, key, window).Err()
		ttl = window
	}
	return count, ttl, nil
}

type RateLimiter struct {
	store   LimitStore
	metrics *metrics.Manager
}

func NewRateLimiter(store LimitStore, m *metrics.Manager) *RateLimiter {
	return &RateLimiter{store: store, metrics: m}
}

// Limit allows limit requests per client IP and window. Store failures let
// the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, ttl, err := rl.store.Hit(c.Request.Context(), key, window)
		if err != nil {
			log.Warnf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			if rl.metrics != nil {
				rl.metrics.CounterRateLimited.Inc()
			}
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			abortWithError(c, http.StatusTooManyRequests, "too many requests, try again later")
			return
		}
		c.Next()
	}
}
