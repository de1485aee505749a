package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// KeyPrefix namespaces the Redis keys
	KeyPrefix string
}

// RateLimiter is a fixed-window per-user limiter backed by Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	log    zerolog.Logger
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// NewUploadRateLimiter limits recipe submissions per user
func NewUploadRateLimiter(redisClient *redis.Client, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_upload",
	}, log)
}

// Allow counts one request for the authenticated user and sets the
// X-RateLimit headers. When it returns false the response has already been
// written. Redis failures are logged and the request is let through.
func (rl *RateLimiter) Allow(c *gin.Context) bool {
	userID := UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return false
	}

	allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID)
	if err != nil {
		rl.log.Warn().Err(err).Str("user_id", userID).Msg("Rate limit check failed")
		c.Header("X-RateLimit-Error", "rate limit check failed")
		return true
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate limit exceeded",
			"message":     fmt.Sprintf("You have exceeded the rate limit of %d uploads per %v", rl.config.Limit, rl.config.Window),
			"retry_after": int(resetTime.Sub(rl.now()).Seconds()),
		})
		return false
	}
	return true
}

func (rl *RateLimiter) windowKey(userID string, now time.Time) (string, time.Time) {
	windowStart := now.Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())
	return key, windowStart.Add(rl.config.Window)
}

// IsAllowed counts one request for userID and reports whether it fits the
// window. Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	key, resetTime := rl.windowKey(userID, rl.now())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := max(rl.config.Limit-count, 0)
	return count <= rl.config.Limit, remaining, resetTime, nil
}

// Remaining returns how many requests userID has left without counting one
func (rl *RateLimiter) Remaining(ctx context.Context, userID string) (int, time.Time, error) {
	key, resetTime := rl.windowKey(userID, rl.now())

	count, err := rl.redis.Get(ctx, key).Int()
	if err == redis.Nil {
		return rl.config.Limit, resetTime, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}
	return max(rl.config.Limit-count, 0), resetTime, nil
}
