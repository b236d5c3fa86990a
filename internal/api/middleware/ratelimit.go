package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Llayon/fantasy-autobattler-sub008/pkg/ratelimit"
)

// RateLimitConfig describes one limiter: burst capacity, refill rate in
// tokens per second, and how to key callers.
type RateLimitConfig struct {
	Capacity   int64
	RefillRate int64
	KeyFunc    func(*gin.Context) string
}

// DefaultKeyFunc keys by player when authenticated, by IP otherwise.
func DefaultKeyFunc(c *gin.Context) string {
	if playerID, exists := c.Get("playerId"); exists {
		return fmt.Sprintf("player:%v", playerID)
	}
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

// IPKeyFunc keys by IP address only, for unauthenticated endpoints.
func IPKeyFunc(c *gin.Context) string {
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

// PlayerKeyFunc keys by player id and requires the auth middleware to
// have run first.
func PlayerKeyFunc(c *gin.Context) string {
	if playerID, exists := c.Get("playerId"); exists {
		return fmt.Sprintf("player:%v", playerID)
	}
	return ""
}

// RateLimit creates a limiting middleware with its own bucket set.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	limiter := ratelimit.NewRateLimiter(config.Capacity, config.RefillRate)

	if config.KeyFunc == nil {
		config.KeyFunc = DefaultKeyFunc
	}

	return func(c *gin.Context) {
		key := config.KeyFunc(c)

		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required for rate limiting",
			})
			c.Abort()
			return
		}

		if !limiter.Allow(key) {
			c.Header("X-RateLimit-Limit", strconv.FormatInt(config.Capacity, 10))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))
			c.Header("Retry-After", "1")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(config.Capacity, 10))

		c.Next()
	}
}

// QueueJoinRateLimit allows a burst of 5 joins, refilling 1 per second.
func QueueJoinRateLimit() gin.HandlerFunc {
	return RateLimit(RateLimitConfig{
		Capacity:   5,
		RefillRate: 1,
		KeyFunc:    PlayerKeyFunc,
	})
}

// MatchSearchRateLimit bounds polling: a burst of 10 search attempts,
// refilling 2 per second.
func MatchSearchRateLimit() gin.HandlerFunc {
	return RateLimit(RateLimitConfig{
		Capacity:   10,
		RefillRate: 2,
		KeyFunc:    PlayerKeyFunc,
	})
}

// GeneralAPIRateLimit protects the remaining surface per IP or player.
func GeneralAPIRateLimit() gin.HandlerFunc {
	return RateLimit(RateLimitConfig{
		Capacity:   100,
		RefillRate: 10,
		KeyFunc:    DefaultKeyFunc,
	})
}
