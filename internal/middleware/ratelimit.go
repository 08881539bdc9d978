package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a Redis fixed-window counter keyed by client IP and route.
// A nil client or a Redis failure lets the request through.
func RateLimit(rdb *redis.Client, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", scope, c.ClientIP())
		if !allow(c, rdb, key, limit, window) {
			return
		}

		c.Next()
	}
}

// AuthRateLimit throttles the login wizard endpoints. The key mixes in the
// submitted email so one client hammering a single account is cut off without
// locking out the rest of the gym behind the same NAT.
func AuthRateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:auth:%s:%s", c.ClientIP(), peekEmail(c))
		if !allow(c, rdb, key, limit, window) {
			return
		}

		c.Next()
	}
}

func allow(c *gin.Context, rdb *redis.Client, key string, limit int, window time.Duration) bool {
	ctx := c.Request.Context()

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		// Degrade to passthrough on Redis failure.
		return true
	}

	if count == 1 {
		rdb.Expire(ctx, key, window)
	}

	if count > int64(limit) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   "too many requests, please wait before trying again",
		})
		c.Abort()
		return false
	}

	return true
}

// peekEmail reads the email field from the JSON body without consuming it.
func peekEmail(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 4096))
	c.Request.Body = io.NopCloser(io.MultiReader(strings.NewReader(string(body)), c.Request.Body))
	if err != nil {
		return ""
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return strings.ToLower(strings.TrimSpace(payload.Email))
}
