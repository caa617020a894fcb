package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CreativeZee/local-hub-replicator/internal/cache"
	"github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
)

// RateLimit enforces a fixed-window per-IP limit backed by Redis.
// When Redis is down the limiter fails open: availability over strict
// enforcement.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := cache.Client()
		if client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, window)
		}

		if count > int64(maxRequests) {
			apiErr := &errors.APIError{
				Code:    errors.ErrRateLimited,
				Message: "too many requests",
			}
			c.AbortWithStatusJSON(apiErr.Code.StatusCode(), gin.H{"error": apiErr})
			return
		}
		c.Next()
	}
}
