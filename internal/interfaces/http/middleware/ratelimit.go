package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quokkalist/internal/shared/utils"
)

// Limiter is the slice of the rate limiter the middleware needs.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit rejects callers exceeding limit requests per window, keyed by
// authenticated user when available, client IP otherwise.
func RateLimit(limiter Limiter, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := name + ":" + UserID(c)
		if UserID(c) == "" {
			key = name + ":" + c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err == nil && !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
