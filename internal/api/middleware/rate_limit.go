package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/pkg/redis"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// RateLimit limits requests per client IP and route using a Redis fixed
// window. A nil rdb or a Redis error lets the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
