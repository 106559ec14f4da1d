package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiter caps requests per client IP using a fixed window counter
// in Redis (INCR + EXPIRE on first hit). Counters live in Redis so the
// limit holds across restarts and replicas. If Redis is unreachable the
// limiter fails open; availability beats throttling here.
func RateLimiter(rdb *redis.Client, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if n == 1 {
			rdb.Expire(ctx, key, window)
		}
		if n > limit {
			ttl, _ := rdb.TTL(ctx, key).Result()
			if ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Too many requests. Try again in a moment."))
			return
		}
		c.Next()
	}
}
