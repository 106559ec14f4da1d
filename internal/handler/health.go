package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthProbeTimeout = 3 * time.Second

// Health reports whether Postgres and Redis are reachable. Degraded
// dependencies turn the response into a 503 so load balancers can pull
// the instance.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
		defer cancel()

		checks := gin.H{
			"postgres": "up",
			"redis":    "up",
		}
		healthy := true

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["postgres"] = "down"
			healthy = false
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			// Parked jobs mean PDFs or mails are silently not going out;
			// surface the backlog where an operator will see it.
			parked := gin.H{}
			for _, queue := range []string{worker.QueueInvoicePDF, worker.QueueEmail} {
				if n, err := worker.DeadLetterCount(ctx, rdb, queue); err == nil {
					parked[queue] = n
				}
			}
			checks["dead_letter"] = parked
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		checks["healthy"] = healthy
		c.JSON(code, checks)
	}
}
