package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthProbeTimeout = 3 * time.Second

// Health probes Postgres and Redis. 200 when both answer, 503 otherwise,
// with a per-dependency status so the deploy can tell which one is down.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
		defer cancel()

		dbStatus := "connected"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "down"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "down"
		}

		code := http.StatusOK
		overall := "ok"
		if dbStatus != "connected" || redisStatus != "connected" {
			code = http.StatusServiceUnavailable
			overall = "degraded"
		}

		c.JSON(code, gin.H{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
