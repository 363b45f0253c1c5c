package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings Postgres and Redis with a short deadline. A degraded
// dependency flips the response to 503 so the terminal can warn the operator
// before a sale fails mid-commit. No credentials or internals in the body.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		database := "up"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			database = "down"
		}

		cache := "up"
		if rdb.Ping(ctx).Err() != nil {
			cache = "down"
		}

		status := http.StatusOK
		if database != "up" || cache != "up" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"database": database,
			"redis":    cache,
		})
	}
}
