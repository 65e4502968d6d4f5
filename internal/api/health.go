package api

import (
	"context"  // Ping deadline
	"net/http" // HTTP status codes
	"time"     // Ping timeout

	"food_ordering/internal/db"    // Storage ping
	"food_ordering/internal/utils" // Cache ping

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// HealthHandler reports liveness of the process and its storage. A cache
// outage is reported but does not fail the check.
func HealthHandler(gdb *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Ping(ctx, gdb); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		cache := "disabled"
		if rdb != nil {
			cache = "up"
			if err := utils.PingCache(ctx, rdb); err != nil {
				cache = "down"
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "db": "up", "cache": cache})
	}
}
