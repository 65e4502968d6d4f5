package main

import (
	"context" // context package is needed for startup pings
	"os"      // For the images directory
	"time"    // Ping timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging

	"food_ordering/internal/api"    // Custom package for API handlers
	"food_ordering/internal/config" // Custom package for configuration
	"food_ordering/internal/db"     // Custom package for storage
	"food_ordering/internal/utils"  // Custom package for cache helpers
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if the DSN is unusable
	}

	// Schema bootstrap is best-effort so the server still starts when the
	// store is briefly unavailable; /health reports the outage
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.Ping(ctx, gdb); err != nil {
		logrus.Errorf("database not reachable: %v", err)
	} else if err := db.Migrate(gdb); err != nil {
		logrus.Errorf("migration failed: %v", err)
	}
	cancel()

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := utils.PingCache(ctx, redisClient); err != nil {
			logrus.Warnf("Redis not reachable, cache reads will fall through: %v", err)
		}
		cancel()
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		logrus.Errorf("cannot create images dir %s: %v", cfg.ImagesDir, err)
	}

	r := api.NewRouter(api.Deps{DB: gdb, Redis: redisClient, Config: cfg})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
