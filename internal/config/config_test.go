package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "DB_HOST", "DB_PATH", "IMAGES_DIR", "LOG_LEVEL", "REDIS_DB", "IS_PROD", "DB_SSL"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "127.0.0.1", cfg.DBHost)
	assert.Equal(t, "food.db", cfg.DBPath)
	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.IsProd)
	assert.False(t, cfg.DBSSL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_SSL", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.Equal(t, "8081", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.DBSSL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.True(t, cfg.IsProd)
}
