package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // Database driver: mysql, postgres or sqlite
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	DBSSL      bool   // Use TLS for postgres connections
	DBPath     string // SQLite database file
	JWTSecret  string // JWT secret key; empty disables token auth
	RedisAddr  string // Redis server address; empty disables caching
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	ImagesDir  string // Directory for uploaded images
	LogLevel   string // Logrus level name
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "3000"),     // Application port
		DBDriver:   getEnv("DB_DRIVER", "mysql"),   // Database driver
		DBUser:     os.Getenv("DB_USER"),           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"), // Database host
		DBPort:     os.Getenv("DB_PORT"),           // Database port
		DBName:     os.Getenv("DB_NAME"),           // Database name
		DBSSL:      os.Getenv("DB_SSL") == "true",  // Postgres TLS
		DBPath:     getEnv("DB_PATH", "food.db"),   // SQLite file
		JWTSecret:  os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:  os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:    redisDB,                        // Redis database number
		ImagesDir:  getEnv("IMAGES_DIR", "images"), // Upload directory
		LogLevel:   getEnv("LOG_LEVEL", "info"),    // Log level
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// getEnv returns the variable's value or fallback when unset or empty
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
