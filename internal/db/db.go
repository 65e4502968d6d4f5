package db

import (
	"context" // Context for the liveness ping
	"fmt"     // DSN formatting

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver for GORM
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // PostgreSQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger levels

	"food_ordering/internal/config" // Application configuration
	"food_ordering/internal/domain" // Importing domain models
)

// Supported values of DB_DRIVER
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Dialector builds the GORM dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case DriverMySQL, "":
		port := cfg.DBPort
		if port == "" {
			port = "3306"
		}
		// Data Source Name (DSN) for MySQL connection
		dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + port + ")/" + cfg.DBName + "?parseTime=true"
		// Skip the version query so an unreachable server does not fail Open
		return mysql.New(mysql.Config{DSN: dsn, SkipInitializeWithVersion: true}), nil
	case DriverPostgres:
		port := cfg.DBPort
		if port == "" {
			port = "5432"
		}
		sslMode := "disable"
		if cfg.DBSSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, port, cfg.DBUser, cfg.DBPassword, cfg.DBName, sslMode)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Open creates the storage client without requiring the server to be up.
// The pool connects lazily; use Ping to check liveness.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	level := logger.Warn // Only slow queries and errors by default
	if cfg.IsProd {
		level = logger.Error
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(level),
		TranslateError:         true, // Map unique violations to gorm.ErrDuplicatedKey
		DisableAutomaticPing:   true, // Connectivity is checked by Ping
		SkipDefaultTransaction: true, // Single statements are already atomic
	})
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == DriverSQLite {
		// SQLite allows one writer; a single connection serialises access
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

// Ping checks that the store answers a trivial query
func Ping(ctx context.Context, gdb *gorm.DB) error {
	var ok int
	return gdb.WithContext(ctx).Raw("SELECT 1").Scan(&ok).Error
}

// Migrate performs automatic migration for the database schema
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := gdb.AutoMigrate(&domain.User{}, &domain.MenuItem{}, &domain.Order{}); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
