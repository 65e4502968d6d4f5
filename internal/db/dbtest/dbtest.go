// Package dbtest provides an in-memory store for tests.
package dbtest

import (
	"testing"

	"food_ordering/internal/db"
	"food_ordering/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated in-memory SQLite database that lives for the test.
// The pool is capped at one connection so every goroutine sees the same
// in-memory database and writers are serialised like row locks would.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// Money parses a decimal literal, failing the test on bad input
func Money(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// SeedUser inserts a user with the given wallet balance
func SeedUser(t testing.TB, gdb *gorm.DB, name, wallet string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: name + "@example.com", Password: "x", Role: domain.RoleUser, Wallet: Money(t, wallet)}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedItem inserts a menu item with the given price and stock
func SeedItem(t testing.TB, gdb *gorm.DB, name, price string, qty int) *domain.MenuItem {
	t.Helper()
	m := &domain.MenuItem{Name: name, Category: "Meals", Price: Money(t, price), Quantity: qty}
	if err := gdb.Create(m).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return m
}

// SeedOrder inserts an order directly, bypassing stock checks
func SeedOrder(t testing.TB, gdb *gorm.DB, userID, menuID uint, price string, status domain.OrderStatus) *domain.Order {
	t.Helper()
	o := &domain.Order{UserID: userID, MenuID: menuID, Quantity: 1, TotalPrice: Money(t, price), Status: status}
	if err := gdb.Create(o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}
