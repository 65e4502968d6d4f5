// Package wallet keeps user balances consistent under concurrent mutation.
// Every balance change is a single conditional UPDATE, so no caller can
// observe or produce a negative balance.
package wallet

import (
	"context" // Request scoped context
	"errors"  // Error inspection
	"time"    // Log timestamps

	"food_ordering/internal/domain" // Importing domain models
	"food_ordering/internal/utils"  // Cache helpers

	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// MaxAmount is the largest value a decimal(12,2) column can hold
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Controller credits, debits and reads wallet balances
type Controller struct {
	db  *gorm.DB      // Storage client
	rdb *redis.Client // Optional read cache
}

// NewController creates a wallet controller; rdb may be nil
func NewController(db *gorm.DB, rdb *redis.Client) *Controller {
	return &Controller{db: db, rdb: rdb}
}

// ValidateAmount accepts positive amounts with at most two decimal places
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return domain.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return domain.ErrInvalidAmount // Sub-cent precision
	}
	return nil
}

// Credit atomically adds amount to the user's wallet
func (w *Controller) Credit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	res := w.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		UpdateColumn("wallet", gorm.Expr("wallet + ?", amount))
	if res.Error != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,            // User ID
			"amount":  amount.String(),   // Credit amount
			"error":   res.Error.Error(), // Error message
		}).Error("Wallet credit failed")
		return domain.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	w.invalidate(ctx, userID)
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,                          // User ID
		"amount":    amount.String(),                 // Credit amount
		"type":      "credit",                        // Transaction type
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Wallet credited")
	return nil
}

// Debit atomically subtracts amount when the balance covers it. A missing
// user and a short balance both report ErrInsufficientFunds: the affected
// row count cannot tell them apart without a racy second read.
func (w *Controller) Debit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if err := DebitWith(w.db.WithContext(ctx), userID, amount); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,          // User ID
				"amount":  amount.String(), // Debit amount
			}).Warn("Wallet debit rejected")
		} else {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,          // User ID
				"amount":  amount.String(), // Debit amount
				"error":   err.Error(),     // Error message
			}).Error("Wallet debit failed")
		}
		return err
	}
	w.invalidate(ctx, userID)
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,                          // User ID
		"amount":    amount.String(),                 // Debit amount
		"type":      "debit",                         // Transaction type
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Wallet debited")
	return nil
}

// DebitWith runs the compare-and-debit statement on tx, which may be a
// transaction owned by the caller. The amount must already be validated.
func DebitWith(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	res := tx.Model(&domain.User{}).
		Where("id = ? AND wallet >= ?", userID, amount).
		UpdateColumn("wallet", gorm.Expr("wallet - ?", amount))
	if res.Error != nil {
		return domain.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// GetBalance returns the user's current balance, served from cache when possible
func (w *Controller) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	key := utils.WalletCacheKey(userID)
	var cached decimal.Decimal
	if found, err := utils.GetCache(ctx, w.rdb, key, &cached); err == nil && found {
		return cached, nil
	}
	version, verErr := utils.CacheVersion(ctx, w.rdb, key) // Taken before the read so a racing write voids the fill
	var user domain.User
	err := w.db.WithContext(ctx).Select("id", "wallet").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, domain.ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, domain.StorageError(err)
	}
	balance := user.Wallet.Round(2)
	if verErr == nil {
		_, _ = utils.SetCacheIfCurrent(ctx, w.rdb, key, version, balance, utils.CacheTTL)
	}
	return balance, nil
}

// Invalidate drops the cached balance of a user after an out-of-band change
func (w *Controller) Invalidate(ctx context.Context, userID uint) {
	w.invalidate(ctx, userID)
}

func (w *Controller) invalidate(ctx context.Context, userID uint) {
	if err := utils.DeleteCache(ctx, w.rdb, utils.WalletCacheKey(userID)); err != nil {
		logrus.WithField("user_id", userID).Warnf("wallet cache invalidation failed: %v", err)
	}
}
