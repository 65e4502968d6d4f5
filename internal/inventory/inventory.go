// Package inventory owns the menu catalog and its stock counts. Stock only
// ever moves through a compare-and-decrement inside the order placement
// transaction, which keeps quantities non-negative under concurrent orders.
package inventory

import (
	"context" // Request scoped context
	"errors"  // Error inspection
	"strings" // Input trimming
	"time"    // Log timestamps

	"food_ordering/internal/domain" // Importing domain models
	"food_ordering/internal/utils"  // Cache helpers

	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// Controller manages menu items and places orders against their stock
type Controller struct {
	db  *gorm.DB      // Storage client
	rdb *redis.Client // Optional read cache
}

// NewController creates an inventory controller; rdb may be nil
func NewController(db *gorm.DB, rdb *redis.Client) *Controller {
	return &Controller{db: db, rdb: rdb}
}

// ItemInput carries the editable fields of a menu item
type ItemInput struct {
	Name     string          // Item name
	Category string          // Menu category
	Price    decimal.Decimal // Current price
	ImageURL string          // Image reference, empty for none
	Quantity int             // Units in stock
}

// validate trims and checks the input
func (in *ItemInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" || in.Category == "" {
		return domain.ErrMissingFields.WithMessage("Missing required fields")
	}
	if in.Price.IsNegative() || !in.Price.Equal(in.Price.Round(2)) {
		return domain.ErrInvalidPrice
	}
	if in.Quantity < 0 {
		return domain.ErrInvalidStock
	}
	return nil
}

func (in ItemInput) imageRef() *string {
	if in.ImageURL == "" {
		return nil
	}
	s := in.ImageURL
	return &s
}

// ListMenu returns every menu item, newest first
func (c *Controller) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	items := []domain.MenuItem{}
	if found, err := utils.GetCache(ctx, c.rdb, utils.MenuCacheKey, &items); err == nil && found {
		return items, nil
	}
	version, verErr := utils.CacheVersion(ctx, c.rdb, utils.MenuCacheKey)
	if err := c.db.WithContext(ctx).Order("id desc").Find(&items).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Menu fetch failed")
		return nil, domain.StorageError(err)
	}
	if verErr == nil {
		_, _ = utils.SetCacheIfCurrent(ctx, c.rdb, utils.MenuCacheKey, version, items, utils.CacheTTL)
	}
	return items, nil
}

// GetItem returns a single menu item
func (c *Controller) GetItem(ctx context.Context, id uint) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := c.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return &item, nil
}

// CreateItem adds a menu item
func (c *Controller) CreateItem(ctx context.Context, in ItemInput) (*domain.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := domain.MenuItem{
		Name:     in.Name,
		Category: in.Category,
		Price:    in.Price.Round(2),
		ImageURL: in.imageRef(),
		Quantity: in.Quantity,
	}
	if err := c.db.WithContext(ctx).Create(&item).Error; err != nil {
		logrus.WithFields(logrus.Fields{"name": in.Name, "error": err.Error()}).Error("Menu insert failed")
		return nil, domain.StorageError(err)
	}
	c.invalidateMenu(ctx)
	logrus.WithFields(logrus.Fields{"menu_id": item.ID, "name": item.Name}).Info("Menu item created")
	return &item, nil
}

// UpdateItem overwrites every editable field of a menu item, including the
// stock count. Existing orders keep the price they were placed at.
func (c *Controller) UpdateItem(ctx context.Context, id uint, in ItemInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	res := c.db.WithContext(ctx).Model(&domain.MenuItem{}).Where("id = ?", id).Updates(map[string]any{
		"name":      in.Name,
		"category":  in.Category,
		"price":     in.Price.Round(2),
		"image_url": in.imageRef(),
		"quantity":  in.Quantity,
	})
	if res.Error != nil {
		logrus.WithFields(logrus.Fields{"menu_id": id, "error": res.Error.Error()}).Error("Menu update failed")
		return domain.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero rows when nothing changed, so confirm the row is gone
		var exists int64
		if err := c.db.WithContext(ctx).Model(&domain.MenuItem{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return domain.StorageError(err)
		}
		if exists == 0 {
			return domain.ErrItemNotFound.WithMessage("Item not found")
		}
	}
	c.invalidateMenu(ctx)
	logrus.WithField("menu_id", id).Info("Menu item updated")
	return nil
}

// DeleteItem removes a menu item. Orders referencing it are kept.
func (c *Controller) DeleteItem(ctx context.Context, id uint) error {
	res := c.db.WithContext(ctx).Delete(&domain.MenuItem{}, id)
	if res.Error != nil {
		logrus.WithFields(logrus.Fields{"menu_id": id, "error": res.Error.Error()}).Error("Menu delete failed")
		return domain.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound.WithMessage("Item not found")
	}
	c.invalidateMenu(ctx)
	logrus.WithField("menu_id", id).Info("Menu item deleted")
	return nil
}

// PlaceOrder reserves one unit of the menu item and records a Pending order
// for it. The decrement, the price snapshot and the insert run in a single
// transaction: either stock drops by one and exactly one order exists, or
// nothing changes.
func (c *Controller) PlaceOrder(ctx context.Context, userID, menuID uint) (*domain.Order, error) {
	var order domain.Order
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner int64
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Count(&owner).Error; err != nil {
			return domain.StorageError(err)
		}
		if owner == 0 {
			return domain.ErrUserNotFound
		}

		// Compare-and-decrement: only succeeds while stock remains
		res := tx.Model(&domain.MenuItem{}).
			Where("id = ? AND quantity > 0", menuID).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return domain.StorageError(res.Error)
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&domain.MenuItem{}).Where("id = ?", menuID).Count(&exists).Error; err != nil {
				return domain.StorageError(err)
			}
			if exists == 0 {
				return domain.ErrItemNotFound
			}
			return domain.ErrOutOfStock
		}

		// The row is now write-locked by this transaction, so the price read
		// here is the price the unit was reserved at.
		var item domain.MenuItem
		if err := tx.Select("id", "price").First(&item, menuID).Error; err != nil {
			return domain.Wrap(domain.ErrOrderCreationFailed, err)
		}

		order = domain.Order{
			UserID:     userID,
			MenuID:     menuID,
			Quantity:   1,
			TotalPrice: item.Price.Round(2),
			Status:     domain.StatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return domain.Wrap(domain.ErrOrderCreationFailed, err) // Rolls back the decrement
		}
		return nil
	})
	if err != nil {
		fields := logrus.Fields{"user_id": userID, "menu_id": menuID}
		switch domain.KindOf(err) {
		case domain.KindStorage:
			fields["error"] = err.Error()
			logrus.WithFields(fields).Error("Order placement failed")
		default:
			logrus.WithFields(fields).Warnf("Order rejected: %s", domain.MessageOf(err))
		}
		return nil, err
	}
	c.invalidateMenu(ctx)
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,                          // User ID
		"menu_id":   menuID,                          // Menu item ID
		"order_id":  order.ID,                        // New order ID
		"amount":    order.TotalPrice.String(),       // Snapshot price
		"type":      "order",                         // Transaction type
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Order placed")
	return &order, nil
}

func (c *Controller) invalidateMenu(ctx context.Context) {
	if err := utils.DeleteCache(ctx, c.rdb, utils.MenuCacheKey); err != nil {
		logrus.Warnf("menu cache invalidation failed: %v", err)
	}
}
