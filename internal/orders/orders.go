// Package orders implements the order lifecycle: status updates, bulk
// payment, checkout against the wallet, deletion and the per-user listings.
//
// Status changes are deliberately permissive. Any recognised status may be
// written over any other; only membership in the status set is checked.
package orders

import (
	"context" // Request scoped context
	"errors"  // Error inspection
	"fmt"     // Message formatting
	"strings" // Case folding
	"time"    // Log timestamps

	"food_ordering/internal/domain" // Importing domain models
	"food_ordering/internal/wallet" // Wallet debit inside checkout

	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row locking
)

// Manager runs lifecycle operations against the order table
type Manager struct {
	db      *gorm.DB           // Storage client
	wallets *wallet.Controller // Used to invalidate cached balances after checkout
}

// NewManager creates an order lifecycle manager; wallets may be nil
func NewManager(db *gorm.DB, wallets *wallet.Controller) *Manager {
	return &Manager{db: db, wallets: wallets}
}

// orderViewColumns are the columns of domain.OrderView
const orderViewColumns = "o.id, o.status, o.quantity, o.total_price, m.name AS food_name, m.price AS price, m.image_url AS image_url, o.created_at"

// ListAll returns the full order history of a user, newest first. Orders
// whose menu item was deleted come back with null food fields.
func (m *Manager) ListAll(ctx context.Context, userID uint) ([]domain.OrderView, error) {
	return m.list(ctx, userID, nil)
}

// ListActive returns the user's orders that are still in progress or paid
func (m *Manager) ListActive(ctx context.Context, userID uint) ([]domain.OrderView, error) {
	return m.list(ctx, userID, domain.ActiveStatuses)
}

func (m *Manager) list(ctx context.Context, userID uint, statuses []domain.OrderStatus) ([]domain.OrderView, error) {
	query := m.db.WithContext(ctx).Table("orders AS o").
		Select(orderViewColumns).
		Joins("LEFT JOIN menu_items m ON o.menu_id = m.id").
		Where("o.user_id = ?", userID)
	if statuses != nil {
		query = query.Where("o.status IN ?", domain.StatusStrings(statuses))
	}
	views := []domain.OrderView{}
	if err := query.Order("o.created_at DESC").Order("o.id DESC").Scan(&views).Error; err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Order list failed")
		return nil, domain.StorageError(err)
	}
	for i := range views {
		views[i].Status = normalize(views[i].Status)
	}
	return views, nil
}

// normalize maps stored legacy spellings onto canonical statuses
func normalize(s domain.OrderStatus) domain.OrderStatus {
	if st, ok := domain.ParseStatus(string(s)); ok {
		return st
	}
	return s
}

// SetStatus overwrites the status of one order
func (m *Manager) SetStatus(ctx context.Context, orderID uint, raw string) (domain.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", domain.ErrInvalidStatus.WithMessage("Missing status")
	}
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return "", domain.ErrInvalidStatus
	}
	res := m.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("status", string(status))
	if res.Error != nil {
		logrus.WithFields(logrus.Fields{"order_id": orderID, "error": res.Error.Error()}).Error("Order status update failed")
		return "", domain.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero rows when the status was already set
		var exists int64
		if err := m.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", orderID).Count(&exists).Error; err != nil {
			return "", domain.StorageError(err)
		}
		if exists == 0 {
			return "", domain.ErrOrderNotFound
		}
	}
	logrus.WithFields(logrus.Fields{"order_id": orderID, "status": status}).Info("Order status updated")
	return status, nil
}

// MarkAllPaid moves every payable order of the user to Paid and returns how
// many rows changed. Zero is not an error.
func (m *Manager) MarkAllPaid(ctx context.Context, userID uint) (int64, error) {
	n, err := markPaid(m.db.WithContext(ctx), userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Mark paid failed")
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "updated": n}).Info("Orders marked paid")
	return n, nil
}

func markPaid(tx *gorm.DB, userID uint) (int64, error) {
	res := tx.Model(&domain.Order{}).
		Where("user_id = ? AND status IN ?", userID, domain.StatusStrings(domain.PayableStatuses)).
		UpdateColumn("status", string(domain.StatusPaid))
	if res.Error != nil {
		return 0, domain.StorageError(res.Error)
	}
	return res.RowsAffected, nil
}

// CheckoutResult reports what a checkout settled
type CheckoutResult struct {
	Paid  int64           `json:"paid"`  // Orders moved to Paid
	Total decimal.Decimal `json:"total"` // Amount debited
}

// Checkout pays for every payable order of the user from their wallet. The
// payable rows are locked on read and each is moved to Paid by a
// conditional update, so only orders this call actually settled are
// charged. The debit and the status changes commit together.
func (m *Manager) Checkout(ctx context.Context, userID uint) (*CheckoutResult, error) {
	var result CheckoutResult
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payable []domain.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "total_price").
			Where("user_id = ? AND status IN ?", userID, domain.StatusStrings(domain.PayableStatuses)).
			Order("id").
			Find(&payable).Error; err != nil {
			return domain.StorageError(err)
		}
		total := decimal.Zero
		for _, o := range payable {
			// An order paid or cancelled since the read no longer matches
			res := tx.Model(&domain.Order{}).
				Where("id = ? AND status IN ?", o.ID, domain.StatusStrings(domain.PayableStatuses)).
				UpdateColumn("status", string(domain.StatusPaid))
			if res.Error != nil {
				return domain.StorageError(res.Error)
			}
			if res.RowsAffected == 1 {
				result.Paid++
				total = total.Add(o.TotalPrice)
			}
		}
		if result.Paid == 0 {
			return domain.ErrNoneFound.WithMessage("No unpaid orders found for this user.")
		}
		total = total.Round(2)
		if total.IsPositive() {
			if err := wallet.DebitWith(tx, userID, total); err != nil {
				return err // Rolls back the status changes
			}
		}
		result.Total = total
		return nil
	})
	if err != nil {
		fields := logrus.Fields{"user_id": userID}
		if domain.KindOf(err) == domain.KindStorage {
			fields["error"] = err.Error()
			logrus.WithFields(fields).Error("Checkout failed")
		} else {
			logrus.WithFields(fields).Warnf("Checkout rejected: %s", domain.MessageOf(err))
		}
		return nil, err
	}
	if m.wallets != nil {
		m.wallets.Invalidate(ctx, userID)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,                          // User ID
		"paid":      result.Paid,                     // Orders settled
		"amount":    result.Total.String(),           // Amount debited
		"type":      "checkout",                      // Transaction type
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Checkout completed")
	return &result, nil
}

// DeleteByStatus removes all orders of the user whose status matches,
// ignoring case. Nothing matching is reported as ErrNoneFound.
func (m *Manager) DeleteByStatus(ctx context.Context, userID uint, raw string) (int64, error) {
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return 0, domain.ErrInvalidStatus
	}
	labels := []string{strings.ToLower(string(status))}
	if status == domain.StatusPending {
		labels = append(labels, strings.ToLower(string(domain.StatusActive)))
	}
	res := m.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(status) IN ?", userID, labels).
		Delete(&domain.Order{})
	if res.Error != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "status": status, "error": res.Error.Error()}).Error("Order delete failed")
		return 0, domain.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrNoneFound.WithMessage(fmt.Sprintf("No %s orders found for this user.", strings.ToLower(string(status))))
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "status": status, "deleted": res.RowsAffected}).Info("Orders deleted")
	return res.RowsAffected, nil
}

// DeleteOrder removes a single order
func (m *Manager) DeleteOrder(ctx context.Context, orderID uint) error {
	res := m.db.WithContext(ctx).Delete(&domain.Order{}, orderID)
	if res.Error != nil {
		logrus.WithFields(logrus.Fields{"order_id": orderID, "error": res.Error.Error()}).Error("Order delete failed")
		return domain.StorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	logrus.WithField("order_id", orderID).Info("Order deleted")
	return nil
}

// Get returns a single order
func (m *Manager) Get(ctx context.Context, orderID uint) (*domain.Order, error) {
	var order domain.Order
	err := m.db.WithContext(ctx).First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, domain.StorageError(err)
	}
	order.Status = normalize(order.Status)
	return &order, nil
}
