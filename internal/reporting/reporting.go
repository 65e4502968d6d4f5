// Package reporting serves the admin view of settled orders.
package reporting

import (
	"context" // Request scoped context

	"food_ordering/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page selects a window of results. A zero Page returns everything.
type Page struct {
	Page     int // 1-based page number
	PageSize int // Rows per page
}

// Normalize clamps the page to valid values
func (p Page) Normalize() Page {
	if p.Page <= 0 {
		return Page{}
	}
	if p.PageSize <= 0 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

// TransactionList is one page of settled orders
type TransactionList struct {
	Transactions []domain.TransactionView `json:"transactions"`          // Rows on this page
	Total        int64                    `json:"total"`                 // Rows across all pages
	Page         int                      `json:"page,omitempty"`        // Current page
	PageSize     int                      `json:"page_size,omitempty"`   // Page size
	TotalPages   int                      `json:"total_pages,omitempty"` // Total pages
}

// Reporter runs read-side joins for the admin transaction log
type Reporter struct {
	db *gorm.DB // Storage client
}

// NewReporter creates a reporter
func NewReporter(db *gorm.DB) *Reporter {
	return &Reporter{db: db}
}

func (r *Reporter) settled(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("orders AS o").
		Joins("JOIN users u ON o.user_id = u.id").
		Joins("JOIN menu_items m ON o.menu_id = m.id").
		Where("o.status IN ?", domain.StatusStrings(domain.SettledStatuses))
}

// Transactions lists Paid and Completed orders with their user and item,
// newest first. Orders whose user or menu item no longer exists are left out.
func (r *Reporter) Transactions(ctx context.Context, page Page) (*TransactionList, error) {
	page = page.Normalize()
	var total int64 // Total transaction count
	if err := r.settled(ctx).Count(&total).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to count transactions")
		return nil, domain.StorageError(err)
	}
	query := r.settled(ctx).
		Select("o.id, o.total_price, o.status, o.created_at, u.name AS user_name, m.name AS food_name").
		Order("o.created_at DESC").Order("o.id DESC")
	if page.Page > 0 {
		query = query.Offset((page.Page - 1) * page.PageSize).Limit(page.PageSize)
	}
	rows := []domain.TransactionView{}
	if err := query.Scan(&rows).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to fetch transactions")
		return nil, domain.StorageError(err)
	}
	list := &TransactionList{Transactions: rows, Total: total}
	if page.Page > 0 {
		list.Page = page.Page
		list.PageSize = page.PageSize
		list.TotalPages = (int(total) + page.PageSize - 1) / page.PageSize // Calculate total pages
	}
	return list, nil
}

// ClearTransactions deletes every Paid and Completed order
func (r *Reporter) ClearTransactions(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status IN ?", domain.StatusStrings(domain.SettledStatuses)).
		Delete(&domain.Order{})
	if res.Error != nil {
		logrus.WithField("error", res.Error.Error()).Error("Failed to clear transactions")
		return 0, domain.StorageError(res.Error)
	}
	logrus.WithField("deleted", res.RowsAffected).Info("Transaction log cleared")
	return res.RowsAffected, nil
}
