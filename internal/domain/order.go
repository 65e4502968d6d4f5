package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order Model. MenuID is a plain reference without a foreign key, so it may
// dangle once the menu item is deleted.
type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`                                 // Primary key
	UserID     uint            `gorm:"index;not null" json:"user_id"`                        // Owning user
	MenuID     uint            `gorm:"index;not null" json:"menu_id"`                        // Ordered menu item
	Quantity   int             `gorm:"not null;default:1" json:"quantity"`                   // Units ordered
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`       // Price at purchase
	Status     OrderStatus     `gorm:"size:16;index;not null;default:Pending" json:"status"` // Lifecycle status
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`                              // Placement time
}

// OrderView is an order joined with its (possibly deleted) menu item
type OrderView struct {
	ID         uint                `json:"id"`
	Status     OrderStatus         `json:"status"`
	Quantity   int                 `json:"quantity"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	FoodName   *string             `json:"food_name"`
	Price      decimal.NullDecimal `json:"price"`
	ImageURL   *string             `json:"image_url"`
	CreatedAt  time.Time           `json:"created_at"`
}

// TransactionView is a settled order joined with its user and menu item
type TransactionView struct {
	ID         uint            `json:"id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UserName   string          `json:"user_name"`
	FoodName   string          `json:"food_name"`
}
