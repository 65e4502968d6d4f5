package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem Model
type MenuItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                               // Primary key
	Name      string          `gorm:"not null" json:"name"`                               // Item name
	Category  string          `gorm:"not null" json:"category"`                           // Menu category
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"` // Current price
	ImageURL  *string         `json:"image_url"`                                          // Uploaded image reference
	Quantity  int             `gorm:"not null;default:0" json:"quantity"`                 // Units in stock
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}
