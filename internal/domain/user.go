package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// Roles a user can hold
const (
	RoleUser  = "user"  // Regular customer
	RoleAdmin = "admin" // Administrator
)

// User Model
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                                // Primary key
	Name      string          `gorm:"not null" json:"name"`                                // Display name
	Email     string          `gorm:"size:191;uniqueIndex;not null" json:"email"`          // Unique email
	Password  string          `gorm:"not null" json:"-"`                                   // Hashed password
	Role      string          `gorm:"size:16;not null;default:user" json:"role"`           // Role: user or admin
	Wallet    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"wallet"` // Wallet balance
	CreatedAt time.Time       `json:"created_at"`                                          // Signup time
}

// IsValidRole reports whether role is one of the known roles
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
