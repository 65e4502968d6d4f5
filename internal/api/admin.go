package api

import (
	"strconv" // Query parameter parsing

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point money

	"food_ordering/internal/accounts"  // Account service
	"food_ordering/internal/reporting" // Transaction reporting
)

// UpdateUserRequest represents an admin edit of a user. Both name keys are
// accepted since older clients send user_name.
type UpdateUserRequest struct {
	Name     string              `json:"name"`      // Display name
	UserName string              `json:"user_name"` // Legacy display name key
	Role     string              `json:"role"`      // user or admin
	Wallet   decimal.NullDecimal `json:"wallet"`    // New balance
}

// ListUsersHandler lists every user, newest first
func ListUsersHandler(svc *accounts.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "", gin.H{"users": users})
	}
}

// UpdateUserHandler overwrites a user's name, role and balance
func UpdateUserHandler(svc *accounts.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req UpdateUserRequest
		// Every field is required
		if err := c.ShouldBindJSON(&req); err != nil || !req.Wallet.Valid || req.Role == "" {
			respondMessage(c, "All fields required")
			return
		}
		name := req.Name
		if name == "" {
			name = req.UserName
		}
		in := accounts.UserUpdate{Name: name, Role: req.Role, Wallet: req.Wallet.Decimal}
		if err := svc.UpdateUser(c.Request.Context(), id, in); err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "User updated", nil)
	}
}

// DeleteUserHandler removes a user together with their orders
func DeleteUserHandler(svc *accounts.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteUser(c.Request.Context(), id); err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "User deleted successfully", nil)
	}
}

// ListTransactionsHandler returns paid and completed orders with their
// user and food names. page and page_size are optional.
func ListTransactionsHandler(rep *reporting.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))          // Page number
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0")) // Page size
		list, err := rep.Transactions(c.Request.Context(), reporting.Page{Page: page, PageSize: pageSize})
		if err != nil {
			respondError(c, err, nil)
			return
		}
		payload := gin.H{"transactions": list.Transactions, "total": list.Total}
		if list.Page > 0 {
			payload["page"] = list.Page
			payload["page_size"] = list.PageSize
			payload["total_pages"] = list.TotalPages
		}
		respondOK(c, "", payload)
	}
}

// ClearTransactionsHandler deletes every paid and completed order
func ClearTransactionsHandler(rep *reporting.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := rep.ClearTransactions(c.Request.Context())
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "Deleted "+strconv.FormatInt(n, 10)+" transaction logs.", gin.H{"deleted": n})
	}
}
