package api

import (
	"fmt"     // Message formatting
	"strings" // Case folding

	"food_ordering/internal/domain"    // Importing domain models
	"food_ordering/internal/inventory" // Stock controller
	"food_ordering/internal/orders"    // Order lifecycle manager

	"github.com/gin-gonic/gin" // Gin web framework
)

// PlaceOrderRequest represents an order placement request
type PlaceOrderRequest struct {
	UserID uint `json:"user_id"` // Ordering user
	MenuID uint `json:"menu_id"` // Ordered menu item
}

// StatusRequest represents a status update request
type StatusRequest struct {
	Status string `json:"status"` // New status
}

// PlaceOrderHandler reserves stock and creates a Pending order
func PlaceOrderHandler(inv *inventory.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.MenuID == 0 {
			respondMessage(c, "Missing data")
			return
		}
		order, err := inv.PlaceOrder(c.Request.Context(), req.UserID, req.MenuID)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "Order placed successfully!", gin.H{"order": order})
	}
}

// GetOrderHandler returns a single order
func GetOrderHandler(mgr *orders.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		order, err := mgr.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "", gin.H{"order": order})
	}
}

// ListAllOrdersHandler returns a user's full order history
func ListAllOrdersHandler(mgr *orders.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		views, err := mgr.ListAll(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "", gin.H{"orders": views})
	}
}

// ListActiveOrdersHandler returns a user's Pending, Preparing and Paid orders
func ListActiveOrdersHandler(mgr *orders.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		views, err := mgr.ListActive(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "", gin.H{"orders": views})
	}
}

// SetStatusHandler overwrites an order's status
func SetStatusHandler(mgr *orders.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req StatusRequest
		_ = c.ShouldBindJSON(&req) // An unreadable body leaves Status empty
		status, err := mgr.SetStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, fmt.Sprintf("Order marked as %s", status), nil)
	}
}

// MarkPaidHandler moves a user's payable orders to Paid
func MarkPaidHandler(mgr *orders.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		n, err := mgr.MarkAllPaid(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "", gin.H{"updated": n})
	}
}

// CheckoutHandler pays a user's open orders from their wallet
func CheckoutHandler(mgr *orders.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		res, err := mgr.Checkout(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, fmt.Sprintf("Paid %d orders.", res.Paid), gin.H{"paid": res.Paid, "total": res.Total})
	}
}

// DeleteOrderHandler removes one order
func DeleteOrderHandler(mgr *orders.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := mgr.DeleteOrder(c.Request.Context(), id); err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "Order deleted successfully", nil)
	}
}

// DeleteByStatusHandler removes a user's orders in the given status
func DeleteByStatusHandler(mgr *orders.Manager, status domain.OrderStatus) gin.HandlerFunc {
	label := string(status)
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		n, err := mgr.DeleteByStatus(c.Request.Context(), userID, label)
		if err != nil {
			respondError(c, err, gin.H{"deleted": 0})
			return
		}
		respondOK(c, fmt.Sprintf("%d %s orders deleted for user %d.", n, strings.ToLower(label), userID), gin.H{"deleted": n})
	}
}
