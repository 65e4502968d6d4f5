package api

import (
	"food_ordering/internal/inventory" // Menu and stock controller

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point money
)

// MenuItemRequest represents a create or update request for a menu item
type MenuItemRequest struct {
	Name     string              `json:"name"`      // Item name
	Category string              `json:"category"`  // Menu category
	Price    decimal.NullDecimal `json:"price"`     // Price, required
	ImageURL string              `json:"image_url"` // Optional image reference
	Quantity int                 `json:"quantity"`  // Stock, defaults to 0
}

func (r MenuItemRequest) input() inventory.ItemInput {
	return inventory.ItemInput{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price.Decimal,
		ImageURL: r.ImageURL,
		Quantity: r.Quantity,
	}
}

// bindMenuItem reads the request body; false means a response was written
func bindMenuItem(c *gin.Context) (MenuItemRequest, bool) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Category == "" || !req.Price.Valid {
		respondMessage(c, "Missing required fields")
		return req, false
	}
	return req, true
}

// ListMenuHandler returns every menu item
func ListMenuHandler(inv *inventory.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := inv.ListMenu(c.Request.Context())
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "", gin.H{"menu": items})
	}
}

// GetMenuItemHandler returns one menu item with its current stock
func GetMenuItemHandler(inv *inventory.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		item, err := inv.GetItem(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "", gin.H{"item": item})
	}
}

// CreateMenuItemHandler adds a menu item
func CreateMenuItemHandler(inv *inventory.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindMenuItem(c)
		if !ok {
			return
		}
		item, err := inv.CreateItem(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "Item added successfully", gin.H{"item": item})
	}
}

// UpdateMenuItemHandler overwrites a menu item
func UpdateMenuItemHandler(inv *inventory.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		req, ok := bindMenuItem(c)
		if !ok {
			return
		}
		if err := inv.UpdateItem(c.Request.Context(), id, req.input()); err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "Item updated successfully", nil)
	}
}

// DeleteMenuItemHandler removes a menu item
func DeleteMenuItemHandler(inv *inventory.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := inv.DeleteItem(c.Request.Context(), id); err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "Food item deleted successfully", nil)
	}
}
