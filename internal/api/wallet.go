package api

import (
	"fmt" // Message formatting

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point money

	"food_ordering/internal/wallet" // Wallet controller
)

// AmountRequest represents a wallet credit or debit request
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"` // Amount to move, positive with at most two decimals
}

// bindAmount reads the amount; false means a response was written
func bindAmount(c *gin.Context) (decimal.Decimal, bool) {
	var req AmountRequest
	// A non-numeric amount fails binding
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, "Invalid amount")
		return decimal.Zero, false
	}
	return req.Amount, true
}

// GetWalletHandler returns the user's balance
func GetWalletHandler(w *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id") // Parse user ID
		if !ok {
			return
		}
		balance, err := w.GetBalance(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "", gin.H{"wallet": balance})
	}
}

// AddFundsHandler credits the user's wallet
func AddFundsHandler(w *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id") // Parse user ID
		if !ok {
			return
		}
		amount, ok := bindAmount(c) // Parse amount
		if !ok {
			return
		}
		if err := w.Credit(c.Request.Context(), userID, amount); err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "Wallet updated successfully", nil)
	}
}

// DeductFundsHandler debits the user's wallet if the balance covers it
func DeductFundsHandler(w *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id") // Parse user ID
		if !ok {
			return
		}
		amount, ok := bindAmount(c) // Parse amount
		if !ok {
			return
		}
		if err := w.Debit(c.Request.Context(), userID, amount); err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, fmt.Sprintf("₱%s deducted from wallet.", amount.StringFixed(2)), nil)
	}
}
