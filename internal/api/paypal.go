package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// PaypalReturnHandler is the landing page after a sandbox approval
func PaypalReturnHandler(c *gin.Context) {
	c.String(http.StatusOK, "Payment successful. You may close this window.")
}

// PaypalCancelHandler is the landing page after a sandbox cancellation
func PaypalCancelHandler(c *gin.Context) {
	c.String(http.StatusOK, "Payment cancelled.")
}
