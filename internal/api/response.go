package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"food_ordering/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondOK writes a successful envelope with an optional payload
func respondOK(c *gin.Context, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondError converts err into a failed envelope. Business failures keep
// HTTP 200 so clients branch on the success flag.
func respondError(c *gin.Context, err error, payload gin.H) {
	if domain.KindOf(err) == domain.KindStorage {
		_ = c.Error(err) // Surfaces in the request log
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route
			"error": err.Error(),  // Error message
		}).Error("Storage failure")
	}
	body := gin.H{"success": false, "message": domain.MessageOf(err)}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondMessage writes a failed envelope with a literal message
func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}

// pathID parses a positive integer path parameter. A malformed value is
// answered with 400 and ok=false.
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}
