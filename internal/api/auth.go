package api

import (
	"food_ordering/internal/accounts" // Account service
	"food_ordering/internal/utils"    // JWT helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// SignupRequest represents a signup request
type SignupRequest struct {
	Name     string `json:"user_name"`  // Display name
	Email    string `json:"user_email"` // Login email
	Password string `json:"user_pass"`  // Plain password
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"user_email"` // Login email
	Password string `json:"user_pass"`  // Plain password
}

// SignupHandler registers a new user
func SignupHandler(svc *accounts.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondMessage(c, "All fields required") // Unreadable body
			return
		}
		if _, err := svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
			respondError(c, err, nil)
			return
		}
		respondOK(c, "User created successfully", nil)
	}
}

// LoginHandler verifies credentials and returns the public profile. When a
// JWT secret is configured a bearer token is issued as well.
func LoginHandler(svc *accounts.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondMessage(c, "All fields required")
			return
		}
		user, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		payload := gin.H{
			"user": gin.H{
				"id":       user.ID,     // User ID
				"username": user.Name,   // Display name
				"email":    user.Email,  // Email
				"role":     user.Role,   // Role
				"wallet":   user.Wallet, // Balance
			},
		}
		if jwtSecret != "" {
			token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
			if err != nil {
				logrus.WithField("user_id", user.ID).Errorf("token generation failed: %v", err)
				respondMessage(c, "Failed to generate token")
				return
			}
			payload["token"] = token
		}
		respondOK(c, "Login successful", payload)
	}
}
