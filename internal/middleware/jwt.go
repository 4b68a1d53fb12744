package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"craveseat/internal/domain" // Domain models
	"craveseat/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Context key under which the authenticated account is stored
const currentUserKey = "currentUser"

// JWTAuthMiddleware validates the bearer token, loads the account and rejects
// disabled accounts
func JWTAuthMiddleware(db *gorm.DB, issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		userID, err := issuer.Verify(tokenStr)                // Verify and extract the subject
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}
		// Load the account with both profiles so role checks don't re-query
		var user domain.User
		if err := db.Preload("Profile").Preload("VendorProfile").First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Could not validate credentials"})
			return
		}
		// Disabled accounts keep a valid token until expiry but lose access
		if user.Disabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Account is disabled"})
			return
		}
		c.Set(currentUserKey, &user) // Store the account in context
		c.Next()                     // Proceed to the next handler
	}
}

// CurrentUser returns the authenticated account stored by JWTAuthMiddleware
func CurrentUser(c *gin.Context) *domain.User {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
