package middleware

import (
	"net/http" // HTTP status codes

	"craveseat/internal/domain" // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// VendorOnlyMiddleware gates vendor feature endpoints on the effective role.
// Owning a vendor profile is not enough: the account must be acting as a
// vendor when the request arrives.
func VendorOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c) // Account loaded by JWTAuthMiddleware
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		if domain.EffectiveRole(user) == domain.RoleVendor {
			c.Next() // Acting as vendor, proceed
			return
		}
		// A vendor profile exists but the account is in user mode
		if user.VendorProfile != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Switch to vendor mode using /auth/switch-role to access vendor features"})
			return
		}
		// No vendor access at all
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "You need to create a vendor profile first"})
	}
}
