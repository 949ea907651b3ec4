package auth

import (
	"net/http"

	"socialite/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireVerified creates a gin middleware that blocks accounts that have not
// confirmed their email yet. It must be used AFTER the standard Middleware.
func RequireVerified(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			// This should not happen if Middleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var user models.User
		if err := db.First(&user, userID.(uint)).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
			return
		}

		if !user.IsVerified {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Email verification required"})
			return
		}

		c.Next()
	}
}
