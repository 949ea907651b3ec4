package auth

import (
	"net/http"
	"strings"
	"time"

	"socialite/backend/internal/models"
	"socialite/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Middleware validates the bearer session token, stores the acting user's ID
// under "userID" and touches their last-seen timestamp.
func Middleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		userID, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", userID)

		db.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("last_seen", time.Now().UTC())

		c.Next()
	}
}
