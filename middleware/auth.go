package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/auth"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1], true
	}
	if len(parts) == 1 {
		return parts[0], true
	}
	return "", false
}

// AuthCustomer resolves the caller from the bearer token and requires
// the customer flag to still be set on the current user record. The
// role is re-queried per call so revocation takes effect immediately.
func AuthCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication header is required."})
			return
		}

		email, err := auth.DecodeEmail(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token data."})
			return
		}

		var user models.User
		if err := db.Where("LOWER(email) = LOWER(?) AND is_customer = ?", email, true).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token data."})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// AuthAdmin is the staff-gated variant: a valid token for a non-staff
// user yields 403, an unresolvable token 401.
func AuthAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication header is required."})
			return
		}

		email, err := auth.DecodeEmail(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token data."})
			return
		}

		var user models.User
		if err := db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token data."})
			return
		}
		if !user.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "You do not have admin access."})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthCustomer/AuthAdmin.
func CurrentUser(c *gin.Context) models.User {
	v, _ := c.Get("user")
	user, _ := v.(models.User)
	return user
}
