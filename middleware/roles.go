package middleware

import (
	"net/http"

	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/gin-gonic/gin"
)

// CurrentUser resolves the authenticated user's database record from the
// Auth0 subject stored in the context by EnsureValidToken.
func CurrentUser(c *gin.Context) (*models.User, error) {
	auth0ID, err := GetUserID(c)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		return nil, &AuthError{Code: "USER_NOT_FOUND", Message: "User profile not found. Please create a profile first."}
	}

	return &user, nil
}

// RequireRole gates a route to users whose profile carries one of the given
// roles. This is the capability check the HTTP layer performs before
// invoking services; services themselves stay role-agnostic.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			authErr, ok := err.(*AuthError)
			status := http.StatusUnauthorized
			code := "UNAUTHORIZED"
			message := "Could not extract user information"
			if ok && authErr.Code == "USER_NOT_FOUND" {
				status = http.StatusNotFound
				code = authErr.Code
				message = authErr.Message
			}
			c.JSON(status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": message,
				},
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Set("current_user", user)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions to access this resource",
			},
		})
		c.Abort()
	}
}

// MustCurrentUser returns the user placed in the context by RequireRole,
// falling back to a database lookup for routes without a role gate.
func MustCurrentUser(c *gin.Context) (*models.User, error) {
	if u, exists := c.Get("current_user"); exists {
		if user, ok := u.(*models.User); ok {
			return user, nil
		}
	}
	return CurrentUser(c)
}
