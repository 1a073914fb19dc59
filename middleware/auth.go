package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wedding-hall-server/database"
	"wedding-hall-server/models"
	"wedding-hall-server/utils"
)

// AuthMiddleware validates JWT tokens and sets user context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token format",
				"message": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			log.Printf("🔍 AuthMiddleware: token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User not found",
				"message": "User associated with token not found",
			})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User inactive",
				"message": "User account is deactivated",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))

		c.Next()
	}
}

// RequireRole restricts a route group to the given roles. Must run after
// AuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please sign in first",
			})
			c.Abort()
			return
		}

		user := value.(models.User)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		log.Printf("❌ User %d with role %s denied access to %s", user.ID, user.Role, c.Request.URL.Path)
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "Your role does not permit this action",
		})
		c.Abort()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
