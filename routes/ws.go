package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wedding-hall-server/utils"
	"wedding-hall-server/websocket"
)

// RegisterWebSocketRoutes registers the booking-event stream. Browsers cannot
// set headers on WebSocket upgrades, so the access token rides in the query
// string.
func RegisterWebSocketRoutes(router *gin.RouterGroup, hub *websocket.Hub) {
	router.GET("/ws", func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "A token query parameter is required",
			})
			return
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
			return
		}

		websocket.ServeWebSocket(hub, c.Writer, c.Request, claims.UserID, claims.Role)
	})
}
