package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wedding-hall-server/websocket"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, hub *websocket.Hub) {
	broadcaster := websocket.NewBookingBroadcaster(hub)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		RegisterAuthRoutes(apiV1)
		RegisterCatalogRoutes(apiV1)
		RegisterBookingRoutes(apiV1, broadcaster)
		RegisterManagerRoutes(apiV1, broadcaster)
		RegisterProviderRoutes(apiV1, broadcaster)
		RegisterAdminRoutes(apiV1, broadcaster)
		RegisterMediaRoutes(apiV1)
		RegisterWebSocketRoutes(apiV1, hub)
	}
}
