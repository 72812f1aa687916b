package handlers

import (
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler upgrades the dashboard connection. Auth middleware has
// already run (the token is accepted as a query parameter for browsers).
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		userRole := c.GetString("userRole")
		services.HandleWebSocket(hub, c.Writer, c.Request, userID, userRole)
	}
}
