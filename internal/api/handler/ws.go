package handler

import (
	"net/http"

	"fixtrack/backend/internal/gateway"
	"fixtrack/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades a worker's connection and registers it with the
// gateway hub so assignment notifications reach the session. Runs after
// Protect, so the caller is already authenticated.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	user := currentUser(c)
	if user.Role != models.RoleWorker {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "workers only"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := &gateway.WebSocketClient{
		Hub:      h.Hub,
		WorkerID: user.ID,
		Conn:     conn,
		Send:     make(chan models.AssignmentNotification, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
