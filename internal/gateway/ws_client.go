package gateway

import (
	"encoding/json"
	"time"

	"fixtrack/backend/internal/models"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient implements the gateway.Client interface over a gorilla
// WebSocket connection.
type WebSocketClient struct {
	WorkerID string
	Conn     *websocket.Conn
	Hub      *Hub
	Send     chan models.AssignmentNotification
}

func (c *WebSocketClient) GetWorkerID() string { return c.WorkerID }
func (c *WebSocketClient) GetSendChannel() chan<- models.AssignmentNotification {
	return c.Send
}

// Run starts the pumps for the connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops writePump.
func (c *WebSocketClient) Close() {
	close(c.Send)
	// readPump stops on its own once the connection is closed in its defer.
}

// readPump drains the connection to keep pong handling alive. Workers do
// not send application messages; any payload is discarded. Unregisters
// the client when the connection drops.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).WithField("worker_id", c.WorkerID).Warn("websocket read error")
			}
			break
		}
	}
}

// writePump pushes notifications from the Send channel onto the wire and
// keeps the connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case n, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(n)
			if err != nil {
				log.WithError(err).WithField("worker_id", c.WorkerID).Warn("failed to encode notification")
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
