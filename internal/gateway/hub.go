// Package gateway relays assignment notifications to connected worker
// sessions over WebSocket. It owns the workerID -> connection registry;
// all mutation happens on the hub goroutine, never from handlers.
package gateway

import (
	"encoding/json"

	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Hub tracks live worker sessions and dispatches notifications arriving on
// the pub/sub channel. Clients is only written from Run; handlers interact
// through RegisterCh and UnregisterCh.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	// NotifyCh receives decoded notifications from the pub/sub listener.
	NotifyCh chan models.AssignmentNotification

	Storage *storage.Service
}

// NewHub creates a gateway hub backed by the given storage service.
func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		NotifyCh:     make(chan models.AssignmentNotification, 64),
		Storage:      s,
	}
}

// Run is the hub dispatcher. Single goroutine, single writer of Clients.
func (h *Hub) Run() {
	if h.Storage != nil {
		h.startPubSubListener()
	}

	for {
		select {
		case client := <-h.RegisterCh:
			workerID := client.GetWorkerID()
			if old, ok := h.Clients[workerID]; ok {
				// New connection replaces a stale one.
				old.Close()
			}
			h.Clients[workerID] = client
			log.WithField("worker_id", workerID).Info("worker session connected")

		case client := <-h.UnregisterCh:
			workerID := client.GetWorkerID()
			if current, ok := h.Clients[workerID]; ok && current == client {
				delete(h.Clients, workerID)
				client.Close()
				log.WithField("worker_id", workerID).Info("worker session disconnected")
			}

		case n := <-h.NotifyCh:
			client, ok := h.Clients[n.WorkerID]
			if !ok {
				// Worker not connected; delivery is best-effort.
				continue
			}
			select {
			case client.GetSendChannel() <- n:
			default:
				// Slow consumer, drop the notification (at-most-once).
				log.WithField("worker_id", n.WorkerID).Warn("dropping notification for slow session")
			}
		}
	}
}

// startPubSubListener subscribes to the assignment channel and feeds
// decoded payloads into NotifyCh.
func (h *Hub) startPubSubListener() {
	go func() {
		sub := h.Storage.SubscribeAssignments()
		defer sub.Close()

		for msg := range sub.Channel() {
			var n models.AssignmentNotification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				log.WithError(err).Warn("gateway: bad notification payload")
				continue
			}
			h.NotifyCh <- n
		}
	}()
}
