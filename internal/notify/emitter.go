// Package notify publishes assignment notifications: a fire-and-forget
// Redis emitter consumed by the real-time gateway, and an optional
// Telegram relay for workers who linked a chat.
package notify

import (
	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Emitter publishes assignment events to the broadcast channel. Publishing
// happens off the request path; failures are logged and swallowed so a
// broker hiccup never reverses an assignment write.
type Emitter struct {
	Storage storage.Storage
}

func NewEmitter(s storage.Storage) *Emitter {
	return &Emitter{Storage: s}
}

// Notify publishes an assignment notification for workerID. At-most-once,
// no acknowledgment, no retry.
func (e *Emitter) Notify(workerID, complaintID, message string) {
	n := models.AssignmentNotification{
		WorkerID:    workerID,
		ComplaintID: complaintID,
		Message:     message,
	}
	go func() {
		if err := e.Storage.PublishNotification(n); err != nil {
			log.WithError(err).WithField("worker_id", workerID).Warn("failed to publish assignment notification")
		}
	}()
}
