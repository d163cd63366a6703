package gateway

import "fixtrack/backend/internal/models"

// Client is the interface for a live worker session attached to the
// gateway. It abstracts the transport so the hub can manage connections
// uniformly.
type Client interface {
	// GetWorkerID returns the worker this session belongs to.
	GetWorkerID() string

	// GetSendChannel returns the channel the hub pushes notifications
	// into. It is a send-only channel.
	GetSendChannel() chan<- models.AssignmentNotification

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and associated channels.
	Close()
}
