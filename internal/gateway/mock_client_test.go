package gateway_test

import "fixtrack/backend/internal/models"

type MockClient struct {
	workerID    string
	closed      bool
	RecvChannel chan models.AssignmentNotification
}

func newMockClient(workerID string) *MockClient {
	return &MockClient{
		workerID:    workerID,
		RecvChannel: make(chan models.AssignmentNotification, 10),
	}
}

func (c *MockClient) GetWorkerID() string {
	return c.workerID
}

func (c *MockClient) GetSendChannel() chan<- models.AssignmentNotification {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}
