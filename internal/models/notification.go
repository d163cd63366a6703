package models

// AssignmentNotification is the payload published on the assignments
// pub/sub channel whenever a complaint is assigned to a worker.
// Delivery is best-effort; the gateway drops it if the worker has no
// live connection.
type AssignmentNotification struct {
	WorkerID    string `json:"worker_id"`
	ComplaintID string `json:"complaint_id"`
	Message     string `json:"message"`
}
