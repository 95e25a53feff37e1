package domain

import "time"

// NotificationType distinguishes status updates from staff messages.
type NotificationType string

const (
	NotificationStatusUpdate NotificationType = "status_update"
	NotificationMessage      NotificationType = "message"
)

// Notification is an entry of the notifications panel.
type Notification struct {
	ID             string           `json:"id"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	ComplaintID    string           `json:"complaintId"`
	ComplaintTitle string           `json:"complaintTitle"`
	Timestamp      time.Time        `json:"timestamp"`
	Read           bool             `json:"read"`
}
