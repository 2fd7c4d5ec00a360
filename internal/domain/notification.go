package domain

import "time"

// Notification is a fire-and-forget message row polled by the client.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
