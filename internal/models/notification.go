package models

import "time"

// Notification is an announcement to all members, optionally carrying a poll.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedBy *string   `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NotificationWithPoll attaches the optional poll owned by a notification.
type NotificationWithPoll struct {
	Notification
	Poll *Poll `json:"poll,omitempty"`
}
