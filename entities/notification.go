package entities

import "time"

const (
	NotificationMilestone = "milestone"
)

type Notification struct {
	Type      string    `bson:"type" json:"type"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Read      bool      `bson:"read" json:"read"`
}

type UserNotifications struct {
	UserID        string         `bson:"user_id" json:"user_id"`
	Notifications []Notification `bson:"notifications" json:"notifications"`
	UnreadCount   int            `bson:"unread_count" json:"unread_count"`
}
