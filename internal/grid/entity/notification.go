package entity

import "time"

// Notification is a fire-and-forget message to one user. The related entity
// reference is a weak polymorphic pointer; notifications never own the
// lifecycle of what they point at.
type Notification struct {
	ID                string    `json:"id" gorm:"primaryKey;size:32"`
	UserID            string    `json:"user_id" gorm:"size:32;not null;index"`
	Title             string    `json:"title" gorm:"size:256;not null"`
	Message           string    `json:"message" gorm:"type:text;not null"`
	NotificationType  string    `json:"notification_type" gorm:"size:16;not null;default:info"`
	IsRead            bool      `json:"is_read" gorm:"not null;default:false"`
	RelatedEntityType string    `json:"related_entity_type" gorm:"size:32"`
	RelatedEntityID   string    `json:"related_entity_id" gorm:"size:32"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Notification type
const (
	NotificationTypeInfo       = "info"
	NotificationTypeSuccess    = "success"
	NotificationTypeWarning    = "warning"
	NotificationTypeError      = "error"
	NotificationTypeEscalation = "escalation"
)
