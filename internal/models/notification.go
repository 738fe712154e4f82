package models

import "time"

type NotificationType string

const (
	NotificationInfo         NotificationType = "info"
	NotificationSuccess      NotificationType = "success"
	NotificationWarning      NotificationType = "warning"
	NotificationAnnouncement NotificationType = "announcement"
	NotificationAssignment   NotificationType = "assignment"
	NotificationProject      NotificationType = "project"
	NotificationGrade        NotificationType = "grade"
	NotificationMessage      NotificationType = "message"
)

// Notification rows are write-once, read-toggle.
type Notification struct {
	ID      uint             `json:"id" gorm:"primaryKey"`
	UserID  uint             `json:"user_id" gorm:"index;not null"`
	Title   string           `json:"title" gorm:"not null;size:200"`
	Message string           `json:"message" gorm:"not null;type:text"`
	Type    NotificationType `json:"type" gorm:"default:info;size:20"`
	IsRead  bool             `json:"is_read" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
