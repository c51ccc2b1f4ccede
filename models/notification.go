package models

import "time"

// Notification types. The task-derived types are created exclusively by
// the scan job; event reminders come from user-facing endpoints.
const (
	NotificationTaskDueSoon   = "task_due_soon"
	NotificationTaskOverdue   = "task_overdue"
	NotificationEventReminder = "event_reminder"
)

// Notification doubles as the in-app inbox and the dedup source of truth:
// the scanner suppresses a new alert when one of the same type for the
// same related task was created within the last 24 hours. Content is never
// mutated after creation, only IsRead flips.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	RelatedID *uint     `json:"related_id,omitempty"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
