package services

import (
	"time"

	"github.com/yeremiapane/task-manager-app/models"
	"gorm.io/gorm"
)

// Ledger is the append-only notification store. Besides being the user's
// inbox it is the dedup source of truth: HasRecent answers whether an
// alert of the same type for the same task was already recorded.
type Ledger interface {
	// HasRecent reports whether a notification of the given type exists
	// for (user, task) with a creation time strictly after since. The
	// strict bound keeps an entry aged exactly 24h from blocking the
	// next alert.
	HasRecent(userID, taskID uint, kind string, since time.Time) (bool, error)

	// Append records a new notification and returns its id.
	Append(userID uint, kind, title, message string, relatedID uint) (uint, error)
}

type GormNotificationLedger struct {
	DB *gorm.DB
}

func NewGormNotificationLedger(db *gorm.DB) *GormNotificationLedger {
	return &GormNotificationLedger{DB: db}
}

func (l *GormNotificationLedger) HasRecent(userID, taskID uint, kind string, since time.Time) (bool, error) {
	var count int64
	err := l.DB.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("related_id = ?", taskID).
		Where("type = ?", kind).
		Where("created_at > ?", since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (l *GormNotificationLedger) Append(userID uint, kind, title, message string, relatedID uint) (uint, error) {
	notif := models.Notification{
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		RelatedID: &relatedID,
		// UTC keeps dedup comparisons stable across store timezones.
		CreatedAt: time.Now().UTC(),
	}
	if err := l.DB.Create(&notif).Error; err != nil {
		return 0, err
	}
	return notif.ID, nil
}
