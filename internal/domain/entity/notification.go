package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationKind string

const (
	NotificationKindEventCreated  NotificationKind = "event_created"
	NotificationKindFavoriteAdded NotificationKind = "favorite_added"
	NotificationKindRatingAdded   NotificationKind = "rating_added"
	NotificationKindReminder1Day  NotificationKind = "reminder_1day"
)

// Notification represents a single in-app notice for a user.
//
// Kinds that must not repeat within a civil day carry a DayKey. The partial
// unique index over (recipient_id, event_id, kind, day_key) suppresses
// duplicates for rows where both nullable fields are set; one-shot kinds
// leave them null and accumulate freely.
type Notification struct {
	ID          string           `gorm:"primaryKey;type:uuid"`
	RecipientID string           `gorm:"not null;type:uuid;uniqueIndex:idx_notifications_dedup,where:event_id IS NOT NULL AND day_key IS NOT NULL"`
	EventID     *string          `gorm:"type:uuid;uniqueIndex:idx_notifications_dedup"`
	Kind        NotificationKind `gorm:"not null;uniqueIndex:idx_notifications_dedup"`
	Message     string           `gorm:"not null"`
	Read        bool             `gorm:"not null;default:false"`
	DayKey      *string          `gorm:"uniqueIndex:idx_notifications_dedup"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate assigns the ID application-side so batch inserts carry IDs
// without an extra round trip.
func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
