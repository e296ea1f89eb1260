package postgres

import (
	"context"

	"github.com/feriapp/backend/internal/domain/dto"
	"github.com/feriapp/backend/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

// Create is a function that inserts a single notification.
func (s *NotificationStorage) Create(ctx context.Context, notification *entity.Notification) (*entity.Notification, error) {
	err := s.db.WithContext(ctx).Create(notification).Error
	return notification, err
}

// Upsert inserts the notification or, when a row with the same
// (recipient_id, event_id, kind, day_key) already exists, refreshes its
// message. The existing row keeps its read state and created_at. The write
// is a single statement, so concurrent producers racing on the same key
// cannot create a duplicate row.
func (s *NotificationStorage) Upsert(ctx context.Context, notification *entity.Notification) (*entity.Notification, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "recipient_id"},
			{Name: "event_id"},
			{Name: "kind"},
			{Name: "day_key"},
		},
		TargetWhere: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("event_id IS NOT NULL AND day_key IS NOT NULL"),
		}},
		DoUpdates: clause.AssignmentColumns([]string{"message", "updated_at"}),
	}).Create(notification).Error
	return notification, err
}

// CreateBatch inserts notifications in one unordered statement. Rows hitting
// the dedup index are skipped without failing the rest of the batch; the
// returned count covers only rows actually inserted.
func (s *NotificationStorage) CreateBatch(ctx context.Context, notifications []entity.Notification) (int64, error) {
	if len(notifications) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&notifications)
	return result.RowsAffected, result.Error
}

// Get is a function that gets a notification from the database by id.
func (s *NotificationStorage) Get(ctx context.Context, id string) (*entity.Notification, error) {
	var notification entity.Notification
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error
	return &notification, err
}

// GetByRecipient returns the user's notifications newest first, with the
// related event title joined in.
func (s *NotificationStorage) GetByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]dto.UserNotification, error) {
	var notifications []dto.UserNotification
	err := s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Select("notifications.id, notifications.event_id, events.title AS event_title, notifications.kind, notifications.message, notifications.read, notifications.day_key, notifications.created_at").
		Joins("LEFT JOIN events ON events.id = notifications.event_id").
		Where("notifications.recipient_id = ?", recipientID).
		Order("notifications.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&notifications).Error
	return notifications, err
}

func (s *NotificationStorage) MarkRead(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

func (s *NotificationStorage) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Update("read", true).Error
}

func (s *NotificationStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Notification{}).Error
}

func (s *NotificationStorage) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Count(&count).Error
	return count, err
}
