package service

import (
	"context"
	"errors"

	"github.com/feriapp/backend/internal/domain/common/errorz"
	"github.com/feriapp/backend/internal/domain/dto"
	"github.com/feriapp/backend/internal/domain/entity"
	"github.com/feriapp/backend/internal/domain/utils/validator"
	"github.com/feriapp/backend/pkg/logger/types"
	"gorm.io/gorm"
)

type NotificationStorage interface {
	Create(ctx context.Context, notification *entity.Notification) (*entity.Notification, error)
	Upsert(ctx context.Context, notification *entity.Notification) (*entity.Notification, error)
	CreateBatch(ctx context.Context, notifications []entity.Notification) (int64, error)
	Get(ctx context.Context, id string) (*entity.Notification, error)
	GetByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]dto.UserNotification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type UnreadCache interface {
	Get(ctx context.Context, userID string) (int64, error)
	Set(ctx context.Context, userID string, count int64) error
	Invalidate(ctx context.Context, userID string) error
}

type NotificationService struct {
	notificationStorage NotificationStorage
	unreadCache         UnreadCache

	logger *types.Logger
}

// NewNotificationService creates the notification writer. unreadCache may be
// nil; the unread count then always comes from the database.
func NewNotificationService(storage NotificationStorage, unreadCache UnreadCache, logger *types.Logger) *NotificationService {
	return &NotificationService{
		notificationStorage: storage,
		unreadCache:         unreadCache,
		logger:              logger,
	}
}

// Insert creates a one-shot notification with no per-day dedup. eventID may
// be nil for kinds that do not concern a specific event.
func (s *NotificationService) Insert(ctx context.Context, recipientID string, eventID *string, kind entity.NotificationKind, message string) (*entity.Notification, error) {
	if err := validate(recipientID, message); err != nil {
		return nil, err
	}

	notification := &entity.Notification{
		RecipientID: recipientID,
		EventID:     eventID,
		Kind:        kind,
		Message:     message,
	}

	created, err := s.notificationStorage.Create(ctx, notification)
	if err != nil {
		return nil, err
	}
	s.invalidateUnread(ctx, recipientID)
	return created, nil
}

// UpsertDaily creates or refreshes the day-keyed notification identified by
// (recipient, event, kind, dayKey). If one already exists for that key, only
// its message is updated; its read state is preserved. Hitting an existing
// row is the expected path, not an error.
func (s *NotificationService) UpsertDaily(ctx context.Context, recipientID, eventID string, kind entity.NotificationKind, dayKey, message string) (*entity.Notification, error) {
	if err := validate(recipientID, message); err != nil {
		return nil, err
	}
	if eventID == "" || dayKey == "" {
		return nil, errorz.MissingDedupKey
	}

	notification := &entity.Notification{
		RecipientID: recipientID,
		EventID:     &eventID,
		Kind:        kind,
		DayKey:      &dayKey,
		Message:     message,
	}

	upserted, err := s.notificationStorage.Upsert(ctx, notification)
	if err != nil {
		return nil, err
	}
	s.invalidateUnread(ctx, recipientID)
	return upserted, nil
}

// List returns the user's notifications newest first, event titles included.
func (s *NotificationService) List(ctx context.Context, recipientID string, limit, offset int) ([]dto.UserNotification, error) {
	return s.notificationStorage.GetByRecipient(ctx, recipientID, limit, offset)
}

// MarkRead flips the notification to read. Only the recipient may do this.
func (s *NotificationService) MarkRead(ctx context.Context, id, requestingUserID string) error {
	notification, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if notification.RecipientID != requestingUserID {
		return errorz.Forbidden
	}

	if err = s.notificationStorage.MarkRead(ctx, id); err != nil {
		return err
	}
	s.invalidateUnread(ctx, requestingUserID)
	return nil
}

// MarkAllRead flips all of the user's notifications to read. The write is
// scoped to the user, so no per-record authorization check is needed.
func (s *NotificationService) MarkAllRead(ctx context.Context, requestingUserID string) error {
	if err := s.notificationStorage.MarkAllRead(ctx, requestingUserID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, requestingUserID)
	return nil
}

// Delete hard-deletes the notification. Only the recipient may do this.
func (s *NotificationService) Delete(ctx context.Context, id, requestingUserID string) error {
	notification, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if notification.RecipientID != requestingUserID {
		return errorz.Forbidden
	}

	if err = s.notificationStorage.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateUnread(ctx, requestingUserID)
	return nil
}

// UnreadCount returns the user's unread notification count, served from the
// cache when warm and recomputed from the database otherwise.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if s.unreadCache != nil {
		if count, err := s.unreadCache.Get(ctx, userID); err == nil {
			return count, nil
		}
	}

	count, err := s.notificationStorage.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.unreadCache != nil {
		if err = s.unreadCache.Set(ctx, userID, count); err != nil {
			s.logger.Warnf("failed to cache unread count for user %s: %v", userID, err)
		}
	}
	return count, nil
}

func (s *NotificationService) get(ctx context.Context, id string) (*entity.Notification, error) {
	notification, err := s.notificationStorage.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.NotFound
	}
	if err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID string) {
	if s.unreadCache == nil {
		return
	}
	if err := s.unreadCache.Invalidate(ctx, userID); err != nil {
		s.logger.Warnf("failed to invalidate unread count for user %s: %v", userID, err)
	}
}

func validate(recipientID, message string) error {
	if !validator.NotificationRecipient(recipientID) {
		return errorz.MissingRecipient
	}
	if !validator.NotificationMessage(message) {
		return errorz.MissingMessage
	}
	return nil
}
