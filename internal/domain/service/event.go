package service

import (
	"context"
	"fmt"
	"time"

	"github.com/feriapp/backend/internal/domain/entity"
	"github.com/feriapp/backend/pkg/logger/types"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetMany(ctx context.Context, ids []string) ([]entity.Event, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]entity.Event, error)
	GetAll(ctx context.Context) ([]entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error)
}

type eventUserStorage interface {
	GetByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
}

type eventNotifier interface {
	Insert(ctx context.Context, recipientID string, eventID *string, kind entity.NotificationKind, message string) (*entity.Notification, error)
}

type EventService struct {
	eventStorage EventStorage
	userStorage  eventUserStorage
	notifier     eventNotifier

	logger *types.Logger
}

func NewEventService(eventStorage EventStorage, userStorage eventUserStorage, notifier eventNotifier, logger *types.Logger) *EventService {
	return &EventService{
		eventStorage: eventStorage,
		userStorage:  userStorage,
		notifier:     notifier,
		logger:       logger,
	}
}

// Create stores the event and notifies every plain user about it. The
// fan-out never fails the creation: it runs after the event is committed
// and logs per-recipient failures.
func (s *EventService) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	created, err := s.eventStorage.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.fanOutCreated(ctx, created)
	return created, nil
}

func (s *EventService) fanOutCreated(ctx context.Context, event *entity.Event) {
	users, err := s.userStorage.GetByRole(ctx, entity.RoleUser)
	if err != nil {
		s.logger.Errorf("failed to get users for event fan-out (event_id=%s): %v", event.ID, err)
		return
	}

	message := fmt.Sprintf("New event: %s", event.Title)
	for _, user := range users {
		eventID := event.ID
		if _, err = s.notifier.Insert(ctx, user.ID, &eventID, entity.NotificationKindEventCreated, message); err != nil {
			s.logger.Errorf("failed to notify user %s about event %s: %v", user.ID, event.ID, err)
		}
	}
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.eventStorage.Get(ctx, id)
}

func (s *EventService) GetMany(ctx context.Context, ids []string) ([]entity.Event, error) {
	return s.eventStorage.GetMany(ctx, ids)
}

func (s *EventService) GetAll(ctx context.Context) ([]entity.Event, error) {
	return s.eventStorage.GetAll(ctx)
}

func (s *EventService) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	return s.eventStorage.Update(ctx, event)
}

func (s *EventService) Count(ctx context.Context) (int64, error) {
	return s.eventStorage.Count(ctx)
}

func (s *EventService) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error) {
	return s.eventStorage.GetWithPagination(ctx, limit, offset, order)
}
