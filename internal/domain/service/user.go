package service

import (
	"context"
	"fmt"

	"github.com/feriapp/backend/internal/domain/entity"
	"github.com/feriapp/backend/pkg/logger/types"
	"github.com/lib/pq"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	GetByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
	GetByFavorites(ctx context.Context, eventIDs []string) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type favoriteEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type userNotifier interface {
	Insert(ctx context.Context, recipientID string, eventID *string, kind entity.NotificationKind, message string) (*entity.Notification, error)
}

type UserService struct {
	userStorage  UserStorage
	eventStorage favoriteEventStorage
	notifier     userNotifier

	logger *types.Logger
}

func NewUserService(userStorage UserStorage, eventStorage favoriteEventStorage, notifier userNotifier, logger *types.Logger) *UserService {
	return &UserService{
		userStorage:  userStorage,
		eventStorage: eventStorage,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *UserService) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	return s.userStorage.Create(ctx, &user)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.userStorage.Get(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]entity.User, error) {
	return s.userStorage.GetAll(ctx)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.userStorage.Update(ctx, user)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userStorage.Count(ctx)
}

// AddFavorite adds the event to the user's favorites and sends the
// confirmation notice. Adding an event that is already favorited is a
// no-op. A failed confirmation is logged, not returned: the favorite
// itself is already committed.
func (s *UserService) AddFavorite(ctx context.Context, userID, eventID string) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range user.Favorites {
		if id == eventID {
			return user, nil
		}
	}

	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	user.Favorites = append(user.Favorites, eventID)
	updated, err := s.userStorage.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Added %s to your favorites", event.Title)
	if _, err = s.notifier.Insert(ctx, userID, &eventID, entity.NotificationKindFavoriteAdded, message); err != nil {
		s.logger.Errorf("failed to send favorite confirmation to user %s (event_id=%s): %v", userID, eventID, err)
	}
	return updated, nil
}

// RemoveFavorite drops the event from the user's favorites.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, eventID string) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	favorites := make(pq.StringArray, 0, len(user.Favorites))
	for _, id := range user.Favorites {
		if id != eventID {
			favorites = append(favorites, id)
		}
	}
	user.Favorites = favorites

	return s.userStorage.Update(ctx, user)
}
