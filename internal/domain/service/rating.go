package service

import (
	"context"
	"fmt"
	"time"

	"github.com/feriapp/backend/internal/domain/entity"
	"github.com/feriapp/backend/internal/domain/utils/location"
	"github.com/feriapp/backend/pkg/logger/types"
)

type RatingStorage interface {
	Create(ctx context.Context, rating *entity.Rating) (*entity.Rating, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.Rating, error)
	CountByEventID(ctx context.Context, eventID string) (int64, error)
}

type ratingEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type ratingNotifier interface {
	UpsertDaily(ctx context.Context, recipientID, eventID string, kind entity.NotificationKind, dayKey, message string) (*entity.Notification, error)
}

type RatingService struct {
	ratingStorage RatingStorage
	eventStorage  ratingEventStorage
	notifier      ratingNotifier

	logger *types.Logger
}

func NewRatingService(ratingStorage RatingStorage, eventStorage ratingEventStorage, notifier ratingNotifier, logger *types.Logger) *RatingService {
	return &RatingService{
		ratingStorage: ratingStorage,
		eventStorage:  eventStorage,
		notifier:      notifier,
		logger:        logger,
	}
}

// Create stores the rating and upserts the event owner's daily rating
// notice. The notice is keyed by the submission day, so however many
// ratings arrive within one civil day the owner sees a single entry whose
// message reflects the latest one. A failed notice is logged, not
// returned: the rating itself is already committed.
func (s *RatingService) Create(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	event, err := s.eventStorage.Get(ctx, rating.EventID)
	if err != nil {
		return nil, err
	}

	created, err := s.ratingStorage.Create(ctx, rating)
	if err != nil {
		return nil, err
	}

	dayKey := location.DayKey(time.Now())
	message := fmt.Sprintf("Your event %s received a new rating: %d/5", event.Title, created.Score)
	if _, err = s.notifier.UpsertDaily(ctx, event.OwnerID, event.ID, entity.NotificationKindRatingAdded, dayKey, message); err != nil {
		s.logger.Errorf("failed to notify owner %s about rating on event %s: %v", event.OwnerID, event.ID, err)
	}

	return created, nil
}

func (s *RatingService) GetByEventID(ctx context.Context, eventID string) ([]entity.Rating, error) {
	return s.ratingStorage.GetByEventID(ctx, eventID)
}

func (s *RatingService) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	return s.ratingStorage.CountByEventID(ctx, eventID)
}
