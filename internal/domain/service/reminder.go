package service

import (
	"context"
	"fmt"
	"time"

	"github.com/feriapp/backend/internal/domain/entity"
	"github.com/feriapp/backend/internal/domain/utils/location"
	"github.com/feriapp/backend/pkg/logger/types"
)

// fireHour is the local wall-clock hour in the reference timezone at which
// the daily reminder run starts.
const fireHour = 9

type reminderEventStorage interface {
	GetByDateRange(ctx context.Context, from, to time.Time) ([]entity.Event, error)
}

type reminderUserStorage interface {
	GetByFavorites(ctx context.Context, eventIDs []string) ([]entity.User, error)
}

type reminderNotificationStorage interface {
	CreateBatch(ctx context.Context, notifications []entity.Notification) (int64, error)
}

type ReminderService struct {
	eventStorage        reminderEventStorage
	userStorage         reminderUserStorage
	notificationStorage reminderNotificationStorage

	logger *types.Logger
}

func NewReminderService(
	eventStorage reminderEventStorage,
	userStorage reminderUserStorage,
	notificationStorage reminderNotificationStorage,
	logger *types.Logger,
) *ReminderService {
	return &ReminderService{
		eventStorage:        eventStorage,
		userStorage:         userStorage,
		notificationStorage: notificationStorage,
		logger:              logger,
	}
}

// Run reminds every user about every favorited event occurring tomorrow in
// the reference timezone. It returns the number of reminders actually
// inserted; candidates already notified today are skipped by the dedup
// index, which makes re-running within the same civil day a no-op.
func (s *ReminderService) Run(ctx context.Context) (int64, error) {
	return s.runAt(ctx, time.Now())
}

func (s *ReminderService) runAt(ctx context.Context, now time.Time) (int64, error) {
	window := location.TomorrowWindow(now)

	events, err := s.eventStorage.GetByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return 0, fmt.Errorf("failed to get events for %s: %w", window.DayKey, err)
	}
	if len(events) == 0 {
		s.logger.Debugf("no events tomorrow, nothing to remind (day_key=%s)", window.DayKey)
		return 0, nil
	}

	eventIDs := make([]string, 0, len(events))
	titles := make(map[string]string, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
		titles[event.ID] = event.Title
	}

	users, err := s.userStorage.GetByFavorites(ctx, eventIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to get users favoriting tomorrow's events: %w", err)
	}

	var candidates []entity.Notification
	for _, user := range users {
		for _, favoriteID := range user.Favorites {
			title, ok := titles[favoriteID]
			if !ok {
				continue
			}
			eventID := favoriteID
			dayKey := window.DayKey
			candidates = append(candidates, entity.Notification{
				RecipientID: user.ID,
				EventID:     &eventID,
				Kind:        entity.NotificationKindReminder1Day,
				DayKey:      &dayKey,
				Message:     fmt.Sprintf("Reminder: tomorrow is %s", title),
			})
		}
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	inserted, err := s.notificationStorage.CreateBatch(ctx, candidates)
	if err != nil {
		return inserted, fmt.Errorf("failed to insert reminders: %w", err)
	}

	s.logger.Infof("inserted %d of %d reminder(s) (day_key=%s)", inserted, len(candidates), window.DayKey)
	return inserted, nil
}

// StartScheduler launches the daily reminder loop. It fires at fireHour
// local time in the reference timezone, every civil day, until ctx is
// cancelled. A failed run is logged and the next fire proceeds normally;
// repeated fires within one day are harmless because Run is idempotent.
func (s *ReminderService) StartScheduler(ctx context.Context) {
	s.logger.Info("starting reminder scheduler")
	go func() {
		for {
			timer := time.NewTimer(untilNextFire(time.Now()))
			select {
			case <-ctx.Done():
				timer.Stop()
				s.logger.Info("reminder scheduler stopped")
				return
			case <-timer.C:
				if _, err := s.Run(ctx); err != nil {
					s.logger.Errorf("reminder run failed: %v", err)
				}
			}
		}
	}()
}

// untilNextFire returns the duration from now to the next fireHour o'clock
// in the reference timezone. The fire instant is derived from the wall
// clock on every iteration, so restarts never shift the schedule.
func untilNextFire(now time.Time) time.Duration {
	local := now.In(location.Location())
	next := time.Date(local.Year(), local.Month(), local.Day(), fireHour, 0, 0, 0, location.Location())
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}
