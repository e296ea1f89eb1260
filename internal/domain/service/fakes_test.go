package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/feriapp/backend/internal/domain/common/errorz"
	"github.com/feriapp/backend/internal/domain/dto"
	"github.com/feriapp/backend/internal/domain/entity"
	"github.com/feriapp/backend/pkg/logger/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestLogger() *types.Logger {
	return &types.Logger{
		SugaredLogger: zap.NewNop().Sugar(),
		Name:          "test",
	}
}

// fakeNotificationStorage is an in-memory NotificationStorage that emulates
// the partial unique index over (recipient, event, kind, day key).
type fakeNotificationStorage struct {
	mu            sync.Mutex
	notifications []*entity.Notification
	failFor       map[string]error // recipient ID -> forced write error
	batchCalls    int
}

func newFakeNotificationStorage() *fakeNotificationStorage {
	return &fakeNotificationStorage{failFor: make(map[string]error)}
}

func dedupKeyOf(n *entity.Notification) string {
	if n.EventID == nil || n.DayKey == nil {
		return ""
	}
	return n.RecipientID + "|" + *n.EventID + "|" + string(n.Kind) + "|" + *n.DayKey
}

func (f *fakeNotificationStorage) findLocked(key string) *entity.Notification {
	if key == "" {
		return nil
	}
	for _, n := range f.notifications {
		if dedupKeyOf(n) == key {
			return n
		}
	}
	return nil
}

func (f *fakeNotificationStorage) Create(_ context.Context, notification *entity.Notification) (*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[notification.RecipientID]; err != nil {
		return nil, err
	}
	stored := *notification
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.notifications = append(f.notifications, &stored)
	return &stored, nil
}

func (f *fakeNotificationStorage) Upsert(_ context.Context, notification *entity.Notification) (*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[notification.RecipientID]; err != nil {
		return nil, err
	}
	if existing := f.findLocked(dedupKeyOf(notification)); existing != nil {
		existing.Message = notification.Message
		existing.UpdatedAt = time.Now()
		copied := *existing
		return &copied, nil
	}
	stored := *notification
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.notifications = append(f.notifications, &stored)
	return &stored, nil
}

func (f *fakeNotificationStorage) CreateBatch(_ context.Context, notifications []entity.Notification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	var inserted int64
	for i := range notifications {
		candidate := notifications[i]
		if f.findLocked(dedupKeyOf(&candidate)) != nil {
			continue
		}
		if candidate.ID == "" {
			candidate.ID = uuid.NewString()
		}
		candidate.CreatedAt = time.Now()
		candidate.UpdatedAt = candidate.CreatedAt
		f.notifications = append(f.notifications, &candidate)
		inserted++
	}
	return inserted, nil
}

func (f *fakeNotificationStorage) Get(_ context.Context, id string) (*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationStorage) GetByRecipient(_ context.Context, recipientID string, limit, offset int) ([]dto.UserNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []dto.UserNotification
	for _, n := range f.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		list = append(list, dto.UserNotification{
			ID:        n.ID,
			EventID:   n.EventID,
			Kind:      string(n.Kind),
			Message:   n.Message,
			Read:      n.Read,
			DayKey:    n.DayKey,
			CreatedAt: n.CreatedAt,
		})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeNotificationStorage) MarkRead(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationStorage) MarkAllRead(_ context.Context, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationStorage) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeNotificationStorage) CountUnread(_ context.Context, recipientID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStorage) byRecipient(recipientID string) []entity.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out
}

func (f *fakeNotificationStorage) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications)
}

type fakeUnreadCache struct {
	counts      map[string]int64
	invalidated int
}

func newFakeUnreadCache() *fakeUnreadCache {
	return &fakeUnreadCache{counts: make(map[string]int64)}
}

func (f *fakeUnreadCache) Get(_ context.Context, userID string) (int64, error) {
	count, ok := f.counts[userID]
	if !ok {
		return 0, errorz.NotFound
	}
	return count, nil
}

func (f *fakeUnreadCache) Set(_ context.Context, userID string, count int64) error {
	f.counts[userID] = count
	return nil
}

func (f *fakeUnreadCache) Invalidate(_ context.Context, userID string) error {
	f.invalidated++
	delete(f.counts, userID)
	return nil
}

type fakeEventStorage struct {
	events   []*entity.Event
	rangeErr error
}

func (f *fakeEventStorage) add(event entity.Event) *entity.Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	f.events = append(f.events, &event)
	return &event
}

func (f *fakeEventStorage) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	return f.add(*event), nil
}

func (f *fakeEventStorage) Get(_ context.Context, id string) (*entity.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEventStorage) GetMany(_ context.Context, ids []string) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, *e)
			}
		}
	}
	return out, nil
}

func (f *fakeEventStorage) GetByDateRange(_ context.Context, from, to time.Time) ([]entity.Event, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	var out []entity.Event
	for _, e := range f.events {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventStorage) GetAll(_ context.Context) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventStorage) Update(_ context.Context, event *entity.Event) (*entity.Event, error) {
	for i, e := range f.events {
		if e.ID == event.ID {
			copied := *event
			f.events[i] = &copied
			return event, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEventStorage) Count(_ context.Context) (int64, error) {
	return int64(len(f.events)), nil
}

func (f *fakeEventStorage) GetWithPagination(_ context.Context, limit, offset int, _ string) ([]entity.Event, error) {
	all, _ := f.GetAll(context.Background())
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

type fakeUserStorage struct {
	users        []*entity.User
	favoritesErr error
}

func (f *fakeUserStorage) add(user entity.User) *entity.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	f.users = append(f.users, &user)
	return &user
}

func (f *fakeUserStorage) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	return f.add(*user), nil
}

func (f *fakeUserStorage) Get(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStorage) GetAll(_ context.Context) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStorage) GetByRole(_ context.Context, role entity.Role) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users {
		if u.Role == role && !u.Banned {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStorage) GetByFavorites(_ context.Context, eventIDs []string) ([]entity.User, error) {
	if f.favoritesErr != nil {
		return nil, f.favoritesErr
	}
	wanted := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	var out []entity.User
	for _, u := range f.users {
		for _, fav := range u.Favorites {
			if _, ok := wanted[fav]; ok {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUserStorage) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	for i, u := range f.users {
		if u.ID == user.ID {
			copied := *user
			f.users[i] = &copied
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStorage) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeRatingStorage struct {
	ratings []*entity.Rating
}

func (f *fakeRatingStorage) Create(_ context.Context, rating *entity.Rating) (*entity.Rating, error) {
	stored := *rating
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	f.ratings = append(f.ratings, &stored)
	return &stored, nil
}

func (f *fakeRatingStorage) GetByEventID(_ context.Context, eventID string) ([]entity.Rating, error) {
	var out []entity.Rating
	for _, r := range f.ratings {
		if r.EventID == eventID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRatingStorage) CountByEventID(_ context.Context, eventID string) (int64, error) {
	var count int64
	for _, r := range f.ratings {
		if r.EventID == eventID {
			count++
		}
	}
	return count, nil
}
