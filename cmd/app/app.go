package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/feriapp/backend/internal/adapters/config"
	postgresStorage "github.com/feriapp/backend/internal/adapters/database/postgres"
	redisStorage "github.com/feriapp/backend/internal/adapters/database/redis"
	"github.com/feriapp/backend/internal/domain/service"
	"github.com/feriapp/backend/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	DB    *gorm.DB
	Redis *redisStorage.Client

	Notifications *service.NotificationService
	Events        *service.EventService
	Users         *service.UserService
	Ratings       *service.RatingService
	Reminders     *service.ReminderService
}

func New(cfg *config.Config) (*App, error) {
	notifyLogger, err := logger.Named("notify")
	if err != nil {
		return nil, err
	}
	reminderLogger, err := logger.Named("reminder")
	if err != nil {
		return nil, err
	}

	notificationStorage := postgresStorage.NewNotificationStorage(cfg.Database)
	eventStorage := postgresStorage.NewEventStorage(cfg.Database)
	userStorage := postgresStorage.NewUserStorage(cfg.Database)
	ratingStorage := postgresStorage.NewRatingStorage(cfg.Database)

	notificationService := service.NewNotificationService(notificationStorage, cfg.Redis.Unread, notifyLogger)

	return &App{
		DB:            cfg.Database,
		Redis:         cfg.Redis,
		Notifications: notificationService,
		Events:        service.NewEventService(eventStorage, userStorage, notificationService, notifyLogger),
		Users:         service.NewUserService(userStorage, eventStorage, notificationService, notifyLogger),
		Ratings:       service.NewRatingService(ratingStorage, eventStorage, notificationService, notifyLogger),
		Reminders:     service.NewReminderService(eventStorage, userStorage, notificationStorage, reminderLogger),
	}, nil
}

// Start runs the reminder scheduler until the process receives SIGINT or
// SIGTERM.
func (a *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.Reminders.StartScheduler(ctx)
	logger.Log.Info("Notification engine started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down")
}
