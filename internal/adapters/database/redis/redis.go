package redis

import (
	"context"
	"fmt"

	"github.com/feriapp/backend/internal/adapters/database/redis/unread"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Unread *unread.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	unreadStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := unreadStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping unread storage: %w", err)
	}

	return &Client{
		Unread: unread.NewStorage(unreadStorage),
	}, nil
}
