package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/enqur/qrstudio/internal/adapters/database/redis/previews"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Previews *previews.Storage
}

type Options struct {
	Host       string
	Port       int
	Password   string
	DB         int
	PreviewTTL time.Duration
}

func New(ctx context.Context, opts Options) (*Client, error) {
	previewStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := previewStorage.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping preview storage: %w", err)
	}

	return &Client{
		Previews: previews.NewStorage(previewStorage, opts.PreviewTTL),
	}, nil
}
