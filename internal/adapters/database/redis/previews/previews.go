package previews

import (
	"context"
	"errors"
	"time"

	"github.com/enqur/qrstudio/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is used when the storage is created with a non-positive ttl.
const DefaultTTL = 10 * time.Minute

// Storage keeps rendered preview PNGs for a limited time.
type Storage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStorage(client *redis.Client, ttl time.Duration) *Storage {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Storage{
		redis: client,
		ttl:   ttl,
	}
}

// Get returns the cached PNG or errorz.ErrNotFound.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorz.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Storage) Set(ctx context.Context, key string, png []byte) error {
	return s.redis.Set(ctx, key, png, s.ttl).Err()
}

