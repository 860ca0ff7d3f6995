package previews

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/enqur/qrstudio/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, ttl time.Duration) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return NewStorage(client, ttl), mr
}

func TestStorage_SetGet(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStorage(t, time.Minute)

	_, err := s.Get(ctx, "preview:missing")
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	png := []byte("\x89PNG\r\n\x1a\n\x00binary")
	require.NoError(t, s.Set(ctx, "preview:a", png))

	got, err := s.Get(ctx, "preview:a")
	require.NoError(t, err)
	assert.Equal(t, png, got)
	assert.Equal(t, time.Minute, mr.TTL("preview:a"))

	mr.FastForward(time.Minute)
	_, err = s.Get(ctx, "preview:a")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestStorage_DefaultTTL(t *testing.T) {
	s, mr := newTestStorage(t, 0)

	require.NoError(t, s.Set(context.Background(), "preview:b", []byte("png")))
	assert.Equal(t, DefaultTTL, mr.TTL("preview:b"))
}

func TestStorage_ServerDown(t *testing.T) {
	s, mr := newTestStorage(t, time.Minute)
	mr.Close()

	_, err := s.Get(context.Background(), "preview:a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errorz.ErrNotFound)
}
