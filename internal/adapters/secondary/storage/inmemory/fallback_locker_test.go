package inmemory

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/redis"
	"github.com/QuilGrafit/astroX/internal/domain"
)

func fallbackTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// redisLocker блокировщик поверх miniredis; сервер можно остановить в тесте
func redisLocker(t *testing.T) (*miniredis.Miniredis, *redisAdapter.Locker) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return mr, redisAdapter.NewLocker(client, time.Second, fallbackTestLogger())
}

func TestFallbackLocker_UsesPrimary(t *testing.T) {
	mr, primary := redisLocker(t)
	locker := NewFallbackLocker(primary, fallbackTestLogger())

	unlock, err := locker.Lock(context.Background(), "profile:1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:profile:1"))

	unlock()
	assert.False(t, mr.Exists("lock:profile:1"))
}

func TestFallbackLocker_RedisDown(t *testing.T) {
	mr, primary := redisLocker(t)
	locker := NewFallbackLocker(primary, fallbackTestLogger())
	mr.Close()

	unlock, err := locker.Lock(context.Background(), "profile:1")
	require.NoError(t, err)

	// локальная блокировка всё ещё исключает второго владельца
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "profile:1")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	unlock()
	unlock2, err := locker.Lock(context.Background(), "profile:1")
	require.NoError(t, err)
	unlock2()
}

func TestFallbackLocker_TimeoutNotMasked(t *testing.T) {
	_, primary := redisLocker(t)
	locker := NewFallbackLocker(primary, fallbackTestLogger())

	unlock, err := locker.Lock(context.Background(), "profile:1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "profile:1")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}
