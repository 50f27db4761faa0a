package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/ports/cache"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix        = "lock:"
	defaultRetryInterval = 25 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// снимаем блокировку, только если она всё ещё наша
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker распределённая блокировка на SET NX PX.
// TTL ограничивает время удержания, если процесс упал, не сняв блокировку.
type Locker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
	log           *slog.Logger
}

// NewLocker создаёт блокировщик поверх Redis
func NewLocker(client *redis.Client, ttl time.Duration, log *slog.Logger) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Locker{
		client:        client,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
		log:           log,
	}
}

var _ cache.ILocker = (*Locker)(nil)

// Lock ждёт блокировку по ключу до отмены ctx
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := lockKeyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", domain.ErrLockTimeout, key)
			}
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			return l.unlockFunc(lockKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", domain.ErrLockTimeout, key)
		case <-ticker.C:
		}
	}
}

func (l *Locker) unlockFunc(lockKey, token string) func() {
	return func() {
		// контекст запроса к этому моменту может быть уже отменён
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{lockKey}, token).Err(); err != nil {
			l.log.Warn("failed to release redis lock", "key", lockKey, "error", err)
		}
	}
}
