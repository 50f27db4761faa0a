package inmemory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/ports/cache"
)

// FallbackLocker распределённая блокировка с подстраховкой в памяти процесса.
// Если основной блокировщик недоступен (не таймаут), ключ блокируется локально:
// между репликами исключения нет, но внутри реплики переходы остаются последовательными.
type FallbackLocker struct {
	primary cache.ILocker
	local   *Locker
	log     *slog.Logger
}

func NewFallbackLocker(primary cache.ILocker, log *slog.Logger) *FallbackLocker {
	return &FallbackLocker{
		primary: primary,
		local:   NewLocker(),
		log:     log,
	}
}

var _ cache.ILocker = (*FallbackLocker)(nil)

func (l *FallbackLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlock, err := l.primary.Lock(ctx, key)
	if err == nil || errors.Is(err, domain.ErrLockTimeout) {
		return unlock, err
	}

	l.log.WarnContext(ctx, "primary locker unavailable, using in-process lock", "key", key, "error", err)
	return l.local.Lock(ctx, key)
}
